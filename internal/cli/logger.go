// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger returns a structured logger writing to w: human-readable
// text when w is a terminal, JSON when it is piped or redirected.
// verbose lowers the level from Info to Debug.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	isTerminal := false
	if f, ok := w.(*os.File); ok {
		isTerminal = term.IsTerminal(int(f.Fd()))
	}
	return newLogger(w, isTerminal, verbose)
}

func newLogger(w io.Writer, isTerminal, verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		options.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if isTerminal {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}
