// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build !(linux || darwin || freebsd)

package fileio

import (
	"fmt"
	"io"
	"os"
)

func readAll(f *os.File, size int64) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("io.ReadFull: %w", err)
	}
	return data, nil
}
