// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package pngmsg hides messages in PNG files by storing them in extra
// chunks, and finds and removes them again.  Image data is never
// touched: messages are appended as new chunks, and removing a message
// leaves every other chunk in its original order.
package pngmsg

import (
	"fmt"

	"github.com/bpowers/pngmsg/chunk"
	"github.com/bpowers/pngmsg/pngfile"
)

// Embed appends a chunk of type typ carrying payload to f.
func Embed(f *pngfile.File, typ string, payload []byte) error {
	t, err := chunk.ParseType(typ)
	if err != nil {
		return err
	}
	f.Append(chunk.New(t, payload))
	return nil
}

// ExtractText returns the payload of the first chunk of type typ as
// text.  ok is false if f has no such chunk; err is only non-nil when
// the chunk exists but its payload isn't valid UTF-8.
func ExtractText(f *pngfile.File, typ string) (text string, ok bool, err error) {
	c, ok := f.ChunkByType(typ)
	if !ok {
		return "", false, nil
	}
	text, err = c.DataString()
	if err != nil {
		return "", true, err
	}
	return text, true, nil
}

// Strip removes the first chunk of type typ, returning
// pngfile.ErrNotFound if there isn't one.
func Strip(f *pngfile.File, typ string) (*chunk.Chunk, error) {
	return f.RemoveFirst(typ)
}

// StripAll removes every chunk of type typ.
func StripAll(f *pngfile.File, typ string) ([]*chunk.Chunk, error) {
	return f.RemoveAll(typ)
}

// Enumerate returns the type of every chunk in f, in order.
func Enumerate(f *pngfile.File) []string {
	types := f.Types()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return names
}

// ChunkInfo summarizes one chunk for listings.
type ChunkInfo struct {
	Index       int        `json:"index"`
	Type        chunk.Type `json:"type"`
	Length      uint32     `json:"length"`
	CRC         uint32     `json:"crc"`
	Fingerprint string     `json:"fingerprint"`
	Critical    bool       `json:"critical"`
	Public      bool       `json:"public"`
	SafeToCopy  bool       `json:"safe_to_copy"`
	Valid       bool       `json:"valid"`
}

// Describe returns a ChunkInfo for every chunk in f, in order.
func Describe(f *pngfile.File) []ChunkInfo {
	infos := make([]ChunkInfo, 0, f.Len())
	for i, c := range f.Chunks() {
		t := c.Type()
		infos = append(infos, ChunkInfo{
			Index:       i,
			Type:        t,
			Length:      c.Length(),
			CRC:         c.CRC(),
			Fingerprint: fmt.Sprintf("%016x", c.Fingerprint()),
			Critical:    t.IsCritical(),
			Public:      t.IsPublic(),
			SafeToCopy:  t.IsSafeToCopy(),
			Valid:       t.IsValid(),
		})
	}
	return infos
}
