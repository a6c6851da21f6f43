// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pngfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/bpowers/pngmsg/chunk"
)

const signatureSize = 8

// Signature is the fixed 8-byte header every PNG file starts with.
var Signature = [signatureSize]byte{137, 80, 78, 71, 13, 10, 26, 10}

var (
	ErrBadSignature = errors.New("bad PNG signature -- not a PNG file or corrupted")
	ErrNotFound     = errors.New("chunk type not found")
)

// File is an in-memory PNG file.  The zero value is an empty file with
// no chunks.
type File struct {
	chunks []*chunk.Chunk
}

// New returns a File containing chunks, in order.
func New(chunks ...*chunk.Chunk) *File {
	f := &File{}
	for _, c := range chunks {
		f.Append(c)
	}
	return f
}

// Decode parses a complete PNG file.  Every chunk must decode and pass
// its checksum: any failure rejects the whole file.
func Decode(b []byte) (*File, error) {
	if len(b) < signatureSize || !bytes.Equal(b[:signatureSize], Signature[:]) {
		return nil, ErrBadSignature
	}

	f := &File{}
	off := signatureSize
	for off < len(b) {
		rest := b[off:]
		if len(rest) < chunk.HeaderSize {
			return nil, fmt.Errorf("off %d: %w: %d trailing bytes", off, chunk.ErrMalformedChunk, len(rest))
		}
		// 64 bits, so a huge declared length can't wrap
		recordLen := uint64(binary.BigEndian.Uint32(rest[:4])) + chunk.OverheadSize
		if recordLen > uint64(len(rest)) {
			return nil, fmt.Errorf("off %d: %w: record of %d bytes beyond bounds (%d)", off, chunk.ErrMalformedChunk, recordLen, len(rest))
		}

		c, err := chunk.Decode(rest[:recordLen])
		if err != nil {
			return nil, fmt.Errorf("off %d: chunk.Decode: %w", off, err)
		}
		f.chunks = append(f.chunks, c)
		off += int(recordLen)
	}

	return f, nil
}

func (f *File) Append(c *chunk.Chunk) {
	if c == nil {
		panic("pngfile: Append of nil chunk")
	}
	f.chunks = append(f.chunks, c)
}

// ChunkByType returns the first chunk whose type is typ.
func (f *File) ChunkByType(typ string) (*chunk.Chunk, bool) {
	i := f.index(typ)
	if i < 0 {
		return nil, false
	}
	return f.chunks[i], true
}

func (f *File) index(typ string) int {
	for i, c := range f.chunks {
		if c.Type().String() == typ {
			return i
		}
	}
	return -1
}

// RemoveFirst removes and returns the first chunk whose type is typ.
// Later chunks of the same type are left in place.
func (f *File) RemoveFirst(typ string) (*chunk.Chunk, error) {
	i := f.index(typ)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, typ)
	}
	c := f.chunks[i]
	f.chunks = slices.Delete(f.chunks, i, i+1)
	return c, nil
}

// RemoveAll removes and returns every chunk whose type is typ, in file
// order.
func (f *File) RemoveAll(typ string) ([]*chunk.Chunk, error) {
	matches := func(c *chunk.Chunk) bool {
		return c.Type().String() == typ
	}

	var removed []*chunk.Chunk
	for _, c := range f.chunks {
		if matches(c) {
			removed = append(removed, c)
		}
	}
	if len(removed) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, typ)
	}
	f.chunks = slices.DeleteFunc(f.chunks, matches)
	return removed, nil
}

// Chunks returns the file's chunks in order.  The slice must not be
// modified.
func (f *File) Chunks() []*chunk.Chunk {
	return f.chunks
}

func (f *File) Len() int {
	return len(f.chunks)
}

// Types returns the type of each chunk, in file order.
func (f *File) Types() []chunk.Type {
	types := make([]chunk.Type, 0, len(f.chunks))
	for _, c := range f.chunks {
		types = append(types, c.Type())
	}
	return types
}

// EncodedLen is the size of the buffer Bytes returns.
func (f *File) EncodedLen() int {
	n := signatureSize
	for _, c := range f.chunks {
		n += c.EncodedLen()
	}
	return n
}

// Bytes encodes the signature followed by every chunk.
func (f *File) Bytes() []byte {
	buf := make([]byte, 0, f.EncodedLen())
	buf = append(buf, Signature[:]...)
	for _, c := range f.chunks {
		buf = c.AppendTo(buf)
	}
	return buf
}

func (f *File) WriteTo(w io.Writer) (n int64, err error) {
	written, err := w.Write(f.Bytes())
	if err != nil {
		return int64(written), fmt.Errorf("write: %w", err)
	}
	return int64(written), nil
}
