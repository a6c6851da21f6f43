// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgryski/go-farm"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// HeaderSize is the length and type fields that precede the payload.
	HeaderSize = lengthSize + typeSize
	// OverheadSize is the number of bytes a record adds around its payload.
	OverheadSize = HeaderSize + crcSize

	// MaxLength is the largest payload length a PNG chunk may declare.
	MaxLength = (1 << 31) - 1
)

// Chunk is a single record in a PNG chunk stream.  A Chunk owns its
// payload: constructors copy the bytes they are given.
type Chunk struct {
	length uint32
	typ    Type
	data   []byte
	crc    uint32
}

// New returns a chunk of type t carrying a copy of data, with its length
// and CRC computed.
func New(t Type, data []byte) *Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Chunk{
		length: uint32(len(owned)),
		typ:    t,
		data:   owned,
		crc:    checksum(t, owned),
	}
}

func checksum(t Type, data []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, t[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}

// Decode parses one complete record (length, type, payload and CRC) and
// verifies its checksum.
func Decode(record []byte) (*Chunk, error) {
	if len(record) < OverheadSize {
		return nil, fmt.Errorf("%w: record is %d bytes, need at least %d", ErrMalformedChunk, len(record), OverheadSize)
	}

	length := binary.BigEndian.Uint32(record[:lengthSize])
	if length > MaxLength {
		return nil, fmt.Errorf("%w: declared length %d exceeds %d", ErrMalformedChunk, length, MaxLength)
	}

	// the CRC covers the raw tag bytes and is checked before the tag
	var raw Type
	copy(raw[:], record[lengthSize:HeaderSize])
	expected := binary.BigEndian.Uint32(record[len(record)-crcSize:])
	if actual := crc32.ChecksumIEEE(record[lengthSize : len(record)-crcSize]); actual != expected {
		return nil, &ChecksumError{Type: raw, Expected: expected, Actual: actual}
	}

	t, err := TypeFromBytes(raw)
	if err != nil {
		return nil, err
	}

	payload := record[HeaderSize : len(record)-crcSize]
	if uint64(len(payload)) != uint64(length) {
		return nil, fmt.Errorf("%w: %s chunk declares %d payload bytes, record holds %d", ErrMalformedChunk, t, length, len(payload))
	}

	data := make([]byte, len(payload))
	copy(data, payload)
	return &Chunk{
		length: length,
		typ:    t,
		data:   data,
		crc:    expected,
	}, nil
}

func (c *Chunk) Length() uint32 {
	return c.length
}

func (c *Chunk) Type() Type {
	return c.typ
}

// Data returns the chunk's payload.  The returned slice must not be
// written to.
func (c *Chunk) Data() []byte {
	return c.data
}

func (c *Chunk) CRC() uint32 {
	return c.crc
}

// EncodedLen is the size of the record Bytes returns.
func (c *Chunk) EncodedLen() int {
	return OverheadSize + len(c.data)
}

// Fingerprint returns a 64-bit fingerprint of the payload, stable across
// processes and releases.
func (c *Chunk) Fingerprint() uint64 {
	return farm.Fingerprint64(c.data)
}

// DataString returns the payload as a string, or ErrInvalidUTF8 if it
// isn't valid UTF-8.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%s: %w", c.typ, ErrInvalidUTF8)
	}
	return string(c.data), nil
}

// AppendTo appends the encoded record to dst and returns the extended
// slice.
func (c *Chunk) AppendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, c.length)
	dst = append(dst, c.typ[:]...)
	dst = append(dst, c.data...)
	return binary.BigEndian.AppendUint32(dst, c.crc)
}

// Bytes returns the encoded record: the exact inverse of Decode.
func (c *Chunk) Bytes() []byte {
	return c.AppendTo(make([]byte, 0, c.EncodedLen()))
}

func (c *Chunk) WriteTo(w io.Writer) (n int64, err error) {
	written, err := w.Write(c.Bytes())
	if err != nil {
		return int64(written), fmt.Errorf("write: %w", err)
	}
	return int64(written), nil
}

// String is a diagnostic rendering; each byte of invalid UTF-8 in the
// payload is replaced with U+FFFD.
func (c *Chunk) String() string {
	return fmt.Sprintf("length:%d,type:%s,data:%s,crc:%d",
		c.length, c.typ, lossyString(c.data), c.crc)
}

func lossyString(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(b[:size])
		}
		b = b[size:]
	}
	return sb.String()
}
