// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMessage = "This is where your secret message will be!"
	testCRC     = uint32(2882656334)
)

func testRecord(length uint32, typ string, data string, crc uint32) []byte {
	var record []byte
	record = binary.BigEndian.AppendUint32(record, length)
	record = append(record, typ...)
	record = append(record, data...)
	return binary.BigEndian.AppendUint32(record, crc)
}

// recordCRC is the checksum a well-formed record for typ and data carries.
func recordCRC(typ string, data string) uint32 {
	return crc32.ChecksumIEEE([]byte(typ + data))
}

func testingChunk(t testing.TB) *Chunk {
	c, err := Decode(testRecord(uint32(len(testMessage)), "RuSt", testMessage, testCRC))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	typ, err := ParseType("RuSt")
	require.NoError(t, err)
	c := New(typ, []byte(testMessage))
	assert.Equal(t, uint32(42), c.Length())
	assert.Equal(t, testCRC, c.CRC())
	assert.Equal(t, typ, c.Type())
	assert.Equal(t, []byte(testMessage), c.Data())
}

func TestNew_CopiesData(t *testing.T) {
	typ, err := ParseType("ruST")
	require.NoError(t, err)
	data := []byte("secret")
	c := New(typ, data)
	data[0] = 'S'
	assert.Equal(t, "secret", string(c.Data()))
}

func TestDecode(t *testing.T) {
	c := testingChunk(t)
	assert.Equal(t, uint32(42), c.Length())
	assert.Equal(t, "RuSt", c.Type().String())
	assert.Equal(t, testCRC, c.CRC())

	s, err := c.DataString()
	require.NoError(t, err)
	assert.Equal(t, testMessage, s)
}

func TestDecode_BadChecksum(t *testing.T) {
	_, err := Decode(testRecord(uint32(len(testMessage)), "RuSt", testMessage, testCRC-1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksumMismatch))

	var checksumErr *ChecksumError
	require.True(t, errors.As(err, &checksumErr))
	assert.Equal(t, testCRC-1, checksumErr.Expected)
	assert.Equal(t, testCRC, checksumErr.Actual)
	assert.Equal(t, "RuSt", checksumErr.Type.String())
}

func TestDecode_Malformed(t *testing.T) {
	// too short for the fixed fields
	for _, record := range [][]byte{
		nil,
		{0, 0, 0},
		{0, 0, 0, 0, 'R', 'u', 'S', 't', 0, 0, 0},
	} {
		_, err := Decode(record)
		assert.True(t, errors.Is(err, ErrMalformedChunk), "%v", record)
	}

	// declared length disagrees with the payload
	_, err := Decode(testRecord(41, "RuSt", testMessage, testCRC))
	assert.True(t, errors.Is(err, ErrMalformedChunk))
	_, err = Decode(testRecord(43, "RuSt", testMessage, testCRC))
	assert.True(t, errors.Is(err, ErrMalformedChunk))

	// length beyond what PNG allows
	_, err = Decode(testRecord(MaxLength+1, "RuSt", testMessage, testCRC))
	assert.True(t, errors.Is(err, ErrMalformedChunk))

	// bad type with a checksum that matches it
	_, err = Decode(testRecord(uint32(len(testMessage)), "Ru1t", testMessage, recordCRC("Ru1t", testMessage)))
	assert.True(t, errors.Is(err, ErrInvalidType))
	assert.False(t, errors.Is(err, ErrChecksumMismatch))
}

func TestDecode_ChecksumBeforeType(t *testing.T) {
	// a tag outside the letter range with the checksum of the good tag
	_, err := Decode(testRecord(uint32(len(testMessage)), "Ru\x13t", testMessage, testCRC))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksumMismatch))
	assert.False(t, errors.Is(err, ErrInvalidType))

	var checksumErr *ChecksumError
	require.True(t, errors.As(err, &checksumErr))
	assert.Equal(t, Type{'R', 'u', 0x13, 't'}, checksumErr.Type)
	assert.Equal(t, testCRC, checksumErr.Expected)
}

func TestDecode_EmptyPayload(t *testing.T) {
	typ, err := ParseType("IEND")
	require.NoError(t, err)
	c := New(typ, nil)
	// the well-known CRC of every PNG's IEND chunk
	assert.Equal(t, uint32(0xAE426082), c.CRC())

	decoded, err := Decode(c.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint32(0), decoded.Length())
	assert.Empty(t, decoded.Data())
	assert.Equal(t, OverheadSize, len(c.Bytes()))
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		typ  string
		data []byte
	}{
		{"RuSt", []byte(testMessage)},
		{"ruST", []byte{}},
		{"tEXt", []byte("Comment\x00hello")},
		{"zzZz", bytes.Repeat([]byte{0xff, 0x00}, 4096)},
	} {
		typ, err := ParseType(tc.typ)
		require.NoError(t, err)
		orig := New(typ, tc.data)

		encoded := orig.Bytes()
		assert.Equal(t, orig.EncodedLen(), len(encoded))

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, orig.Type(), decoded.Type())
		assert.Equal(t, orig.Length(), decoded.Length())
		assert.Equal(t, orig.CRC(), decoded.CRC())
		assert.True(t, bytes.Equal(orig.Data(), decoded.Data()))
		assert.Equal(t, encoded, decoded.Bytes())
	}
}

func TestDecode_DetectsBitFlips(t *testing.T) {
	c := testingChunk(t)
	encoded := c.Bytes()

	// every bit of the type and payload is covered by the CRC
	for i := HeaderSize - typeSize; i < len(encoded)-crcSize; i++ {
		for bit := 0; bit < 8; bit++ {
			corrupt := make([]byte, len(encoded))
			copy(corrupt, encoded)
			corrupt[i] ^= 1 << bit

			_, err := Decode(corrupt)
			require.Error(t, err, "byte %d bit %d", i, bit)
			assert.True(t, errors.Is(err, ErrChecksumMismatch), "byte %d bit %d: %v", i, bit, err)
		}
	}
}

func TestDataString_InvalidUTF8(t *testing.T) {
	typ, err := ParseType("ruSt")
	require.NoError(t, err)
	c := New(typ, []byte{'o', 'k', 0xff, 0xfe})

	_, err = c.DataString()
	assert.True(t, errors.Is(err, ErrInvalidUTF8))

	// the diagnostic form never fails
	assert.Contains(t, c.String(), "data:ok\uFFFD\uFFFD,")

	// one replacement per bad byte, valid runes are kept
	c = New(typ, []byte{0xff, 'h', 0xc3, 0xa9, 0xfe, 0xfe, '!'})
	assert.Contains(t, c.String(), "data:\uFFFDh\u00e9\uFFFD\uFFFD!,")
}

func TestChunk_String(t *testing.T) {
	c := testingChunk(t)
	s := c.String()
	assert.Contains(t, s, "length:42")
	assert.Contains(t, s, "type:RuSt")
	assert.Contains(t, s, testMessage)
}

func TestChunk_WriteTo(t *testing.T) {
	c := testingChunk(t)
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(c.EncodedLen()), n)
	assert.Equal(t, c.Bytes(), buf.Bytes())
}

func TestChunk_Fingerprint(t *testing.T) {
	a, err := ParseType("ruSt")
	require.NoError(t, err)
	b, err := ParseType("ruST")
	require.NoError(t, err)

	// the fingerprint covers only the payload
	assert.Equal(t, New(a, []byte("x")).Fingerprint(), New(b, []byte("x")).Fingerprint())
	assert.NotEqual(t, New(a, []byte("x")).Fingerprint(), New(a, []byte("y")).Fingerprint())
}
