// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromBytes(t *testing.T) {
	expected := [4]byte{82, 117, 83, 116}
	actual, err := TypeFromBytes([4]byte{82, 117, 83, 116})
	require.NoError(t, err)
	assert.Equal(t, expected, actual.Bytes())
	assert.Equal(t, "RuSt", actual.String())

	for _, bad := range [][4]byte{
		{'R', 'u', '1', 't'},
		{0, 'u', 'S', 't'},
		{'R', 'u', 'S', '@'},
		{'[', 'u', 'S', 't'},
		{'R', 'u', 'S', 0xc3},
	} {
		_, err := TypeFromBytes(bad)
		assert.True(t, errors.Is(err, ErrInvalidType), "%q", bad[:])
	}
}

func TestParseType(t *testing.T) {
	fromBytes, err := TypeFromBytes([4]byte{82, 117, 83, 116})
	require.NoError(t, err)
	parsed, err := ParseType("RuSt")
	require.NoError(t, err)
	assert.Equal(t, fromBytes, parsed)
	assert.True(t, fromBytes == parsed)

	for _, bad := range []string{
		"",
		"Ru",
		"RuStX",
		"Ru1t",
		"Ru t",
		// four characters, but more than four bytes
		"RuSé",
		"ßaaa",
	} {
		_, err := ParseType(bad)
		assert.True(t, errors.Is(err, ErrInvalidType), "%q", bad)
	}
}

func TestType_Equality(t *testing.T) {
	a, err := ParseType("RuSt")
	require.NoError(t, err)
	b, err := ParseType("rust")
	require.NoError(t, err)
	c, err := ParseType("RuSt")
	require.NoError(t, err)

	assert.False(t, a == b)
	assert.True(t, a == c)
}

func TestType_Properties(t *testing.T) {
	for _, tc := range []struct {
		typ         string
		critical    bool
		public      bool
		reservedBit bool
		safeToCopy  bool
	}{
		{"RuSt", true, false, true, true},
		{"ruSt", false, false, true, true},
		{"RUSt", true, true, true, true},
		{"Rust", true, false, false, true},
		{"RuST", true, false, true, false},
		{"IHDR", true, true, true, false},
		{"tEXt", false, true, true, true},
		{"ruST", false, false, true, false},
	} {
		typ, err := ParseType(tc.typ)
		require.NoError(t, err)
		assert.Equal(t, tc.critical, typ.IsCritical(), "%s critical", tc.typ)
		assert.Equal(t, tc.public, typ.IsPublic(), "%s public", tc.typ)
		assert.Equal(t, tc.reservedBit, typ.IsReservedBitValid(), "%s reserved", tc.typ)
		assert.Equal(t, tc.safeToCopy, typ.IsSafeToCopy(), "%s safe to copy", tc.typ)
		assert.Equal(t, tc.reservedBit, typ.IsValid(), "%s valid", tc.typ)
	}
}

func TestType_IsValidTracksThirdByteCase(t *testing.T) {
	letters := []byte("aZmQ")
	for _, b0 := range letters {
		for _, b1 := range letters {
			for _, b2 := range letters {
				for _, b3 := range letters {
					typ, err := TypeFromBytes([4]byte{b0, b1, b2, b3})
					require.NoError(t, err)
					upper := 'A' <= b2 && b2 <= 'Z'
					assert.Equal(t, upper, typ.IsValid(), typ.String())
				}
			}
		}
	}
}

func TestType_MarshalText(t *testing.T) {
	typ, err := ParseType("tEXt")
	require.NoError(t, err)
	text, err := typ.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "tEXt", string(text))
}
