// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"fmt"
)

// propertyBit is bit 5 of a type byte: clear for uppercase ASCII
// letters, set for lowercase ones.
const propertyBit = 0x20

// Type is a chunk type code: four ASCII letters.  Types are comparable
// with ==, which is byte-wise and case-sensitive.
type Type [4]byte

// TypeFromBytes returns the Type for b, or ErrInvalidType if any byte
// isn't an ASCII letter.
func TypeFromBytes(b [4]byte) (Type, error) {
	for i, c := range b {
		if !isLetter(c) {
			return Type{}, fmt.Errorf("%w: byte %d is 0x%02x, not an ASCII letter", ErrInvalidType, i, c)
		}
	}
	return Type(b), nil
}

// ParseType returns the Type spelled by s.  s must be exactly 4 bytes
// long -- a 4-character string containing multi-byte runes is an error.
func ParseType(s string) (Type, error) {
	if len(s) != len(Type{}) {
		return Type{}, fmt.Errorf("%w: %q is %d bytes, want 4", ErrInvalidType, s, len(s))
	}
	var b [4]byte
	copy(b[:], s)
	return TypeFromBytes(b)
}

func isLetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

func isUpper(c byte) bool {
	return c&propertyBit == 0
}

// IsCritical reports whether decoders must understand this chunk to
// display the image.
func (t Type) IsCritical() bool {
	return isUpper(t[0])
}

// IsPublic reports whether the type is (or could be) registered with
// the PNG specification, as opposed to a private application type.
func (t Type) IsPublic() bool {
	return isUpper(t[1])
}

// IsReservedBitValid reports whether the reserved bit is clear, as the
// current PNG specification requires.
func (t Type) IsReservedBitValid() bool {
	return isUpper(t[2])
}

// IsSafeToCopy reports whether editors that don't recognize the chunk
// may copy it into a modified file.
func (t Type) IsSafeToCopy() bool {
	return !isUpper(t[3])
}

// IsValid reports whether the type is well formed.  Every byte of a Type
// is already a letter, so this only checks the reserved bit.
func (t Type) IsValid() bool {
	return t.IsReservedBitValid()
}

func (t Type) Bytes() [4]byte {
	return t
}

func (t Type) String() string {
	return string(t[:])
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
