// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidType      = errors.New("invalid chunk type")
	ErrMalformedChunk   = errors.New("malformed chunk")
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")
	ErrInvalidUTF8      = errors.New("chunk data is not valid UTF-8")
)

// ChecksumError is returned by Decode when the CRC stored in a record
// doesn't match its contents.  It matches ErrChecksumMismatch.
type ChecksumError struct {
	Type     Type
	Expected uint32
	Actual   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s chunk checksum failed (%d != %d): data corrupted", e.Type, e.Expected, e.Actual)
}

func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumMismatch
}
