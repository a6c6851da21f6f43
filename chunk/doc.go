// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package chunk encodes and decodes the individual records that make up
// a PNG file's chunk stream.
//
// Every chunk has a fixed 8-byte header, a variable-length payload and a
// 4-byte trailer, and looks like:
//
//	 0    1    2    3    4    5    6    7
//	+----+----+----+----+----+----+----+----+
//	| length (BE u32)   | type              |
//	+----+----+----+----+----+----+----+----+
//	| payload...                            |
//	+----+----+----+----+----+----+----+----+
//	| payload...        | crc (BE u32)      |
//	+----+----+----+----+----+----+----+----+
//
// The length counts payload bytes only.  The CRC is CRC-32/ISO-HDLC (the
// same polynomial as zlib and Ethernet) computed over the type bytes
// followed by the payload, and is verified on every decode: a chunk with a
// bad checksum is rejected, never repaired.
//
// The type is four ASCII letters.  Bit 5 of each letter (its case) is a
// property flag:
//
//	byte 0: critical (upper) / ancillary (lower)
//	byte 1: public (upper) / private (lower)
//	byte 2: reserved, must be upper
//	byte 3: unsafe to copy (upper) / safe to copy (lower)
package chunk
