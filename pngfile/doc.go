// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package pngfile models a whole PNG file as a signature followed by an
// ordered list of chunks, and supports the structural edits pngmsg needs:
// appending a chunk, finding and removing chunks by type, and encoding
// the result back to bytes.
//
// A PNG file looks like:
//
//	┌───────────────────┐
//	│ signature         │  137 80 78 71 13 10 26 10
//	├───────────────────┤
//	│ IHDR chunk        │
//	├───────────────────┤
//	│ repeated chunks   │
//	│                   │
//	│                   │
//	├───────────────────┤
//	│ IEND chunk        │
//	└───────────────────┘
//
// pngfile does not interpret chunk payloads, and doesn't require IHDR or
// IEND to be present: any signature-prefixed sequence of well-formed
// chunks decodes, and chunk order is always preserved.
package pngfile
