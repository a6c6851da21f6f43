// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// gen-testdata writes a small random PNG to stdout, for trying pngmsg
// out by hand:
//
//	gen-testdata -width 16 -height 16 > testdata.png
package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/pflag"

	"github.com/bpowers/pngmsg/internal/pngtest"
)

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		var seedBytes [8]byte
		_, _ = crand.Read(seedBytes[:])
		seed = int64(binary.LittleEndian.Uint64(seedBytes[:]))
	}
	return rand.New(rand.NewSource(seed))
}

func main() {
	width := pflag.Int("width", 8, "image width in pixels")
	height := pflag.Int("height", 8, "image height in pixels")
	seed := pflag.Int64("seed", 0, "random seed (0 picks one)")
	pflag.Parse()

	if *width <= 0 || *height <= 0 {
		fmt.Fprintf(os.Stderr, "error: width and height must be positive\n")
		os.Exit(1)
	}

	b, err := pngtest.Encode(newRand(*seed), *width, *height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if _, err := os.Stdout.Write(b); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
