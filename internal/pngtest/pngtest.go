// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package pngtest produces small, real PNG images for tests and the
// gen-testdata tool.
package pngtest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
)

// Encode returns a width x height PNG filled with pixels drawn from rng.
// The same seed always produces the same bytes.
func Encode(rng *rand.Rand, width, height int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 0xff,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png.Encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Small returns a deterministic 4x4 PNG.
func Small() []byte {
	b, err := Encode(rand.New(rand.NewSource(1)), 4, 4)
	if err != nil {
		// encoding an in-memory NRGBA image into a bytes.Buffer can't fail
		panic(err)
	}
	return b
}
