// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build linux || darwin || freebsd

package fileio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// readAll maps f read-only and copies it into a heap buffer the caller
// owns; the mapping never outlives the call.
func readAll(f *os.File, size int64) ([]byte, error) {
	if int64(int(size)) != size {
		return nil, fmt.Errorf("%s: file too large to map (%d bytes)", f.Name(), size)
	}

	m, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("unix.Mmap(%s): %w", f.Name(), err)
	}
	defer func() {
		_ = unix.Munmap(m)
	}()

	// we copy it front to back exactly once
	if err := unix.Madvise(m, unix.MADV_SEQUENTIAL); err != nil {
		return nil, fmt.Errorf("madvise: %w", err)
	}

	data := make([]byte, len(m))
	copy(data, m)
	return data, nil
}
