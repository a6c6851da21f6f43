// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package fileio reads whole files into memory and writes them back
// atomically.
package fileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadFile returns the contents of path in a buffer owned by the caller.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	stats, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}
	if stats.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	if !stats.Mode().IsRegular() {
		// pipes and devices have no meaningful size; read until EOF
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("io.ReadAll(%s): %w", path, err)
		}
		return b, nil
	}
	if stats.Size() == 0 {
		return []byte{}, nil
	}

	return readAll(f, stats.Size())
}

// WriteFile writes data to path.  The data goes to a temporary file in
// the same directory that is synced and then renamed over path, so path
// either keeps its old contents or has all of data -- never a prefix.
// If path is a symlink, the file it points to is replaced and the link
// is left alone.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("filepath.Abs: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filepath.EvalSymlinks(%s): %w", path, err)
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".pngmsg.*.tmp")
	if err != nil {
		return fmt.Errorf("CreateTemp failed (may need permissions for dir containing %s): %w", path, err)
	}
	tmpPath := f.Name()
	// if anything below fails, clean up the temp file
	committed := false
	defer func() {
		if !committed {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("f.Write: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("f.Sync: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("f.Close: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("os.Chmod(%o): %w", perm, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}
	committed = true

	return nil
}

// Mode returns the permission bits of path, or def if path doesn't
// exist, so rewritten files keep their permissions.
func Mode(path string, def fs.FileMode) (fs.FileMode, error) {
	stats, err := os.Stat(path)
	if os.IsNotExist(err) {
		return def, nil
	} else if err != nil {
		return 0, fmt.Errorf("os.Stat(%s): %w", path, err)
	}
	return stats.Mode().Perm(), nil
}
