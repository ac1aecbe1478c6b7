package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileExists is returned when the destination file is already present.
// It matches fs.ErrExist with errors.Is.
var ErrFileExists = fmt.Errorf("destination already exists: %w", fs.ErrExist)

// WriteFileExclusive writes data to a new file at path.
//
// The file is created with mode 0644 using O_CREATE|O_EXCL, so an existing
// file is never truncated or overwritten: the call fails with an error
// matching ErrFileExists and leaves the existing file untouched. Of two
// concurrent writers to the same path exactly one succeeds.
//
// If writing fails after the file was created, the partial file is removed.
//
// Parameters:
//   - ctx: Context for cancellation, checked before the file is created
//   - path: File path to create
//   - data: Bytes to write
//
// Example:
//
//	err := WriteFileExclusive(ctx, "/tmp/alice_1month_4x4_2024-05-01_134501.jpg", image)
//	if errors.Is(err, ErrFileExists) {
//	    // choose another name
//	}
func WriteFileExclusive(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrFileExists)
		}
		return err
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(path)
		return werr
	}

	return nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// EnsureParentDir creates the directory that will hold the file at path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return EnsureDir(dir)
}
