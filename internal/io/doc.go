// Package ioutils provides file system utilities for saving collages.
//
// This package contains functions for:
//   - Exclusive file creation that never overwrites
//   - Directory creation
//
// # Writing Collages
//
//	err := ioutils.WriteFileExclusive(ctx, "/path/to/collage.jpg", data)
//	if errors.Is(err, ioutils.ErrFileExists) {
//	    // the existing file was left alone
//	}
//
// # Directories
//
//	// Ensure the output directory exists
//	err := ioutils.EnsureParentDir("/path/to/new/directory/collage.jpg")
package ioutils
