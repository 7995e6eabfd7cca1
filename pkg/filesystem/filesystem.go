// Package filesystem provides an abstraction layer for the filesystem operations
// needed to reserve files in a directory, so that local, remote and in-memory
// backends can be swapped for each other and for tests.
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFilePermissions is the mode (before umask) used for reserved files.
const DefaultFilePermissions os.FileMode = 0o666

// FileSystem is an interface that abstracts filesystem operations.
// This allows for dependency injection and testing with mock implementations.
type FileSystem interface {
	// List returns an iterator over the direct entries of a directory.
	// Subdirectories are reported but never descended into.
	List(dir string) FileScanner

	// Exists reports whether path exists. A missing path is (false, nil);
	// any other failure to find out is returned as an error.
	Exists(path string) (bool, error)

	// CreateExclusive creates path as a new empty file only if nothing exists
	// there yet. It returns (false, nil) when the path already exists and an
	// error for every other failure.
	CreateExclusive(path string) (bool, error)

	// Join joins path elements using the separator of the backend.
	Join(elem ...string) string
}

// RealFileSystem implements FileSystem using actual os/filepath functions.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// CreateExclusive atomically creates an empty file at path.
// O_EXCL makes the kernel the arbiter when several processes race for the
// same name: exactly one of them gets a nil error.
func (fs *RealFileSystem) CreateExclusive(path string) (bool, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, DefaultFilePermissions)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}

	err = file.Close()
	if err != nil {
		return true, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return true, nil
}

// Exists reports whether path exists.
func (fs *RealFileSystem) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}

// Join joins path elements with the host separator.
func (fs *RealFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// List returns an iterator over the entries of dir.
func (fs *RealFileSystem) List(dir string) FileScanner {
	return newRealFileScanner(dir)
}
