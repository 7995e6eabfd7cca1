package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MockFileSystem is an in-memory filesystem implementation for testing.
type MockFileSystem struct {
	mu         sync.RWMutex
	files      map[string]*mockFile
	createErrs map[string]error
	transform  func(string) string
	creates    int
}

// mockFile represents a file in the mock filesystem.
type mockFile struct {
	path    string
	modTime time.Time
	isDir   bool
}

// NewMockFileSystem creates a new in-memory filesystem whose root "/" exists.
func NewMockFileSystem() *MockFileSystem {
	fs := &MockFileSystem{
		files:      make(map[string]*mockFile),
		createErrs: make(map[string]error),
	}
	fs.files["/"] = &mockFile{path: "/", modTime: time.Now(), isDir: true}

	return fs
}

// WithNameTransform makes the mock rewrite every path it stores, the way
// HFS+ decomposes Unicode names on disk. Lookups go through the same
// transform. The transform must leave separators alone.
func (fs *MockFileSystem) WithNameTransform(transform func(string) string) *MockFileSystem {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.transform = transform

	return fs
}

// FailCreate makes CreateExclusive(path) return err.
func (fs *MockFileSystem) FailCreate(path string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.createErrs[fs.key(path)] = err
}

// Creates returns how many files CreateExclusive has brought into existence.
func (fs *MockFileSystem) Creates() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.creates
}

// AddFile creates an empty file, creating parent directories as needed.
func (fs *MockFileSystem) AddFile(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	key := fs.key(path)
	fs.mkdirAllLocked(filepath.Dir(key))
	fs.files[key] = &mockFile{path: key, modTime: time.Now()}
}

// MkdirAll creates a directory and all necessary parents.
func (fs *MockFileSystem) MkdirAll(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.mkdirAllLocked(fs.key(path))
}

// CreateExclusive creates an empty file at path if nothing exists there.
func (fs *MockFileSystem) CreateExclusive(path string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	key := fs.key(path)

	if err, ok := fs.createErrs[key]; ok {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, exists := fs.files[key]; exists {
		return false, nil
	}

	parent, exists := fs.files[filepath.Dir(key)]
	if !exists {
		return false, fmt.Errorf("failed to create %s: %w", path,
			&os.PathError{Op: "open", Path: path, Err: os.ErrNotExist})
	}

	if !parent.isDir {
		return false, fmt.Errorf("failed to create %s: %w", path,
			&os.PathError{Op: "open", Path: path, Err: errNotDirectory})
	}

	fs.files[key] = &mockFile{path: key, modTime: time.Now()}
	fs.creates++

	return true, nil
}

// Exists reports whether path exists.
func (fs *MockFileSystem) Exists(path string) (bool, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.files[fs.key(path)]

	return exists, nil
}

// Join joins path elements with the host separator.
func (fs *MockFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// List returns an iterator over the entries of dir.
func (fs *MockFileSystem) List(dir string) FileScanner {
	return newMockFileScanner(fs, fs.key(dir))
}

// key cleans path and applies the name transform to it.
func (fs *MockFileSystem) key(path string) string {
	cleaned := filepath.Clean(path)
	if fs.transform == nil {
		return cleaned
	}

	return fs.transform(cleaned)
}

// mkdirAllLocked is the internal implementation that assumes the lock is held.
func (fs *MockFileSystem) mkdirAllLocked(path string) {
	if path == "." || path == "/" {
		return
	}

	fs.mkdirAllLocked(filepath.Dir(path))

	if _, exists := fs.files[path]; !exists {
		fs.files[path] = &mockFile{path: path, modTime: time.Now(), isDir: true}
	}
}
