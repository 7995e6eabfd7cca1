package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// mockFileScanner implements FileScanner for MockFileSystem.
type mockFileScanner struct {
	fs      *MockFileSystem
	root    string
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

// newMockFileScanner creates a new scanner for the given directory.
func newMockFileScanner(fs *MockFileSystem, root string) *mockFileScanner {
	return &mockFileScanner{
		fs:    fs,
		root:  root,
		files: make([]FileInfo, 0),
		index: -1,
	}
}

// Next advances to the next entry and returns its info.
func (s *mockFileScanner) Next() (FileInfo, bool) {
	if !s.scanned {
		s.scan()
		s.scanned = true
	}

	if s.err != nil {
		return FileInfo{}, false
	}

	s.index++
	if s.index >= len(s.files) {
		return FileInfo{}, false
	}

	return s.files[s.index], true
}

// Err returns any error that occurred during scanning.
func (s *mockFileScanner) Err() error {
	return s.err
}

// scan collects the direct children of the root directory.
func (s *mockFileScanner) scan() {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	root, exists := s.fs.files[s.root]
	if !exists {
		s.err = fmt.Errorf("failed to list %s: %w", s.root,
			&os.PathError{Op: "open", Path: s.root, Err: os.ErrNotExist})

		return
	}

	if !root.isDir {
		s.err = fmt.Errorf("failed to list %s: %w", s.root, errNotDirectory)
		return
	}

	for path, file := range s.fs.files {
		if path == s.root || filepath.Dir(path) != s.root {
			continue
		}

		s.files = append(s.files, FileInfo{
			Name:    filepath.Base(path),
			ModTime: file.modTime,
			IsDir:   file.isDir,
		})
	}

	// Sort by name for consistent ordering, like os.ReadDir
	sort.Slice(s.files, func(i, j int) bool {
		return s.files[i].Name < s.files[j].Name
	})
}
