package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/kr/fs"
)

// realFileScanner implements FileScanner using a kr/fs walker that never
// descends below the scanned directory.
type realFileScanner struct {
	root    string
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

// newRealFileScanner creates a new scanner for the given directory.
func newRealFileScanner(root string) *realFileScanner {
	return &realFileScanner{
		root:  root,
		files: make([]FileInfo, 0),
		index: -1,
	}
}

// Next advances to the next entry and returns its info.
func (s *realFileScanner) Next() (FileInfo, bool) {
	// Scan on first call
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
func (s *realFileScanner) Err() error {
	return s.err
}

// scan collects the direct entries of the root directory.
func (s *realFileScanner) scan() {
	walker := fs.WalkFS(s.root, rootFollowingFS{root: s.root})
	atRoot := true

	for walker.Step() {
		if err := walker.Err(); err != nil { //nolint:noinlineerr // Inline error check is idiomatic for walker error handling
			s.err = fmt.Errorf("failed to list %s: %w", s.root, err)
			return
		}

		stat := walker.Stat()

		if atRoot {
			atRoot = false
			if !stat.IsDir() {
				s.err = fmt.Errorf("failed to list %s: %w", s.root, errNotDirectory)
				return
			}

			continue
		}

		if stat.IsDir() {
			walker.SkipDir()
		}

		s.files = append(s.files, FileInfo{
			Name:    stat.Name(),
			Size:    stat.Size(),
			ModTime: stat.ModTime(),
			IsDir:   stat.IsDir(),
		})
	}
}

// errNotDirectory carries the errno so the CLI exits with ENOTDIR.
var errNotDirectory error = syscall.ENOTDIR

// rootFollowingFS is the kr/fs view of the local disk used by the scanner.
// The root is resolved with Stat so that a symlinked directory (e.g. /tmp on
// macOS) is listed; everything below it is Lstat'ed and never followed.
type rootFollowingFS struct {
	root string
}

func (r rootFollowingFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}

func (r rootFollowingFS) Lstat(name string) (os.FileInfo, error) {
	if name == r.root {
		return os.Stat(name) //nolint:wrapcheck // Wrapped by the scanner
	}

	return os.Lstat(name) //nolint:wrapcheck // Wrapped by the scanner
}

func (r rootFollowingFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err //nolint:wrapcheck // Wrapped by the scanner
	}

	infos := make([]os.FileInfo, 0, len(entries))

	for _, entry := range entries {
		info, err := entry.Info()
		if errors.Is(err, os.ErrNotExist) {
			// Removed between readdir and lstat
			continue
		}

		if err != nil {
			return nil, err //nolint:wrapcheck // Wrapped by the scanner
		}

		infos = append(infos, info)
	}

	return infos, nil
}
