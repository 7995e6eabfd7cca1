package filesystem

import (
	"fmt"
	"os"

	"github.com/kr/fs"
	"github.com/pkg/sftp"
)

// sftpScanner implements FileScanner for SFTP directories.
type sftpScanner struct {
	client  *sftp.Client
	root    string
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

// newSFTPScanner creates a new scanner for the given SFTP directory.
func newSFTPScanner(client *sftp.Client, root string) *sftpScanner {
	return &sftpScanner{
		client: client,
		root:   root,
		files:  make([]FileInfo, 0),
		index:  -1,
	}
}

// Err returns any error that occurred during scanning.
func (s *sftpScanner) Err() error {
	return s.err
}

// Next advances to the next entry and returns its info.
func (s *sftpScanner) Next() (FileInfo, bool) {
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

// scan collects the direct entries of the remote root directory.
func (s *sftpScanner) scan() {
	walker := fs.WalkFS(s.root, sftpRootFS{Client: s.client, root: s.root})
	atRoot := true

	for walker.Step() {
		if err := walker.Err(); err != nil { //nolint:noinlineerr // Inline error check is idiomatic for walker error handling
			s.err = fmt.Errorf("error scanning SFTP directory %s: %w", s.root, err)
			return
		}

		stat := walker.Stat()

		if atRoot {
			atRoot = false
			if !stat.IsDir() {
				s.err = fmt.Errorf("error scanning SFTP directory %s: %w", s.root, errNotDirectory)
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

// sftpRootFS follows a symlinked scan root, like rootFollowingFS does locally.
type sftpRootFS struct {
	*sftp.Client
	root string
}

func (r sftpRootFS) Lstat(name string) (os.FileInfo, error) {
	if name == r.root {
		return r.Client.Stat(name) //nolint:wrapcheck // Wrapped by the scanner
	}

	return r.Client.Lstat(name) //nolint:wrapcheck // Wrapped by the scanner
}
