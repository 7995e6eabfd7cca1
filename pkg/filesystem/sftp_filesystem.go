package filesystem

import (
	"errors"
	"fmt"
	"os"

	"github.com/pkg/sftp"
)

// SFTPFileSystem implements FileSystem for SFTP connections.
type SFTPFileSystem struct {
	client *sftp.Client
}

// NewSFTPFileSystem creates a new SFTP filesystem over an open SFTP session.
func NewSFTPFileSystem(client *sftp.Client) *SFTPFileSystem {
	return &SFTPFileSystem{client: client}
}

// CreateExclusive creates an empty remote file if nothing exists at path.
// The open request carries SSH_FXF_EXCL, so the server arbitrates races. SFTPv3
// has no status code for "already exists", so a failed open is classified by
// looking at the path afterwards.
func (fs *SFTPFileSystem) CreateExclusive(path string) (bool, error) {
	file, err := fs.client.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}

		exists, statErr := fs.Exists(path)
		if statErr == nil && exists {
			return false, nil
		}

		return false, fmt.Errorf("failed to create remote file %s: %w", path, err)
	}

	err = file.Close()
	if err != nil {
		return true, fmt.Errorf("failed to close remote file %s: %w", path, err)
	}

	return true, nil
}

// Exists reports whether a remote path exists.
func (fs *SFTPFileSystem) Exists(path string) (bool, error) {
	_, err := fs.client.Lstat(path)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("failed to stat remote file %s: %w", path, err)
}

// Join joins remote path elements with forward slashes.
func (fs *SFTPFileSystem) Join(elem ...string) string {
	return fs.client.Join(elem...)
}

// List returns an iterator over the entries of a remote directory.
func (fs *SFTPFileSystem) List(dir string) FileScanner {
	return newSFTPScanner(fs.client, dir)
}
