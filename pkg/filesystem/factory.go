package filesystem

import (
	"fmt"
)

// CreateFileSystem creates a FileSystem for the given directory.
// Returns (filesystem, parsed, closer, error).
// - filesystem: The FileSystem to use for operations
// - parsed: The parsed location; parsed.Dir() is the path to use with the filesystem
// - closer: A function to call when done (closes SFTP connections), never nil
func CreateFileSystem(pathStr string) (FileSystem, *ParsedPath, func(), error) {
	parsed, err := ParsePath(pathStr)
	if err != nil {
		return nil, nil, nil, err
	}

	if !parsed.IsRemote {
		return NewRealFileSystem(), parsed, func() {}, nil
	}

	conn, err := Connect(parsed.Host, parsed.Port, parsed.User)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			parsed.User, parsed.Host, parsed.Port, err)
	}

	closer := func() {
		_ = conn.Close()
	}

	return NewSFTPFileSystem(conn.Client()), parsed, closer, nil
}

// Dir returns the directory path in the namespace of its filesystem.
func (p *ParsedPath) Dir() string {
	if p.IsRemote {
		return p.Path
	}

	return p.LocalPath
}
