// Package seqfile finds the next unused file name in a numbered sequence and
// reserves it by creating an empty file there.
//
// Reservation relies on the filesystem's create-exclusive primitive, so any
// number of goroutines or processes may reserve in the same folder at once
// and each receives a distinct path.
package seqfile

import (
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/joe/seqfile/pkg/filesystem"
	"github.com/joe/seqfile/pkg/logger"
)

// DefaultMaxAttempts is the attempt budget used by NewRequest.
const DefaultMaxAttempts = 10

// Reserver claims a path by creating it, unless something already exists
// there. Every filesystem.FileSystem is a Reserver.
type Reserver interface {
	CreateExclusive(path string) (bool, error)
}

// Finder reserves files on one filesystem.
type Finder struct {
	fs       filesystem.FileSystem
	reserver Reserver
	resolver *resolver
	expand   Expander
	log      *logger.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithReserver replaces the filesystem's own CreateExclusive.
func WithReserver(reserver Reserver) Option {
	return func(f *Finder) {
		f.reserver = reserver
	}
}

// WithNormalization sets the form names are compared in. Defaults to HostForm.
func WithNormalization(form norm.Form) Option {
	return func(f *Finder) {
		f.resolver.form = form
	}
}

// WithExpander sets how the request folder is expanded. Defaults to
// ExpandFolder.
func WithExpander(expand Expander) Option {
	return func(f *Finder) {
		f.expand = expand
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *logger.Logger) Option {
	return func(f *Finder) {
		f.log = log
	}
}

// NewFinder creates a Finder working on fs.
func NewFinder(fs filesystem.FileSystem, opts ...Option) *Finder {
	finder := &Finder{
		fs:       fs,
		reserver: fs,
		resolver: &resolver{fs: fs, form: HostForm},
		expand:   ExpandFolder,
		log:      logger.Nop(),
	}

	for _, opt := range opts {
		opt(finder)
	}

	finder.log = finder.log.WithComponent("seqfile")

	return finder
}

// FindNextFile reserves the next file of req on the local filesystem and
// returns its path.
func FindNextFile(req Request) (string, error) {
	return NewFinder(filesystem.NewRealFileSystem()).Find(req)
}

// Find reserves the next file of req and returns its path. The file exists
// and is empty when Find returns.
//
// The starting index is resolved once. Each lost claim moves on to the next
// index without looking at the folder again, until req.MaxAttempts claims
// have been lost.
func (f *Finder) Find(req Request) (string, error) {
	policy, err := req.Policy()
	if err != nil {
		return "", err
	}

	folder := req.Folder
	if folder == "" {
		folder = "."
	}

	folder = f.expand(folder)

	if req.MaxAttempts <= 0 {
		return "", &ExhaustedError{Folder: folder, Attempts: 0}
	}

	start, err := f.resolver.start(folder, policy, req.Base)
	if err != nil {
		return "", err
	}

	log := f.log.With("folder", folder)
	log.Debugw("resolved start index", "index", start)

	for attempt := range req.MaxAttempts {
		if start > math.MaxInt-attempt {
			return "", fmt.Errorf("%w: %d + %d in %s", ErrIndexOverflow, start, attempt, folder)
		}

		index := start + attempt
		path := f.fs.Join(folder, policy.Name(index))

		claimed, err := f.reserver.CreateExclusive(path)
		if err != nil {
			return "", err //nolint:wrapcheck // Already wrapped by the filesystem
		}

		if claimed {
			log.Debugw("claimed", "path", path, "index", index, "attempt", attempt+1)
			return path, nil
		}

		log.Debugw("lost claim", "path", path, "index", index, "attempt", attempt+1)
	}

	return "", &ExhaustedError{Folder: folder, Attempts: req.MaxAttempts}
}
