package seqfile

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// NamingPolicy turns a sequence index into a file name. It is either an
// *Affix or a Generator.
type NamingPolicy interface {
	Name(index int) string

	namingPolicy()
}

// Affix names files prefix + index + suffix. Either part may be empty, not
// both. The prefix may start with a relative directory ("logs/run."), which
// is then searched instead of the folder itself. The suffix must not contain
// a separator.
type Affix struct {
	Prefix string
	Suffix string
}

// Name returns the file name for index.
func (a *Affix) Name(index int) string {
	return a.Prefix + strconv.Itoa(index) + a.Suffix
}

func (*Affix) namingPolicy() {}

// split returns the directory part of the prefix, including its trailing
// separator, and the affix that names entries inside that directory.
func (a *Affix) split() (string, *Affix) {
	i := strings.LastIndexFunc(a.Prefix, isSeparator)
	if i < 0 {
		return "", a
	}

	return a.Prefix[:i+1], &Affix{Prefix: a.Prefix[i+1:], Suffix: a.Suffix}
}

func isSeparator(r rune) bool {
	return r == '/' || r == filepath.Separator
}

// Generator maps an index to a full file name. It must be pure and
// injective; returning a name it already returned while probing is a
// ConfigurationError.
type Generator func(index int) string

// Name returns the file name for index.
func (g Generator) Name(index int) string {
	return g(index)
}

func (Generator) namingPolicy() {}

// Request describes one reservation.
type Request struct {
	Folder      string // "" means "."
	Affix       *Affix
	Generator   Generator
	Base        int
	MaxAttempts int
}

// NewRequest returns a request for folder with the default attempt budget.
// The caller still has to pick a naming policy.
func NewRequest(folder string) Request {
	if folder == "" {
		folder = "."
	}

	return Request{
		Folder:      folder,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Policy validates the request and returns its naming policy.
func (r Request) Policy() (NamingPolicy, error) {
	switch {
	case r.Affix != nil && r.Generator != nil:
		return nil, &ConfigurationError{Reason: "cannot use a prefix/suffix together with a name generator"}
	case r.Affix == nil && r.Generator == nil:
		return nil, &ConfigurationError{Reason: "need a prefix/suffix or a name generator"}
	case r.Affix != nil && r.Affix.Prefix == "" && r.Affix.Suffix == "":
		return nil, &ConfigurationError{Reason: "prefix and suffix are both empty"}
	case r.Affix != nil && strings.ContainsFunc(r.Affix.Suffix, isSeparator):
		return nil, &ConfigurationError{Reason: fmt.Sprintf("suffix %q must not contain a path separator", r.Affix.Suffix)}
	case r.Base < 0:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("base must not be negative, got %d", r.Base)}
	}

	if r.Affix != nil {
		return r.Affix, nil
	}

	return r.Generator, nil
}
