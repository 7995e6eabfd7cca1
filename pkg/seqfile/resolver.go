package seqfile

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/joe/seqfile/pkg/filesystem"
)

// resolver computes the first index worth trying in a folder.
type resolver struct {
	fs   filesystem.FileSystem
	form norm.Form
}

func (r *resolver) start(folder string, policy NamingPolicy, base int) (int, error) {
	switch p := policy.(type) {
	case *Affix:
		return r.afterHighest(folder, p, base)
	case Generator:
		return r.firstFree(folder, p, base)
	default:
		return 0, &ConfigurationError{Reason: fmt.Sprintf("unsupported naming policy %T", policy)}
	}
}

// afterHighest returns one past the numerically largest index present in
// folder, or base when the sequence has no members. Lower gaps stay empty.
func (r *resolver) afterHighest(folder string, affix *Affix, base int) (int, error) {
	dir, leaf := affix.split()
	if dir != "" {
		folder = r.fs.Join(folder, dir)
	}

	matcher := newAffixMatcher(leaf, r.form)
	scanner := r.fs.List(folder)
	highest := ""

	for {
		entry, ok := scanner.Next()
		if !ok {
			break
		}

		digits, ok := matcher.digits(entry.Name)
		if !ok {
			continue
		}

		if highest == "" || greaterDigits(digits, highest) {
			highest = digits
		}
	}

	if err := scanner.Err(); err != nil { //nolint:noinlineerr // Inline error check is idiomatic for scanner error handling
		return 0, err //nolint:wrapcheck // Already wrapped by the filesystem
	}

	if highest == "" {
		return base, nil
	}

	index, err := strconv.Atoi(trimZeros(highest))
	if err != nil || index == math.MaxInt {
		return 0, fmt.Errorf("%w: %s in %s", ErrIndexOverflow, affix.Name(0), folder)
	}

	return index + 1, nil
}

// firstFree probes fn(base), fn(base+1), ... and returns the first index whose
// name does not exist. Gaps are filled.
func (r *resolver) firstFree(folder string, fn Generator, base int) (int, error) {
	seen := make(map[string]int)

	for index := base; ; index++ {
		name := fn(index)
		if first, ok := seen[name]; ok {
			return 0, &ConfigurationError{
				Reason: fmt.Sprintf("generator returned %q for both %d and %d", name, first, index),
			}
		}

		seen[name] = index

		exists, err := r.fs.Exists(r.fs.Join(folder, name))
		if err != nil {
			return 0, err //nolint:wrapcheck // Already wrapped by the filesystem
		}

		if !exists {
			return index, nil
		}

		if index == math.MaxInt {
			return 0, fmt.Errorf("%w: generator names in %s", ErrIndexOverflow, folder)
		}
	}
}
