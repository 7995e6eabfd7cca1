package seqfile

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Expander rewrites a folder before it is searched.
type Expander func(folder string) string

// ExpandFolder expands environment variables and then a leading ~ or ~user.
// Unset variables and unknown users are left as written.
func ExpandFolder(folder string) string {
	return expandHome(ExpandVariables(folder))
}

// ExpandVariables expands environment variables only. Remote folders use it,
// since ~ refers to the local user.
func ExpandVariables(folder string) string {
	return os.Expand(folder, func(name string) string {
		if value, ok := os.LookupEnv(name); ok {
			return value
		}

		return "$" + name
	})
}

func expandHome(folder string) string {
	if !strings.HasPrefix(folder, "~") {
		return folder
	}

	name, rest := folder[1:], ""
	if i := strings.IndexAny(name, "/"+string(filepath.Separator)); i >= 0 {
		name, rest = name[:i], name[i:]
	}

	var home string

	if name == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return folder
		}

		home = dir
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			return folder
		}

		home = u.HomeDir
	}

	return home + rest
}
