package seqfile

import (
	"runtime"

	"golang.org/x/text/unicode/norm"
)

// HostForm is the Unicode normalization form file names are compared in.
// macOS filesystems store names decomposed; everything else is compared
// composed.
var HostForm = FormFor(runtime.GOOS)

// FormFor returns the normalization form used for names on goos.
func FormFor(goos string) norm.Form {
	switch goos {
	case "darwin", "ios":
		return norm.NFD
	default:
		return norm.NFC
	}
}
