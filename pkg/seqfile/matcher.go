package seqfile

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/unicode/norm"
)

// affixMatcher recognizes names of the form prefix + digits + suffix after
// normalization. The glob is a cheap prefilter; the regexp decides.
type affixMatcher struct {
	form norm.Form
	glob string
	re   *regexp.Regexp
}

func newAffixMatcher(affix *Affix, form norm.Form) *affixMatcher {
	prefix := form.String(affix.Prefix)
	suffix := form.String(affix.Suffix)

	return &affixMatcher{
		form: form,
		glob: escapeGlob(prefix) + "*" + escapeGlob(suffix),
		re:   regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + "([0-9]+)" + regexp.QuoteMeta(suffix) + "$"),
	}
}

// digits returns the index digit run of name, if name belongs to the sequence.
func (m *affixMatcher) digits(name string) (string, bool) {
	name = m.form.String(name)

	ok, err := doublestar.Match(m.glob, name)
	if err != nil || !ok {
		return "", false
	}

	sub := m.re.FindStringSubmatch(name)
	if sub == nil {
		return "", false
	}

	return sub[1], true
}

func escapeGlob(s string) string {
	var b strings.Builder

	for _, r := range s {
		switch r {
		case '\\', '*', '?', '[', ']', '{', '}':
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}

// greaterDigits compares two ASCII digit runs as numbers of any size.
func greaterDigits(a, b string) bool {
	a = trimZeros(a)
	b = trimZeros(b)

	if len(a) != len(b) {
		return len(a) > len(b)
	}

	return a > b
}

func trimZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}

	return s
}
