// Package matcher wraps a compiled regular expression for paragraph
// matching and match-span highlighting.
package matcher

import (
	"regexp"

	"github.com/arthur-debert/docxgrep/pkg/errors"
)

// Matcher is an immutable compiled pattern
type Matcher struct {
	re *regexp.Regexp
}

// Compile builds a Matcher from a pattern string.
// With ignoreCase the pattern is compiled case-insensitively.
func Compile(pattern string, ignoreCase bool) (*Matcher, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPatternInvalid, "cannot compile pattern").
			WithDetail("pattern", pattern)
	}
	return &Matcher{re: re}, nil
}

// Matches reports whether text contains at least one match
func (m *Matcher) Matches(text string) bool {
	return m.re.MatchString(text)
}

// Highlight replaces every non-overlapping match span, leftmost first,
// with wrap(span). Text outside match spans is returned unchanged.
func (m *Matcher) Highlight(text string, wrap func(string) string) string {
	return m.re.ReplaceAllStringFunc(text, wrap)
}

// Pattern returns the source pattern, including any case-folding prefix
func (m *Matcher) Pattern() string {
	return m.re.String()
}
