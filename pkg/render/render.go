// Package render turns a paragraph match into its final printable line.
//
// The composition order matters: wrapping happens on plain text before any
// escape sequences are added, because escapes have zero visible width but
// nonzero length and would corrupt the wrap arithmetic.
package render

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/arthur-debert/docxgrep/pkg/matcher"
	"github.com/arthur-debert/docxgrep/pkg/terminal"
)

// Semantic color roles, fixed at the formatting boundary
const (
	ansiPrefix = "\x1b[32m" // green: the "path [Paragraph n]:" prefix
	ansiMatch  = "\x1b[31m" // red: matched spans in the body
	ansiReset  = "\x1b[0m"
)

const (
	// MinWrapWidth is the floor for hanging-indent wrapping, whatever the
	// terminal reports
	MinWrapWidth = 20

	// DefaultMargin is subtracted from the terminal width before wrapping
	DefaultMargin = 8
)

// Config is the immutable rendering configuration for a run
type Config struct {
	Color         bool
	Hyperlink     bool
	InitialTab    bool
	HangingIndent bool

	// TerminalColumns is the detected terminal width; callers pass 80
	// when detection fails
	TerminalColumns int

	// Margin overrides DefaultMargin when positive
	Margin int
}

// Formatter renders paragraph matches under one Config
type Formatter struct {
	cfg Config
	m   *matcher.Matcher
}

// New creates a Formatter for the given configuration and pattern
func New(cfg Config, m *matcher.Matcher) *Formatter {
	return &Formatter{cfg: cfg, m: m}
}

// WrapWidth computes the visible wrap width for a terminal of the given
// column count. Never below MinWrapWidth, including for zero or negative
// column counts.
func WrapWidth(columns, margin int) int {
	if margin <= 0 {
		margin = DefaultMargin
	}
	width := columns - margin
	if width < MinWrapWidth {
		return MinWrapWidth
	}
	return width
}

// Format renders one match: the document path, the 1-based paragraph
// index, and the paragraph text.
func (f *Formatter) Format(path string, index int, text string) string {
	// 1. Plain body, then sizing while the text is still escape-free.
	body := text
	if f.cfg.HangingIndent {
		width := WrapWidth(f.cfg.TerminalColumns, f.cfg.Margin)
		body = indentLines(wordwrap.String(body, width))
	}

	// 2. Display prefix, hyperlinked and tabbed as requested.
	display := path
	if f.cfg.Hyperlink {
		display = terminal.Hyperlink(path)
	}
	prefix := fmt.Sprintf("%s [Paragraph %d]: ", display, index)
	if f.cfg.InitialTab {
		prefix = "\t" + prefix
	}

	// 3. Styling last, so the wrap math above never saw an escape byte.
	if f.cfg.Color {
		prefix = ansiPrefix + prefix + ansiReset
		body = f.m.Highlight(body, func(span string) string {
			return ansiMatch + span + ansiReset
		})
	}

	if f.cfg.HangingIndent {
		return prefix + "\n" + body
	}
	return prefix + body
}

// indentLines prefixes every wrapped sub-line with one tab, first line
// included.
func indentLines(s string) string {
	return "\t" + strings.ReplaceAll(s, "\n", "\n\t")
}
