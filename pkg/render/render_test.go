// pkg/render/render_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test match-line composition: wrapping, indent, color, hyperlinks

package render_test

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/docxgrep/pkg/matcher"
	"github.com/arthur-debert/docxgrep/pkg/render"
)

func mustMatcher(t *testing.T, pattern string) *matcher.Matcher {
	t.Helper()
	m, err := matcher.Compile(pattern, false)
	require.NoError(t, err)
	return m
}

func TestWrapWidth(t *testing.T) {
	tests := []struct {
		name    string
		columns int
		margin  int
		want    int
	}{
		{"typical", 80, 8, 72},
		{"narrow", 25, 8, 20},
		{"exactly_floor", 28, 8, 20},
		{"zero_columns", 0, 8, 20},
		{"negative_columns", -5, 8, 20},
		{"default_margin", 100, 0, 92},
		{"custom_margin", 100, 40, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.WrapWidth(tt.columns, tt.margin))
		})
	}
}

func TestFormatPlain(t *testing.T) {
	f := render.New(render.Config{TerminalColumns: 80}, mustMatcher(t, "cat"))
	got := f.Format("notes.docx", 1, "The cat sat")
	assert.Equal(t, "notes.docx [Paragraph 1]: The cat sat", got)
}

func TestFormatInitialTab(t *testing.T) {
	f := render.New(render.Config{InitialTab: true, TerminalColumns: 80}, mustMatcher(t, "cat"))
	got := f.Format("notes.docx", 3, "The cat sat")
	assert.Equal(t, "\tnotes.docx [Paragraph 3]: The cat sat", got)
}

func TestFormatColor(t *testing.T) {
	f := render.New(render.Config{Color: true, TerminalColumns: 80}, mustMatcher(t, "cat"))
	got := f.Format("notes.docx", 1, "The cat sat")

	assert.Equal(t,
		"\x1b[32mnotes.docx [Paragraph 1]: \x1b[0mThe \x1b[31mcat\x1b[0m sat",
		got)
}

func TestFormatColorHighlightsEverySpan(t *testing.T) {
	f := render.New(render.Config{Color: true, TerminalColumns: 80}, mustMatcher(t, "cat"))
	got := f.Format("notes.docx", 2, "cat and cat")
	assert.Equal(t, 2, strings.Count(got, "\x1b[31mcat\x1b[0m"))
}

func TestFormatHangingIndent(t *testing.T) {
	f := render.New(render.Config{HangingIndent: true, TerminalColumns: 40}, mustMatcher(t, "cat"))
	text := "the quick brown fox jumps over the lazy cat while the dog watches from the porch"
	got := f.Format("notes.docx", 1, text)

	lines := strings.Split(got, "\n")
	require.Greater(t, len(lines), 2, "expected prefix line plus wrapped body")
	assert.Equal(t, "notes.docx [Paragraph 1]: ", lines[0])
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "\t"), "body line not tab-indented: %q", line)
		// visible width (minus the tab) stays within the wrap width
		assert.LessOrEqual(t, ansi.PrintableRuneWidth(strings.TrimPrefix(line, "\t")), 32)
	}

	// wrapping never loses body text
	joined := strings.ReplaceAll(strings.Join(lines[1:], " "), "\t", "")
	assert.Equal(t, text, joined)
}

func TestFormatHangingIndentColorAppliedAfterWrap(t *testing.T) {
	f := render.New(render.Config{
		HangingIndent:   true,
		Color:           true,
		TerminalColumns: 40,
	}, mustMatcher(t, "cat"))
	got := f.Format("notes.docx", 1, "a cat in a very long paragraph that must wrap across several lines to test things")

	lines := strings.Split(got, "\n")
	for _, line := range lines[1:] {
		// escape sequences must not count against the wrap width
		assert.LessOrEqual(t, ansi.PrintableRuneWidth(line), 33)
	}
	assert.Contains(t, got, "\x1b[31mcat\x1b[0m")
}

func TestFormatHyperlink(t *testing.T) {
	f := render.New(render.Config{Hyperlink: true, TerminalColumns: 80}, mustMatcher(t, "cat"))
	got := f.Format("notes.docx", 1, "The cat sat")

	assert.Contains(t, got, "\x1b]8;;file://")
	assert.Contains(t, got, "notes.docx\x1b]8;;\x1b\\ [Paragraph 1]: The cat sat")
}

func TestFormatBodyIndependentOfStyling(t *testing.T) {
	plain := render.New(render.Config{TerminalColumns: 80}, mustMatcher(t, "cat"))
	styled := render.New(render.Config{Color: true, TerminalColumns: 80}, mustMatcher(t, "cat"))

	text := "The cat sat"
	p := plain.Format("n.docx", 1, text)
	s := styled.Format("n.docx", 1, text)

	strip := func(in string) string {
		out := strings.ReplaceAll(in, "\x1b[32m", "")
		out = strings.ReplaceAll(out, "\x1b[31m", "")
		return strings.ReplaceAll(out, "\x1b[0m", "")
	}
	assert.Equal(t, p, strip(s))
}
