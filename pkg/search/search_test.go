// pkg/search/search_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory document source
// PURPOSE: Test orchestration, early-exit policies, and aggregate invariants

package search_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/docxgrep/pkg/docx"
	"github.com/arthur-debert/docxgrep/pkg/matcher"
	"github.com/arthur-debert/docxgrep/pkg/render"
	"github.com/arthur-debert/docxgrep/pkg/search"
)

func newOrchestrator(t *testing.T, src docx.Source, pattern string, opts search.Options) *search.Orchestrator {
	t.Helper()
	m, err := matcher.Compile(pattern, false)
	require.NoError(t, err)
	f := render.New(render.Config{TerminalColumns: 80}, m)
	return search.NewOrchestrator(src, m, f, opts)
}

func catDocument() map[string][]string {
	return map[string][]string{
		"cats.docx": {"The cat sat", "No match here", "cat cat"},
	}
}

func TestRunFullMode(t *testing.T) {
	src := docx.NewMemorySource(catDocument())
	o := newOrchestrator(t, src, "cat", search.Options{Mode: search.ModeFull})

	agg, anyMatch := o.Run([]string{"cats.docx"}, nil)

	assert.True(t, anyMatch)
	require.Len(t, agg.Lines, 2)
	assert.Equal(t, "cats.docx [Paragraph 1]: The cat sat", agg.Lines[0].Text)
	assert.Equal(t, "cats.docx [Paragraph 3]: cat cat", agg.Lines[1].Text)
	assert.Equal(t, 2, agg.TotalMatches)
	assert.Equal(t, 2, agg.MatchedFiles["cats.docx"])
}

func TestRunNoMatch(t *testing.T) {
	src := docx.NewMemorySource(catDocument())
	o := newOrchestrator(t, src, "zzz", search.Options{Mode: search.ModeFull})

	agg, anyMatch := o.Run([]string{"cats.docx"}, nil)

	assert.False(t, anyMatch)
	assert.Empty(t, agg.Lines)
	assert.Zero(t, agg.TotalMatches)
	assert.Equal(t, []string{"cats.docx"}, agg.UnmatchedPaths())
}

func TestRunQuietHaltsWholeRun(t *testing.T) {
	src := docx.NewMemorySource(map[string][]string{
		"first.docx":  {"nothing"},
		"second.docx": {"a cat appears"},
		"third.docx":  {"another cat"},
	})
	o := newOrchestrator(t, src, "cat", search.Options{Mode: search.ModeQuiet})

	_, anyMatch := o.Run([]string{"first.docx", "second.docx", "third.docx"}, nil)

	assert.True(t, anyMatch)
	// third.docx must never be read from the source
	assert.Equal(t, []string{"first.docx", "second.docx"}, src.Opened)
}

func TestRunQuietNoMatch(t *testing.T) {
	src := docx.NewMemorySource(catDocument())
	o := newOrchestrator(t, src, "zzz", search.Options{Mode: search.ModeQuiet})

	_, anyMatch := o.Run([]string{"cats.docx"}, nil)
	assert.False(t, anyMatch)
}

func TestRunFilesWithMatchesStopsAtFirstMatch(t *testing.T) {
	src := docx.NewMemorySource(catDocument())
	o := newOrchestrator(t, src, "cat", search.Options{Mode: search.ModeFilesWithMatches})

	agg, anyMatch := o.Run([]string{"cats.docx"}, nil)

	assert.True(t, anyMatch)
	// Existence only: the count stays at one even though two paragraphs match
	assert.Equal(t, 1, agg.MatchedFiles["cats.docx"])
	assert.Equal(t, []string{"cats.docx"}, agg.MatchedPaths())
}

func TestRunFilesWithMatchesAndCountKeepsCounting(t *testing.T) {
	src := docx.NewMemorySource(catDocument())
	o := newOrchestrator(t, src, "cat", search.Options{
		Mode:  search.ModeFilesWithMatches,
		Count: true,
	})

	agg, _ := o.Run([]string{"cats.docx"}, nil)
	assert.Equal(t, 2, agg.MatchedFiles["cats.docx"])
	assert.Equal(t, 2, agg.TotalMatches)
}

func TestRunReadErrorDegradesToUnmatched(t *testing.T) {
	src := docx.NewMemorySource(catDocument()).
		FailWith("broken.docx", fmt.Errorf("zip: not a valid zip file"))
	o := newOrchestrator(t, src, "cat", search.Options{Mode: search.ModeFull})

	agg, anyMatch := o.Run([]string{"broken.docx", "cats.docx"}, nil)

	// the bad file never aborts the run
	assert.True(t, anyMatch)
	assert.True(t, agg.IsUnmatched("broken.docx"))
	assert.Equal(t, 2, agg.MatchedFiles["cats.docx"])
}

func TestRunProgressCallback(t *testing.T) {
	src := docx.NewMemorySource(map[string][]string{
		"a.docx": {"x"},
		"b.docx": {"y"},
	})
	o := newOrchestrator(t, src, "zzz", search.Options{Mode: search.ModeFull})

	ticks := 0
	o.Run([]string{"a.docx", "b.docx"}, func() { ticks++ })
	assert.Equal(t, 2, ticks)
}

func TestAggregateInvariants(t *testing.T) {
	src := docx.NewMemorySource(map[string][]string{
		"one.docx":   {"cat", "dog", "cat"},
		"two.docx":   {"cat"},
		"three.docx": {"nothing"},
	})
	o := newOrchestrator(t, src, "cat", search.Options{Mode: search.ModeFull})

	agg, _ := o.Run([]string{"one.docx", "two.docx", "three.docx"}, nil)

	// total equals the sum of per-file counts
	sum := 0
	for _, n := range agg.MatchedFiles {
		sum += n
	}
	assert.Equal(t, agg.TotalMatches, sum)

	// per-file count equals the number of rendered lines for that file
	perFile := map[string]int{}
	for _, line := range agg.Lines {
		perFile[line.File]++
	}
	assert.Equal(t, agg.MatchedFiles, perFile)

	// matched and unmatched sets are disjoint
	for path := range agg.MatchedFiles {
		assert.False(t, agg.IsUnmatched(path), "%s in both sets", path)
	}
}
