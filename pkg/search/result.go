package search

import "sort"

// RenderedLine is one fully formatted match line, tagged with the file it
// came from
type RenderedLine struct {
	File string
	Text string
}

// Aggregate accumulates the outcome of a run. It has exactly one writer
// (the orchestrator) for its whole lifetime and is read-only afterward.
//
// Invariants: MatchedFiles[p] equals the number of Lines entries for p
// when lines are rendered; TotalMatches is the sum over MatchedFiles; a
// path is never both matched and unmatched.
type Aggregate struct {
	// Lines holds rendered match lines in discovery order
	Lines []RenderedLine

	// MatchedFiles maps each matched path to its match count
	MatchedFiles map[string]int

	// matchedOrder preserves first-seen order for -l output
	matchedOrder []string

	unmatched map[string]struct{}

	// TotalMatches is the grand total across all files
	TotalMatches int
}

// NewAggregate returns an empty accumulator
func NewAggregate() *Aggregate {
	return &Aggregate{
		MatchedFiles: make(map[string]int),
		unmatched:    make(map[string]struct{}),
	}
}

// RecordMatched registers a file's match count and rendered lines
func (a *Aggregate) RecordMatched(path string, count int, lines []RenderedLine) {
	a.MatchedFiles[path] = count
	a.matchedOrder = append(a.matchedOrder, path)
	a.Lines = append(a.Lines, lines...)
	a.TotalMatches += count
}

// RecordUnmatched registers a file that yielded no match
func (a *Aggregate) RecordUnmatched(path string) {
	a.unmatched[path] = struct{}{}
}

// MatchedPaths returns matched files in discovery order
func (a *Aggregate) MatchedPaths() []string {
	return a.matchedOrder
}

// UnmatchedPaths returns unmatched files, stably sorted
func (a *Aggregate) UnmatchedPaths() []string {
	paths := make([]string, 0, len(a.unmatched))
	for p := range a.unmatched {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// IsUnmatched reports whether path was recorded as unmatched
func (a *Aggregate) IsUnmatched(path string) bool {
	_, ok := a.unmatched[path]
	return ok
}
