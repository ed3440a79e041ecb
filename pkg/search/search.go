// Package search drives the scan: it enumerates candidate documents,
// matches their paragraphs, aggregates results, and prints them under the
// selected output mode.
package search

import (
	"github.com/arthur-debert/docxgrep/pkg/docx"
	"github.com/arthur-debert/docxgrep/pkg/logging"
	"github.com/arthur-debert/docxgrep/pkg/matcher"
	"github.com/arthur-debert/docxgrep/pkg/render"
)

// Mode selects what the run reports
type Mode int

const (
	// ModeFull prints every rendered match line
	ModeFull Mode = iota
	// ModeCountOnly prints the grand total match count
	ModeCountOnly
	// ModeFilesWithMatches prints matched file names
	ModeFilesWithMatches
	// ModeFilesWithoutMatches prints unmatched file names
	ModeFilesWithoutMatches
	// ModeQuiet prints nothing; only the exit code reports the outcome
	ModeQuiet
)

// Options configures an Orchestrator
type Options struct {
	Mode Mode

	// Count keeps per-file counting on in ModeFilesWithMatches
	Count bool
}

// outcome is the tri-state result of scanning one file. The run loop
// checks it after every file instead of exiting from inside the scan.
type outcome int

const (
	outcomeNoMatch outcome = iota
	outcomeMatched
	outcomeHaltRun
)

// Orchestrator scans candidates one at a time, in enumeration order
type Orchestrator struct {
	source    docx.Source
	matcher   *matcher.Matcher
	formatter *render.Formatter
	opts      Options
}

// NewOrchestrator wires a document source, a compiled pattern, and a
// formatter into a runnable scan
func NewOrchestrator(source docx.Source, m *matcher.Matcher, f *render.Formatter, opts Options) *Orchestrator {
	return &Orchestrator{source: source, matcher: m, formatter: f, opts: opts}
}

// Run scans every candidate and returns the aggregate plus whether any
// match occurred. progress, if non-nil, is called once per scanned file.
// Under ModeQuiet the first match anywhere ends the run; no further files
// are read.
func (o *Orchestrator) Run(candidates []string, progress func()) (*Aggregate, bool) {
	logger := logging.GetLogger("search")
	agg := NewAggregate()
	anyMatch := false

	for _, path := range candidates {
		lines, count, result := o.scanFile(path)
		if progress != nil {
			progress()
		}

		switch result {
		case outcomeHaltRun:
			return agg, true
		case outcomeMatched:
			anyMatch = true
			agg.RecordMatched(path, count, lines)
		case outcomeNoMatch:
			agg.RecordUnmatched(path)
		}
	}

	logger.Debug().Int("total", agg.TotalMatches).Bool("anyMatch", anyMatch).Msg("Scan complete")
	return agg, anyMatch
}

// scanFile tests each paragraph of one document. A reader failure
// degrades the file to unmatched and never aborts the run.
func (o *Orchestrator) scanFile(path string) ([]RenderedLine, int, outcome) {
	logger := logging.GetLogger("search")
	logger.Debug().Str("path", path).Msg("Searching file")

	paragraphs, err := o.source.Paragraphs(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Error reading file")
		return nil, 0, outcomeNoMatch
	}

	var lines []RenderedLine
	count := 0
	for i, text := range paragraphs {
		if !o.matcher.Matches(text) {
			continue
		}

		// One match is enough in the existence-only modes; stop
		// scanning this file (and the whole run when quiet).
		if o.opts.Mode == ModeQuiet {
			return nil, 0, outcomeHaltRun
		}
		if o.opts.Mode == ModeFilesWithoutMatches ||
			(o.opts.Mode == ModeFilesWithMatches && !o.opts.Count) {
			return nil, 1, outcomeMatched
		}

		count++
		if o.opts.Mode == ModeFull {
			lines = append(lines, RenderedLine{
				File: path,
				Text: o.formatter.Format(path, i+1, text),
			})
		}
		logger.Debug().Str("path", path).Int("paragraph", i+1).Msg("Match found")
	}

	if count == 0 {
		return nil, 0, outcomeNoMatch
	}
	return lines, count, outcomeMatched
}
