package search

import (
	"fmt"
	"io"

	"github.com/arthur-debert/docxgrep/pkg/terminal"
)

// Printer renders the final aggregate under the selected mode
type Printer struct {
	out       io.Writer
	hyperlink bool
}

// NewPrinter writes results to out, hyperlinking file names when enabled
func NewPrinter(out io.Writer, hyperlink bool) *Printer {
	return &Printer{out: out, hyperlink: hyperlink}
}

// Print emits the run's output and returns the process exit code.
// Quiet mode prints nothing: exit 0 when a match occurred, 1 otherwise.
// Every other mode exits 0 on normal completion, matches or not.
func (p *Printer) Print(agg *Aggregate, opts Options, anyMatch bool) int {
	switch opts.Mode {
	case ModeQuiet:
		if anyMatch {
			return 0
		}
		return 1

	case ModeFilesWithoutMatches:
		for _, path := range agg.UnmatchedPaths() {
			fmt.Fprintln(p.out, p.fileName(path))
		}

	case ModeFilesWithMatches:
		for _, path := range agg.MatchedPaths() {
			if opts.Count {
				fmt.Fprintf(p.out, "%s: %d\n", p.fileName(path), agg.MatchedFiles[path])
			} else {
				fmt.Fprintln(p.out, p.fileName(path))
			}
		}
		if opts.Count {
			fmt.Fprintln(p.out, agg.TotalMatches)
		}

	case ModeCountOnly:
		fmt.Fprintln(p.out, agg.TotalMatches)

	default: // ModeFull
		for _, line := range agg.Lines {
			fmt.Fprintln(p.out, line.Text)
		}
	}

	return 0
}

func (p *Printer) fileName(path string) string {
	if p.hyperlink {
		return terminal.Hyperlink(path)
	}
	return path
}
