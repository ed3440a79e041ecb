// Package guide ships the long-form usage guide, rendered with glamour
// when the output is a terminal.
package guide

import (
	_ "embed"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

//go:embed guide.md
var content string

// Render returns the guide, styled for the terminal when stdout is
// interactive and as plain markdown otherwise.
func Render() string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
