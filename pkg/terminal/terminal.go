// Package terminal decides whether the attached terminal can render
// OSC 8 hyperlinks and composes the hyperlink escape sequences.
package terminal

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/docxgrep/pkg/logging"
)

// Env is a snapshot of the process environment signals the hyperlink
// heuristic cares about. Capturing it up front keeps detection a pure
// function and testable without touching the real environment.
type Env struct {
	// Interactive is true when output is attached to a terminal
	Interactive bool

	// Presence markers; the value does not matter, only that it is set
	HasDomTerm        bool
	HasWTSession      bool
	HasKonsoleVersion bool

	VTEVersion  string
	TermProgram string
	Term        string
	ColorTerm   string
}

// CaptureEnv snapshots the environment for the given output stream
func CaptureEnv(out *os.File) Env {
	_, hasDomTerm := os.LookupEnv("DOMTERM")
	_, hasWTSession := os.LookupEnv("WT_SESSION")
	_, hasKonsole := os.LookupEnv("KONSOLE_VERSION")

	return Env{
		Interactive:       isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()),
		HasDomTerm:        hasDomTerm,
		HasWTSession:      hasWTSession,
		HasKonsoleVersion: hasKonsole,
		VTEVersion:        os.Getenv("VTE_VERSION"),
		TermProgram:       strings.TrimSpace(os.Getenv("TERM_PROGRAM")),
		Term:              strings.TrimSpace(os.Getenv("TERM")),
		ColorTerm:         strings.TrimSpace(strings.ToLower(os.Getenv("COLORTERM"))),
	}
}

// signal is the outcome of one detection probe
type signal int

const (
	signalNone signal = iota
	signalSupported
	signalUnsupported
)

// vteOSC8Threshold is the VTE_VERSION at which OSC 8 became reliable
// (VTE 0.50, reported as 5000).
const vteOSC8Threshold = 5000

var termPrograms = map[string]bool{
	"iTerm.app":       true,
	"WezTerm":         true,
	"Hyper":           true,
	"terminology":     true,
	"vscode":          true,
	"vscode-insiders": true,
}

var termNames = map[string]bool{
	"xterm-kitty":      true,
	"kitty":            true,
	"alacritty":        true,
	"alacritty-direct": true,
	"konsole":          true,
}

// probes are evaluated in priority order; the first probe returning a
// definite signal wins.
var probes = []func(Env) signal{
	probeDomTerm,
	probeWTSession,
	probeKonsole,
	probeVTE,
	probeTermProgram,
	probeTerm,
	probeColorTerm,
}

func probeDomTerm(e Env) signal {
	if e.HasDomTerm {
		return signalSupported
	}
	return signalNone
}

func probeWTSession(e Env) signal {
	if e.HasWTSession {
		return signalSupported
	}
	return signalNone
}

func probeKonsole(e Env) signal {
	if e.HasKonsoleVersion {
		return signalSupported
	}
	return signalNone
}

func probeVTE(e Env) signal {
	if e.VTEVersion == "" {
		return signalNone
	}
	parsed, err := strconv.Atoi(e.VTEVersion)
	if err != nil {
		// Rare non-integer forms; keep only the digits
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, e.VTEVersion)
		if digits == "" {
			return signalUnsupported
		}
		parsed, err = strconv.Atoi(digits)
		if err != nil {
			return signalUnsupported
		}
	}
	if parsed >= vteOSC8Threshold {
		return signalSupported
	}
	return signalNone
}

func probeTermProgram(e Env) signal {
	if e.TermProgram != "" && termPrograms[e.TermProgram] {
		return signalSupported
	}
	return signalNone
}

func probeTerm(e Env) signal {
	if e.Term != "" && termNames[e.Term] {
		return signalSupported
	}
	return signalNone
}

func probeColorTerm(e Env) signal {
	if e.ColorTerm == "" {
		return signalNone
	}
	if strings.Contains(e.ColorTerm, "truecolor") || strings.Contains(e.ColorTerm, "24bit") {
		return signalSupported
	}
	if e.ColorTerm == "xfce4-terminal" {
		return signalSupported
	}
	return signalNone
}

// SupportsHyperlinks reports whether OSC 8 hyperlinks will very likely
// render. Non-interactive output never supports them, regardless of the
// environment.
func SupportsHyperlinks(e Env) bool {
	if !e.Interactive {
		return false
	}
	for _, probe := range probes {
		switch probe(e) {
		case signalSupported:
			return true
		case signalUnsupported:
			return false
		}
	}
	return false
}

// FileURI converts a filesystem path into an absolute file:// URI
func FileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// Windows drive-letter paths need a leading slash in the URI
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String(), nil
}

// Hyperlink wraps path in an OSC 8 escape sequence with the path itself
// as the visible label. If the path cannot be resolved to an absolute
// URI it is returned unlinked.
func Hyperlink(path string) string {
	uri, err := FileURI(path)
	if err != nil {
		return path
	}
	return termenv.Hyperlink(uri, path)
}

// SuggestTerminals logs pointers to terminals known to render OSC 8,
// used when --hyperlink is requested but unsupported.
func SuggestTerminals() {
	logger := logging.GetLogger("terminal")
	logger.Warn().Msg("Your terminal does not appear to support OSC 8 hyperlinks.")
	logger.Warn().Msg("Try Windows Terminal - https://github.com/microsoft/terminal")
	logger.Warn().Msg("Try iTerm2 (macOS)   - https://iterm2.com")
}
