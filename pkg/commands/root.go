// Package commands defines the docxgrep command-line surface and wires
// the search pipeline together.
package commands

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arthur-debert/docxgrep/internal/version"
	"github.com/arthur-debert/docxgrep/pkg/config"
	"github.com/arthur-debert/docxgrep/pkg/docx"
	"github.com/arthur-debert/docxgrep/pkg/errors"
	"github.com/arthur-debert/docxgrep/pkg/guide"
	"github.com/arthur-debert/docxgrep/pkg/logging"
	"github.com/arthur-debert/docxgrep/pkg/matcher"
	"github.com/arthur-debert/docxgrep/pkg/render"
	"github.com/arthur-debert/docxgrep/pkg/search"
	"github.com/arthur-debert/docxgrep/pkg/terminal"
)

type rootFlags struct {
	color         bool
	count         bool
	hyperlink     bool
	hangingIndent bool
	ignoreCase    bool
	filesWith     bool
	filesWithout  bool
	noProgress    bool
	quiet         bool
	recursive     bool
	noMessages    bool
	initialTab    bool
	debug         bool
	logfile       string
}

// NewRootCmd builds the docxgrep command tree
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "docxgrep PATTERN PATH [PATH...]",
		Short: "Search for PATTERN in .docx files like grep",
		Long: `docxgrep searches the paragraphs of Word documents for a regular
expression, with grep-like output modes and exit codes.

A PATH may be a .docx file, a directory (top level only unless -r), or a
glob pattern. A single dash reads additional paths from stdin, one per
line.`,
		Version:       version.Version,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logfile := flags.logfile
			if logfile == "" && flags.debug {
				logfile = logging.DefaultLogFilePath()
			}
			logging.Setup(flags.debug, flags.quiet || flags.noMessages, logfile)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.color, "color", "C", false, "Color the prefix and highlight matches")
	f.BoolVarP(&flags.count, "count", "c", false, "Only print a count of matching paragraphs")
	f.BoolVarP(&flags.hyperlink, "hyperlink", "H", false, "Print file names as terminal hyperlinks (OSC 8)")
	f.BoolVarP(&flags.hangingIndent, "hanging-indent", "I", false, "Wrap paragraph text with a hanging indent")
	f.BoolVarP(&flags.ignoreCase, "ignore-case", "i", false, "Ignore case distinctions")
	f.BoolVarP(&flags.filesWith, "files-with-matches", "l", false, "Only print names of files with matches")
	f.BoolVarP(&flags.filesWithout, "files-without-matches", "L", false, "Only print names of files without matches")
	f.BoolVarP(&flags.noProgress, "no-progress-bar", "P", false, "Do not display the progress bar")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress all normal output")
	f.BoolVarP(&flags.recursive, "recursive", "r", false, "Recursively search subdirectories")
	f.BoolVarP(&flags.noMessages, "no-messages", "s", false, "Suppress error messages about nonexistent or unreadable files")
	f.BoolVarP(&flags.initialTab, "initial-tab", "T", false, "Line output starts with a tab character")
	f.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	f.StringVar(&flags.logfile, "logfile", "", "Write log output to FILE")
	f.BoolP("version", "V", false, "Print version information")

	cmd.AddCommand(newGuideCmd())

	return cmd
}

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show the full usage guide",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), guide.Render())
		},
	}
}

func run(cmd *cobra.Command, args []string, flags *rootFlags) error {
	logger := logging.GetLogger("cmd")
	pattern, paths := args[0], args[1:]

	cfg, err := config.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("Ignoring unreadable config file")
		cfg = config.Default()
	}
	applyConfigDefaults(cmd, flags, cfg)

	m, err := matcher.Compile(pattern, flags.ignoreCase)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid pattern")
		return errors.Exit(1)
	}

	// Hyperlinks degrade silently when the terminal can't render them
	hyperlink := flags.hyperlink
	if hyperlink && !terminal.SupportsHyperlinks(terminal.CaptureEnv(os.Stdout)) {
		terminal.SuggestTerminals()
		hyperlink = false
	}

	candidates, err := search.Enumerate(paths, search.EnumerateOptions{
		Recursive: flags.recursive,
		Stdin:     cmd.InOrStdin(),
	})
	if err != nil {
		logger.Error().Msg(err.Error())
		return errors.Exit(errors.ExitCode(err))
	}

	opts := search.Options{Mode: resolveMode(flags), Count: flags.count}

	formatter := render.New(render.Config{
		Color:           flags.color,
		Hyperlink:       hyperlink,
		InitialTab:      flags.initialTab,
		HangingIndent:   flags.hangingIndent,
		TerminalColumns: terminalColumns(),
		Margin:          cfg.Output.WrapMargin,
	}, m)

	orchestrator := search.NewOrchestrator(docx.NewReader(), m, formatter, opts)

	tick, stop := startProgress(len(candidates), flags)
	agg, anyMatch := orchestrator.Run(candidates, tick)
	stop()

	if code := search.NewPrinter(cmd.OutOrStdout(), hyperlink).Print(agg, opts, anyMatch); code != 0 {
		return errors.Exit(code)
	}
	return nil
}

// applyConfigDefaults lets the config file supply defaults for flags the
// user did not pass explicitly
func applyConfigDefaults(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) {
	f := cmd.Flags()
	if !f.Changed("color") && cfg.Output.Color {
		flags.color = true
	}
	if !f.Changed("hyperlink") && cfg.Output.Hyperlink {
		flags.hyperlink = true
	}
	if !f.Changed("hanging-indent") && cfg.Output.HangingIndent {
		flags.hangingIndent = true
	}
	if !f.Changed("initial-tab") && cfg.Output.InitialTab {
		flags.initialTab = true
	}
	if !f.Changed("no-progress-bar") && cfg.Output.NoProgressBar {
		flags.noProgress = true
	}
	if !f.Changed("ignore-case") && cfg.Search.IgnoreCase {
		flags.ignoreCase = true
	}
	if !f.Changed("recursive") && cfg.Search.Recursive {
		flags.recursive = true
	}
}

// resolveMode picks the output mode; quiet wins over the file-list modes,
// which win over count-only
func resolveMode(flags *rootFlags) search.Mode {
	switch {
	case flags.quiet:
		return search.ModeQuiet
	case flags.filesWithout:
		return search.ModeFilesWithoutMatches
	case flags.filesWith:
		return search.ModeFilesWithMatches
	case flags.count:
		return search.ModeCountOnly
	default:
		return search.ModeFull
	}
}

// terminalColumns reports the stdout width, defaulting to 80 when
// detection fails (pipes, tests)
func terminalColumns() int {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		return 80
	}
	return cols
}

// startProgress sets up the per-file progress bar on stderr. It returns a
// tick for each scanned file and a stop for the end of the run; both are
// no-ops when the bar is disabled.
func startProgress(total int, flags *rootFlags) (tick func(), stop func()) {
	disabled := flags.quiet || flags.noProgress || !isatty.IsTerminal(os.Stderr.Fd())
	if disabled || total == 0 {
		return nil, func() {}
	}

	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Searching").
		WithWriter(os.Stderr).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return nil, func() {}
	}
	return func() { bar.Increment() },
		func() { _, _ = bar.Stop() }
}
