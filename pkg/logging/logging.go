package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger.
// Debug enables debug-level output; by default only warnings and errors
// are shown. When logfile is non-empty, log lines are also appended there
// with full timestamps. Suppress silences everything below fatal, used by
// --quiet and --no-messages (error reporting off, control flow unchanged).
func Setup(debug, suppress bool, logfile string) {
	switch {
	case debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case suppress:
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	writers := []io.Writer{consoleWriter}

	var fileErr error
	if logfile != "" {
		handle, err := openLogFile(logfile)
		if err != nil {
			fileErr = err
		} else {
			writers = append(writers, handle)
		}
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	if debug {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	// Report the file failure with the freshly configured logger so the
	// warning still lands on the console writer.
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logfile).Msg("Could not open logfile, logging to console only")
	}

	log.Debug().Bool("debug", debug).Str("logfile", logfile).Msg("Logger initialized")
}

// GetLogger returns a contextualized logger with the given component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// DefaultLogFilePath returns the XDG state-dir location used when the user
// asks for file logging without naming a file.
func DefaultLogFilePath() string {
	path, err := xdg.StateFile(filepath.Join("docxgrep", "docxgrep.log"))
	if err != nil {
		return "docxgrep.log"
	}
	return path
}

func openLogFile(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}
