package search

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/docxgrep/pkg/errors"
	"github.com/arthur-debert/docxgrep/pkg/logging"
)

// DocExtension is the document suffix candidates must carry
const DocExtension = ".docx"

// lockFilePrefix marks a word processor's transient lock artifact
const lockFilePrefix = "~$"

// StdinPathSentinel in the path list means "read more paths, one per
// line, from the supplementary stream"
const StdinPathSentinel = "-"

// EnumerateOptions controls candidate discovery
type EnumerateOptions struct {
	// Recursive descends into subdirectories; off by default so a bare
	// directory argument never silently traverses a large tree
	Recursive bool

	// Stdin supplies additional paths when the sentinel is present
	Stdin io.Reader
}

// Enumerate expands the raw input paths (files, directories, globs, the
// stdin sentinel) into an ordered list of candidate documents. Paths that
// resolve to nothing are logged and skipped; the list is not deduplicated.
//
// With a single input path that resolves to nothing the whole run fails
// with PATH_NOT_FOUND. An empty combined list fails with NO_CANDIDATES.
func Enumerate(paths []string, opts EnumerateOptions) ([]string, error) {
	logger := logging.GetLogger("search.enumerate")

	expanded, err := expandStdin(paths, opts.Stdin)
	if err != nil {
		return nil, err
	}

	var candidates []string
	resolved := 0
	for _, path := range expanded {
		globbed, err := filepath.Glob(path)
		if err != nil || len(globbed) == 0 {
			logger.Error().Str("path", path).Msg("Invalid path")
			continue
		}
		resolved++
		for _, match := range globbed {
			found, err := collect(match, opts.Recursive)
			if err != nil {
				logger.Error().Err(err).Str("path", match).Msg("Cannot read path")
				continue
			}
			candidates = append(candidates, found...)
		}
	}

	if len(expanded) == 1 && resolved == 0 {
		return nil, errors.Newf(errors.ErrPathNotFound, "invalid path: %s", expanded[0])
	}
	if len(candidates) == 0 {
		return nil, errors.New(errors.ErrNoCandidates, "no .docx files found to search")
	}

	logger.Debug().Int("count", len(candidates)).Msg("Candidates enumerated")
	return candidates, nil
}

// expandStdin replaces the sentinel with paths read from the stream
func expandStdin(paths []string, stdin io.Reader) ([]string, error) {
	hasSentinel := false
	expanded := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == StdinPathSentinel {
			hasSentinel = true
			continue
		}
		expanded = append(expanded, p)
	}
	if !hasSentinel {
		return expanded, nil
	}

	if stdin == nil {
		stdin = os.Stdin
	}
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			expanded = append(expanded, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot read path list from stdin")
	}
	return expanded, nil
}

// collect gathers candidate documents under one resolved path
func collect(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if isCandidateName(filepath.Base(path)) {
			return []string{path}, nil
		}
		return nil, nil
	}

	if recursive {
		var found []string
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isCandidateName(d.Name()) {
				found = append(found, p)
			}
			return nil
		})
		return found, err
	}

	// Top-level scan only
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isCandidateName(entry.Name()) {
			found = append(found, filepath.Join(path, entry.Name()))
		}
	}
	return found, nil
}

// isCandidateName filters on the document extension and the lock-file
// marker, both case-insensitively
func isCandidateName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, DocExtension) && !strings.HasPrefix(lower, lockFilePrefix)
}
