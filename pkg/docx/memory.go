package docx

import (
	"github.com/arthur-debert/docxgrep/pkg/errors"
)

// MemorySource is an in-memory Source for tests. It records the order in
// which documents are opened so early-exit behavior can be asserted.
type MemorySource struct {
	Docs map[string][]string
	Errs map[string]error

	// Opened lists every path handed to Paragraphs, in call order
	Opened []string
}

// NewMemorySource builds a MemorySource over the given documents
func NewMemorySource(docs map[string][]string) *MemorySource {
	return &MemorySource{Docs: docs, Errs: make(map[string]error)}
}

// FailWith makes reads of path return err
func (s *MemorySource) FailWith(path string, err error) *MemorySource {
	s.Errs[path] = err
	return s
}

// Paragraphs implements Source
func (s *MemorySource) Paragraphs(path string) ([]string, error) {
	s.Opened = append(s.Opened, path)
	if err, ok := s.Errs[path]; ok {
		return nil, err
	}
	paragraphs, ok := s.Docs[path]
	if !ok {
		return nil, errors.Newf(errors.ErrRead, "no such document: %s", path)
	}
	return paragraphs, nil
}
