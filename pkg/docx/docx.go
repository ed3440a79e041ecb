// Package docx extracts plain-text paragraphs from Word document
// packages. A .docx file is a zip container; the paragraph text lives in
// word/document.xml as w:p elements whose runs carry w:t text nodes.
package docx

import (
	"archive/zip"

	"github.com/beevik/etree"
	"golang.org/x/text/unicode/norm"

	"github.com/arthur-debert/docxgrep/pkg/errors"
	"github.com/arthur-debert/docxgrep/pkg/logging"
)

// documentXML is the archive member holding the body text
const documentXML = "word/document.xml"

// Source yields the ordered plain-text paragraphs of a document.
// The search engine depends only on this interface so it can run against
// an in-memory fake in tests.
type Source interface {
	Paragraphs(path string) ([]string, error)
}

// Reader is the real Source backed by .docx files on disk
type Reader struct{}

// NewReader returns a Source reading .docx packages from the filesystem
func NewReader() *Reader {
	return &Reader{}
}

// Paragraphs opens the package at path and returns its paragraph texts in
// document order, NFC-normalized. Tables, headers, and footers are not
// included.
func (r *Reader) Paragraphs(path string) ([]string, error) {
	logger := logging.GetLogger("docx")

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRead, "cannot open document package").
			WithDetail("path", path)
	}
	defer func() {
		if cerr := archive.Close(); cerr != nil {
			logger.Debug().Err(cerr).Str("path", path).Msg("Error closing archive")
		}
	}()

	var member *zip.File
	for _, f := range archive.File {
		if f.Name == documentXML {
			member = f
			break
		}
	}
	if member == nil {
		return nil, errors.Newf(errors.ErrRead, "package has no %s", documentXML).
			WithDetail("path", path)
	}

	content, err := member.Open()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRead, "cannot open document body").
			WithDetail("path", path)
	}
	defer func() {
		if cerr := content.Close(); cerr != nil {
			logger.Debug().Err(cerr).Str("path", path).Msg("Error closing document body")
		}
	}()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(content); err != nil {
		return nil, errors.Wrap(err, errors.ErrRead, "cannot parse document body").
			WithDetail("path", path)
	}

	var paragraphs []string
	for _, p := range doc.FindElements("//w:p") {
		paragraphs = append(paragraphs, norm.NFC.String(paragraphText(p)))
	}

	logger.Debug().Str("path", path).Int("paragraphs", len(paragraphs)).Msg("Document read")
	return paragraphs, nil
}

// paragraphText concatenates the text runs beneath a w:p element.
// Tab and break elements become their whitespace equivalents, mirroring
// how word processors display them.
func paragraphText(p *etree.Element) string {
	var out []byte
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		switch el.Tag {
		case "t":
			out = append(out, el.Text()...)
			return
		case "tab":
			out = append(out, '\t')
			return
		case "br", "cr":
			out = append(out, '\n')
			return
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	for _, child := range p.ChildElements() {
		walk(child)
	}
	return string(out)
}
