// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts normalized body text from PDF files.
//
// Page text comes from an Opener (the in-process reader or the pdftotext
// container). Extract joins the pages, applies NFKD decomposition, and by
// default cuts the text at the first bibliography header.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paperprompt/pkg/types"
)

// Opener opens a PDF for page-by-page text reading.
type Opener interface {
	// Open returns a Document for path. On error no handle is left open.
	Open(path string) (Document, error)
}

// Document is an open PDF. Callers must Close it.
type Document interface {
	// NumPages returns the number of pages.
	NumPages() int

	// PageText returns the text of page n, counting from 1.
	PageText(n int) (string, error)

	// Close releases the underlying handle.
	Close() error
}

// ExtractionError reports a failure to open or read a PDF.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Options controls the text clean-up applied after page reading.
type Options struct {
	// RemoveReferences truncates at the first reference section header.
	RemoveReferences bool

	// StripAccents drops combining marks left by NFKD decomposition.
	StripAccents bool
}

// DefaultOptions returns the options Extract uses when references are removed.
func DefaultOptions() Options {
	return Options{RemoveReferences: true}
}

// Result is the text produced from one PDF.
type Result struct {
	Text  string
	Pages int
}

// Extractor reads and normalizes PDF text through an Opener.
type Extractor struct {
	opener Opener
	logger zerolog.Logger
}

// New creates an Extractor that reads documents through opener.
func New(opener Opener, logger zerolog.Logger) *Extractor {
	return &Extractor{opener: opener, logger: logger}
}

// Backend reports which reader the Extractor uses, when the Opener names one.
func (e *Extractor) Backend() types.PDFBackend {
	if b, ok := e.opener.(interface{ Backend() types.PDFBackend }); ok {
		return b.Backend()
	}
	return ""
}

// Extract returns the NFKD-normalized text of the PDF at path. With
// removeReferences set, the text is cut before the first reference section
// header and trimmed. Open and read failures return *ExtractionError and
// no text.
func (e *Extractor) Extract(path string, removeReferences bool) (string, error) {
	res, err := e.ExtractWith(path, Options{RemoveReferences: removeReferences})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// ExtractWith is Extract with the full set of clean-up options.
func (e *Extractor) ExtractWith(path string, opts Options) (Result, error) {
	raw, pages, err := e.readPages(path)
	if err != nil {
		return Result{}, err
	}

	text := Normalize(raw)
	if opts.RemoveReferences {
		boundary := ReferenceBoundary(text)
		if boundary < len(text) {
			e.logger.Debug().
				Str("path", path).
				Int("offset", boundary).
				Int("dropped", len(text)-boundary).
				Msg("reference section removed")
		}
		text = strings.TrimSpace(text[:boundary])
	}
	if opts.StripAccents {
		text = StripMarks(text)
	}

	e.logger.Debug().Str("path", path).Int("pages", pages).Int("bytes", len(text)).Msg("extracted")
	return Result{Text: text, Pages: pages}, nil
}

// readPages joins the text of every page with a single space.
func (e *Extractor) readPages(path string) (string, int, error) {
	doc, err := e.opener.Open(path)
	if err != nil {
		return "", 0, &ExtractionError{Path: path, Err: err}
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			e.logger.Warn().Err(cerr).Str("path", path).Msg("closing document")
		}
	}()

	n := doc.NumPages()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return "", 0, &ExtractionError{Path: path, Err: fmt.Errorf("reading page %d: %w", i, err)}
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, " "), n, nil
}
