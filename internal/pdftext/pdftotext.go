// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/paperprompt/internal/container"
	"github.com/pdiddy/paperprompt/pkg/types"
)

const imagePdftotext = "pdftotext:latest"

// pdftotextArgs read the PDF from stdin and write UTF-8 text to stdout.
var pdftotextArgs = []string{"-enc", "UTF-8", "-", "-"}

// PdftotextOpener reads page text by piping the PDF through the pdftotext
// container image. pdftotext ends every page with a form feed, which is
// how pages are told apart.
type PdftotextOpener struct {
	runtime container.Runtime
}

// NewPdftotextOpener verifies that the pdftotext image exists in rt.
func NewPdftotextOpener(rt container.Runtime) (*PdftotextOpener, error) {
	if err := rt.ImageExists(imagePdftotext); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextOpener{runtime: rt}, nil
}

// Backend implements the backend name lookup used by Extractor.
func (o *PdftotextOpener) Backend() types.PDFBackend { return types.BackendPdftotext }

// Open runs the container over the whole file. The returned Document holds
// the text in memory; the file itself is closed before Open returns.
func (o *PdftotextOpener) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := o.runtime.Run(imagePdftotext, pdftotextArgs, f, &out); err != nil {
		return nil, fmt.Errorf("converting %s with pdftotext: %w", path, err)
	}
	return newTextDocument(out.String()), nil
}

// textDocument serves pages from form-feed separated text.
type textDocument struct {
	pages []string
}

func newTextDocument(text string) *textDocument {
	if text == "" {
		return &textDocument{}
	}
	pages := strings.Split(text, "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return &textDocument{pages: pages}
}

func (d *textDocument) NumPages() int { return len(d.pages) }

func (d *textDocument) PageText(n int) (string, error) {
	if n < 1 || n > len(d.pages) {
		return "", fmt.Errorf("page %d out of range [1,%d]", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

func (d *textDocument) Close() error {
	d.pages = nil
	return nil
}
