// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/paperprompt/pkg/types"
)

// NativeOpener reads the PDF text layer in-process. Scanned, image-only
// pages yield no text.
type NativeOpener struct{}

// NewNativeOpener returns the in-process PDF reader.
func NewNativeOpener() *NativeOpener {
	return &NativeOpener{}
}

// Backend implements the backend name lookup used by Extractor.
func (o *NativeOpener) Backend() types.PDFBackend { return types.BackendNative }

// Open parses the PDF cross-reference table of path. The file is closed
// again on any failure.
func (o *NativeOpener) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat PDF %s: %w", path, err)
	}
	r, err := newReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("parsing PDF %s: %w", path, err)
	}
	return &nativeDocument{file: f, reader: r, fonts: make(map[string]*pdf.Font)}, nil
}

// newReader converts parser panics on malformed files into errors.
func newReader(f *os.File, size int64) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("malformed PDF: %v", p)
		}
	}()
	return pdf.NewReader(f, size)
}

type nativeDocument struct {
	file   *os.File
	reader *pdf.Reader
	fonts  map[string]*pdf.Font
}

func (d *nativeDocument) NumPages() int { return d.reader.NumPage() }

// PageText rebuilds the page from positioned glyphs so that lines placed
// with Td or Tm keep their breaks. Pages the layout pass cannot read fall
// back to the library's plain text, which only breaks on T*.
func (d *nativeDocument) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parsing page %d: %v", n, r)
		}
	}()

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	if text := layoutText(p); text != "" {
		return text, nil
	}

	// Fonts are shared across pages so each is decoded once.
	for _, name := range p.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			font := p.Font(name)
			d.fonts[name] = &font
		}
	}
	return p.GetPlainText(d.fonts)
}

// layoutText returns "" when the content stream cannot be interpreted.
func layoutText(p pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	return joinLines(p.Content().Text)
}

// joinLines concatenates glyphs in content order. A new line starts
// whenever the baseline moves by more than half the font size, and a space
// is inserted where a horizontal jump separates two glyphs. The "\n"
// glyphs the library emits after each TJ are ignored; they do not mark
// line ends.
func joinLines(glyphs []pdf.Text) string {
	var b strings.Builder
	var prev *pdf.Text
	for i := range glyphs {
		g := &glyphs[i]
		if g.S == "\n" {
			continue
		}
		switch {
		case prev == nil:
		case baselineMoved(*prev, *g):
			b.WriteByte('\n')
		case wordGap(*prev, *g):
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		prev = g
	}
	return b.String()
}

func baselineMoved(prev, cur pdf.Text) bool {
	tolerance := prev.FontSize / 2
	if tolerance <= 0 {
		tolerance = 1
	}
	return math.Abs(cur.Y-prev.Y) > tolerance
}

// wordGap needs glyph widths; fonts without a Widths array report 0 and
// never produce a gap.
func wordGap(prev, cur pdf.Text) bool {
	if prev.W <= 0 || prev.S == " " || cur.S == " " {
		return false
	}
	return cur.X-(prev.X+prev.W) > prev.FontSize*0.2
}

func (d *nativeDocument) Close() error {
	return d.file.Close()
}
