// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/paperprompt/pkg/types"
)

// Recorder persists extraction results so unchanged PDFs can be skipped.
type Recorder interface {
	// Unchanged reports whether a record matching probe's path, file
	// modification time, backend, and options is already stored.
	Unchanged(ctx context.Context, probe types.Document) (bool, error)

	// Get returns the stored record for path.
	Get(ctx context.Context, path string) (*types.Document, error)

	// Save stores doc, replacing any record for the same path.
	Save(ctx context.Context, doc types.Document) error
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int

	// Documents holds the extracted and the skipped (stored) documents in
	// input order.
	Documents []types.Document
}

// Total returns the number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any PDF failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// nowFunc is replaced in tests.
var nowFunc = time.Now

// ExtractBatch extracts every PDF in paths, writing one status line per file
// to w and a summary at the end. rec may be nil; when set, unchanged files
// are served from it instead of re-read, and new results are saved to it.
func ExtractBatch(ctx context.Context, ex *Extractor, paths []string, opts Options, rec Recorder, w io.Writer) BatchResult {
	var result BatchResult

	for _, path := range paths {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, ctx.Err())
			result.Failed++
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			result.Failed++
			continue
		}

		doc := types.Document{
			ID:                documentID(path),
			Path:              path,
			Backend:           ex.Backend(),
			ReferencesRemoved: opts.RemoveReferences,
			AccentsStripped:   opts.StripAccents,
			FileModTime:       info.ModTime().UTC(),
		}

		if rec != nil {
			same, err := rec.Unchanged(ctx, doc)
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
				result.Failed++
				continue
			}
			if same {
				stored, err := rec.Get(ctx, path)
				if err != nil {
					fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
					result.Failed++
					continue
				}
				fmt.Fprintf(w, "skipped: %s (unchanged)\n", doc.ID)
				result.Skipped++
				result.Documents = append(result.Documents, *stored)
				continue
			}
		}

		res, err := ex.ExtractWith(path, opts)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", doc.ID, err)
			result.Failed++
			continue
		}
		doc.Text = res.Text
		doc.Pages = res.Pages
		doc.ExtractedAt = nowFunc().UTC()

		if rec != nil {
			if err := rec.Save(ctx, doc); err != nil {
				fmt.Fprintf(w, "failed:  %s (save: %v)\n", doc.ID, err)
				result.Failed++
				continue
			}
		}

		fmt.Fprintf(w, "extracted: %s (%d pages)\n", doc.ID, doc.Pages)
		result.Extracted++
		result.Documents = append(result.Documents, doc)
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result
}

// documentID derives a slug from the PDF file name.
func documentID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
