// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration and record types shared across stages.
package types

import "time"

// Document is the stored result of extracting text from one PDF.
type Document struct {
	// ID is a slug derived from the PDF file name (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Path is the filesystem path of the source PDF.
	Path string `json:"path" yaml:"path"`

	// Backend identifies which reader produced the text.
	Backend PDFBackend `json:"backend" yaml:"backend"`

	// Pages is the number of pages read.
	Pages int `json:"pages" yaml:"pages"`

	// ReferencesRemoved records whether the bibliography was stripped.
	ReferencesRemoved bool `json:"references_removed" yaml:"references_removed"`

	// AccentsStripped records whether combining marks were dropped.
	AccentsStripped bool `json:"accents_stripped" yaml:"accents_stripped"`

	// FileModTime is the source PDF modification time at extraction.
	FileModTime time.Time `json:"file_mod_time" yaml:"file_mod_time"`

	// ExtractedAt is when the text was produced.
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`

	// Text is the normalized body text.
	Text string `json:"text" yaml:"text"`
}
