// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize applies NFKD: compatibility characters are folded and accented
// letters split into a base letter plus combining marks. The marks stay in
// the output; see StripMarks.
func Normalize(text string) string {
	return norm.NFKD.String(text)
}

// StripMarks decomposes text and drops nonspacing combining marks, so
// "café" becomes "cafe". The result is left decomposed.
func StripMarks(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}
