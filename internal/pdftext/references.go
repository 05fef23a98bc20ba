// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"regexp"
	"strings"
)

// unicodeSpace lists the Unicode whitespace characters. RE2's \s is ASCII-only
// and misses \v, U+0085, and the Z categories, which survive NFKD.
const unicodeSpace = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

// referenceHeaderRes match a bibliography header at the start of the text
// or of a line, allowing leading whitespace, followed by a colon or
// whitespace. Matches start at the newline before the header.
var referenceHeaderRes = []*regexp.Regexp{
	headerRe(`References?`),
	headerRe(`Bibliography`),
	headerRe(`Literature cited`),
	headerRe(`Works cited`),
}

func headerRe(header string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|\n)[` + unicodeSpace + `]*` + header + `\b[:` + unicodeSpace + `]`)
}

// ReferenceBoundary returns the offset of the earliest reference section
// header in text, or len(text) when there is none. Only the first match of
// each pattern is considered.
func ReferenceBoundary(text string) int {
	boundary := len(text)
	for _, re := range referenceHeaderRes {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] < boundary {
			boundary = loc[0]
		}
	}
	return boundary
}

// StripReferences cuts text before the earliest reference section header
// and trims surrounding whitespace.
func StripReferences(text string) string {
	return strings.TrimSpace(text[:ReferenceBoundary(text)])
}
