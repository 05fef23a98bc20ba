// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii unchanged", "plain text", "plain text"},
		{"accent decomposed", "\u00e9", "e\u0301"},
		{"ligature folded", "\ufb01le", "file"},
		{"superscript folded", "x\u00b2", "x2"},
		{"non-breaking space folded", "a\u00a0b", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestStripMarks(t *testing.T) {
	assert.Equal(t, "cafe", StripMarks("caf\u00e9"))
	assert.Equal(t, "cafe", StripMarks(Normalize("caf\u00e9")))
	assert.Equal(t, "Angstrom", StripMarks("\u00c5ngstrom"))
	assert.Equal(t, "plain", StripMarks("plain"))
}
