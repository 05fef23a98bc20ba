// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"double newlines", "Line1\n\nLine2\n\nLine3", "Line1 Line2 Line3"},
		{"mixed whitespace", "  a\t\tb \r\n c  ", "a b c"},
		{"triple newline", "a\n\n\nb", "a b"},
		{"empty", "", ""},
		{"whitespace only", " \n\n\t ", ""},
		{"already flat", "one two", "one two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Flatten(got), "Flatten must be idempotent")
		})
	}
}
