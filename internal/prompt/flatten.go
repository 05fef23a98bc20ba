// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import "strings"

// Flatten turns template text into a single line: each "\n\n" becomes "\n",
// then every whitespace run becomes one space and the ends are trimmed.
// Flatten(Flatten(s)) == Flatten(s).
func Flatten(s string) string {
	s = strings.ReplaceAll(s, "\n\n", "\n")
	return strings.Join(strings.Fields(s), " ")
}
