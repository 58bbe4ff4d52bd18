// Package textnorm cleans provider text before it is stored or displayed.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalize drops every character that is not a word character, whitespace,
// or one of . , ! ? and then collapses whitespace runs to single spaces,
// trimming both ends. Characters are dropped before whitespace is collapsed
// so that "a - b" becomes "a b" and Normalize is idempotent.
func Normalize(text string) string {
	kept := strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, text)
	return strings.Join(strings.Fields(kept), " ")
}

// keep reports whether r survives normalization. Word characters are
// letters, numbers and underscore in any script.
func keep(r rune) bool {
	switch r {
	case '_', '.', ',', '!', '?':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r)
}
