package scan

import "unicode"

// Predicate classifies a character by its first rune. A space carrying a
// combining mark is therefore whitespace, mark included.
type Predicate func(r rune) bool

// IsWhitespace reports whether r belongs to the whitespace class used by
// the command: Unicode White_Space without NEL (U+0085), plus the byte order
// mark (U+FEFF).
func IsWhitespace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\uFEFF':
		return true
	}
	return unicode.IsSpace(r)
}

// IsSignificant reports whether r is a non-whitespace character.
func IsSignificant(r rune) bool {
	return !IsWhitespace(r)
}

// Not returns the negation of pred.
func Not(pred Predicate) Predicate {
	return func(r rune) bool {
		return !pred(r)
	}
}
