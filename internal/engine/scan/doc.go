// Package scan locates the run of horizontal whitespace around a column of
// a single line of text.
//
// The package has two scanning primitives that accept an arbitrary
// character classifier:
//
//   - FindFirstSignificant walks leftwards and yields the left boundary
//   - FindLastSignificant walks rightwards and yields the right boundary
//
// DeleteRange combines both with IsSignificant to compute the span removed
// by the delete-horizontal-space command.
//
// Columns are character indices. A character is one grapheme cluster, so
// "e" followed by a combining accent counts as a single column:
//
//	line := scan.NewLine("foo   bar")
//	b, ok := scan.DeleteRange(line, 5) // b == [3,6), ok == true
//
// Every function here is pure. A Line is immutable and safe to share
// between goroutines.
package scan
