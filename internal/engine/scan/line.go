package scan

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Line is an immutable view of one line of text indexed by character.
type Line struct {
	text string
	// offsets[i] is the byte offset of character i; the final entry is len(text).
	offsets []int
}

// NewLine segments s into grapheme clusters.
func NewLine(s string) Line {
	offsets := make([]int, 0, len(s)+1)
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		from, _ := gr.Positions()
		offsets = append(offsets, from)
	}
	offsets = append(offsets, len(s))
	return Line{text: s, offsets: offsets}
}

// Len returns the number of characters in the line.
func (l Line) Len() int {
	if len(l.offsets) == 0 {
		return 0
	}
	return len(l.offsets) - 1
}

// String returns the underlying text.
func (l Line) String() string {
	return l.text
}

// At returns character i, or "" when i is out of range.
func (l Line) At(i int) string {
	if i < 0 || i >= l.Len() {
		return ""
	}
	return l.text[l.offsets[i]:l.offsets[i+1]]
}

// Rune returns the first rune of character i, or utf8.RuneError when i is
// out of range.
func (l Line) Rune(i int) rune {
	ch := l.At(i)
	if ch == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(ch)
	return r
}

// ByteOffset converts a character index to a byte offset into String().
// Indices are clamped to [0, Len()].
func (l Line) ByteOffset(i int) int {
	if len(l.offsets) == 0 || i <= 0 {
		return 0
	}
	if i >= l.Len() {
		return len(l.text)
	}
	return l.offsets[i]
}

// Slice returns the text between two character indices.
func (l Line) Slice(first, last int) string {
	from, to := l.ByteOffset(first), l.ByteOffset(last)
	if from >= to {
		return ""
	}
	return l.text[from:to]
}

// clamp limits a column to [0, Len()].
func (l Line) clamp(column int) int {
	if column < 0 {
		return 0
	}
	if n := l.Len(); column > n {
		return n
	}
	return column
}
