package scan

import "fmt"

// FromEnd requests the default starting column of a scan.
const FromEnd = -1

// Boundary is the half-open character range [First, Last) of a line.
type Boundary struct {
	First int
	Last  int
}

// IsEmpty returns true if the boundary spans no characters.
func (b Boundary) IsEmpty() bool {
	return b.First == b.Last
}

// Len returns the number of characters in the boundary.
func (b Boundary) Len() int {
	return b.Last - b.First
}

// String returns a human-readable representation of the boundary.
func (b Boundary) String() string {
	return fmt.Sprintf("[%d,%d)", b.First, b.Last)
}

// FindFirstSignificant returns the left boundary of the run of
// non-matching characters ending at start.
//
// With start == FromEnd the scan begins at the last character; otherwise it
// begins at start-1. Moving left, the first character satisfying pred stops
// the scan and the index just after it is returned. The result is 0 when
// nothing matches.
func FindFirstSignificant(line Line, pred Predicate, start int) int {
	i := line.Len() - 1
	if start != FromEnd {
		i = line.clamp(start) - 1
	}
	for ; i >= 0; i-- {
		if pred(line.Rune(i)) {
			return i + 1
		}
	}
	return 0
}

// FindLastSignificant returns the right boundary of the run of
// non-matching characters beginning at start.
//
// With start == FromEnd the scan begins at Len() and returns Len()
// immediately. Moving right from start inclusive, the index of the first
// character satisfying pred is returned, or Len() when nothing matches.
func FindLastSignificant(line Line, pred Predicate, start int) int {
	n := line.Len()
	i := n
	if start != FromEnd {
		i = line.clamp(start)
	}
	for ; i < n; i++ {
		if pred(line.Rune(i)) {
			return i
		}
	}
	return n
}

// Locate computes the boundary of the run of characters around column that
// do not satisfy pred. ok is false when the run is empty.
func Locate(line Line, pred Predicate, column int) (b Boundary, ok bool) {
	column = line.clamp(column)
	b = Boundary{
		First: FindFirstSignificant(line, pred, column),
		Last:  FindLastSignificant(line, pred, column),
	}
	return b, !b.IsEmpty()
}

// DeleteRange computes the whitespace run around column that the
// delete-horizontal-space command removes. ok is false when there is nothing
// to delete and the caller must not edit the line.
func DeleteRange(line Line, column int) (Boundary, bool) {
	return Locate(line, IsSignificant, column)
}

// Apply deletes the whitespace run around column and returns the new text
// with the resulting cursor column. ok is false when the line is unchanged.
func Apply(line Line, column int) (text string, cursor int, ok bool) {
	b, ok := DeleteRange(line, column)
	if !ok {
		return line.String(), line.clamp(column), false
	}
	s := line.String()
	return s[:line.ByteOffset(b.First)] + s[line.ByteOffset(b.Last):], b.First, true
}
