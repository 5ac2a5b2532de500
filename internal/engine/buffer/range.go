package buffer

import "fmt"

// Range is a half-open span of the buffer: [Start, End).
type Range struct {
	Start Point
	End   Point
}

// NewRange creates a range from two points, ordering them if needed.
func NewRange(a, b Point) Range {
	return Range{Start: a, End: b}.Normalize()
}

// LineRange creates a range covering columns [first, last) of one line.
func LineRange(line, first, last int) Range {
	return NewRange(Point{Line: line, Column: first}, Point{Line: line, Column: last})
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if the range covers nothing.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start does not come after End.
func (r Range) IsValid() bool {
	return !r.Start.After(r.End)
}

// Normalize returns the range with Start <= End.
func (r Range) Normalize() Range {
	if r.Start.After(r.End) {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Contains returns true if p lies within the range.
func (r Range) Contains(p Point) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// IsSingleLine returns true if the range does not cross a line break.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}
