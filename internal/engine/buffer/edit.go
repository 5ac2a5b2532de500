package buffer

import "fmt"

// Edit is a replacement of a range with new text.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit creates a new Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r.Normalize(), NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(p Point, text string) Edit {
	return Edit{Range: Range{Start: p, End: p}, NewText: text}
}

// NewDelete creates an Edit that deletes a range.
func NewDelete(r Range) Edit {
	return Edit{Range: r.Normalize()}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// EditResult describes an applied edit.
type EditResult struct {
	// OldRange is the range that was replaced.
	OldRange Range
	// NewRange is the range now occupied by the inserted text.
	NewRange Range
	// OldText is the text that was removed.
	OldText string
	// Revision is the buffer revision after the edit.
	Revision RevisionID
}

// TransformPoint maps a point from before the edit to after it.
// Points before the edit are unchanged, points inside the replaced range
// collapse to its start, and points after it shift with the edit.
func (res EditResult) TransformPoint(p Point) Point {
	old := res.OldRange
	switch {
	case p.Before(old.Start) || p == old.Start:
		return p
	case p.Before(old.End):
		return old.Start
	}

	newEnd := res.NewRange.End
	if p.Line == old.End.Line {
		return Point{
			Line:   newEnd.Line,
			Column: newEnd.Column + (p.Column - old.End.Column),
		}
	}
	return Point{
		Line:   p.Line + (newEnd.Line - old.End.Line),
		Column: p.Column,
	}
}
