package cursor

import (
	"fmt"

	"github.com/dshills/hspace/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Selection represents a range of selected text.
type Selection struct {
	Anchor Point // Where the selection started
	Head   Point // Active position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Point) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection with no extent.
func NewCursorSelection(p Point) Selection {
	return Selection{Anchor: p, Head: p}
}

// NewRangeSelection creates a forward selection covering r.
func NewRangeSelection(r buffer.Range) Selection {
	r = r.Normalize()
	return Selection{Anchor: r.Start, Head: r.End}
}

// IsEmpty returns true if the selection is just a cursor.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Active returns the head position.
func (s Selection) Active() Point {
	return s.Head
}

// Range returns the selection as an ordered range.
func (s Selection) Range() buffer.Range {
	return buffer.NewRange(s.Anchor, s.Head)
}

// IsForward returns true if the head does not come before the anchor.
func (s Selection) IsForward() bool {
	return !s.Head.Before(s.Anchor)
}

// MoveTo returns a cursor selection at p.
func (s Selection) MoveTo(p Point) Selection {
	return NewCursorSelection(p)
}

// Collapse returns a cursor selection at the head.
func (s Selection) Collapse() Selection {
	return NewCursorSelection(s.Head)
}

// Extend returns the selection with its head moved to p.
func (s Selection) Extend(p Point) Selection {
	return Selection{Anchor: s.Anchor, Head: p}
}

// Transform maps both ends of the selection through an applied edit.
func (s Selection) Transform(res buffer.EditResult) Selection {
	return Selection{
		Anchor: res.TransformPoint(s.Anchor),
		Head:   res.TransformPoint(s.Head),
	}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	return fmt.Sprintf("Selection%s->%s", s.Anchor, s.Head)
}
