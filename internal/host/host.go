package host

import (
	"context"

	"github.com/dshills/hspace/internal/engine/buffer"
	"github.com/dshills/hspace/internal/engine/cursor"
)

// Editor is a text document with a selection.
type Editor interface {
	// Name identifies the document (a path, or a scratch name).
	Name() string

	// Text returns the full document text.
	Text() string

	// LineText returns one line without its terminator.
	LineText(line int) (string, error)

	// LineCount returns the number of lines.
	LineCount() int

	// Selection returns the current selection.
	Selection() cursor.Selection

	// SetSelection replaces the selection. Points are clamped to the
	// document.
	SetSelection(sel cursor.Selection) error

	// Edit applies the replacements queued by build as one transaction.
	// ctx bounds the wait for the host to accept the transaction; once
	// accepted, Edit blocks until the host reports the outcome.
	Edit(ctx context.Context, build func(*EditBuilder)) (EditResult, error)
}

// Window is the user-facing side of the host.
type Window interface {
	// ActiveEditor returns the focused editor, or nil when there is none.
	ActiveEditor() Editor

	// ShowInformationMessage displays an informational message.
	ShowInformationMessage(msg string)
}

// EditBuilder collects the replacements of one edit transaction.
type EditBuilder struct {
	edits []buffer.Edit
}

// Replace queues replacing the selected text with text.
func (b *EditBuilder) Replace(sel cursor.Selection, text string) {
	b.edits = append(b.edits, buffer.NewEdit(sel.Range(), text))
}

// Insert queues inserting text at p.
func (b *EditBuilder) Insert(p buffer.Point, text string) {
	b.edits = append(b.edits, buffer.NewInsert(p, text))
}

// Delete queues deleting the selected text.
func (b *EditBuilder) Delete(sel cursor.Selection) {
	b.edits = append(b.edits, buffer.NewDelete(sel.Range()))
}

// Edits returns the queued edits.
func (b *EditBuilder) Edits() []buffer.Edit {
	out := make([]buffer.Edit, len(b.edits))
	copy(out, b.edits)
	return out
}

// EditResult reports the outcome of an edit transaction.
type EditResult struct {
	// ID identifies the transaction in logs.
	ID string
	// Applied is true when the host accepted the edits.
	Applied bool
	// Changes describes each applied edit in document order.
	Changes []buffer.EditResult
}
