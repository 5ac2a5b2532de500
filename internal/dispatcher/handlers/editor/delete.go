package editor

import (
	"github.com/dshills/hspace/internal/dispatcher/execctx"
	"github.com/dshills/hspace/internal/dispatcher/handler"
	"github.com/dshills/hspace/internal/engine/buffer"
	"github.com/dshills/hspace/internal/engine/cursor"
	"github.com/dshills/hspace/internal/engine/scan"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
)

// Action names for delete operations.
const (
	ActionDeleteChar     = "editor.deleteChar"     // delete char under cursor
	ActionDeleteCharBack = "editor.deleteCharBack" // delete char before cursor
)

// DeleteHandler handles text deletion operations.
type DeleteHandler struct{}

// NewDeleteHandler creates a new delete handler.
func NewDeleteHandler() *DeleteHandler {
	return &DeleteHandler{}
}

// Namespace returns the editor namespace.
func (h *DeleteHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *DeleteHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionDeleteChar, ActionDeleteCharBack:
		return true
	}
	return false
}

// HandleAction processes a delete action.
func (h *DeleteHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	ed := ctx.ActiveEditor()
	sel := ed.Selection()

	var r buffer.Range
	var ok bool
	switch {
	case !sel.IsEmpty():
		r, ok = sel.Range(), true
	case action.Name == ActionDeleteChar:
		r, ok = charAfter(ed, sel.Head)
	case action.Name == ActionDeleteCharBack:
		r, ok = charBefore(ed, sel.Head)
	default:
		return handler.Errorf("unknown delete action: %s", action.Name)
	}
	if !ok {
		return handler.NoOp()
	}

	res, err := ed.Edit(ctx.Ctx(), func(b *host.EditBuilder) {
		b.Delete(cursor.NewRangeSelection(r))
	})
	if err != nil {
		return handler.Error(err)
	}
	return finishEdit(ed, res, r.Start.Line, func(c handler.Edit) cursor.Selection {
		return cursor.NewCursorSelection(c.Range.Start)
	})
}

// charAfter returns the range of the character at p, spanning the line
// break at the end of a line.
func charAfter(ed host.Editor, p buffer.Point) (buffer.Range, bool) {
	n := lineLen(ed, p.Line)
	switch {
	case p.Column < n:
		return buffer.LineRange(p.Line, p.Column, p.Column+1), true
	case p.Line+1 < ed.LineCount():
		return buffer.Range{Start: p, End: buffer.Point{Line: p.Line + 1}}, true
	}
	return buffer.Range{}, false
}

// charBefore returns the range of the character before p, spanning the
// previous line break at column 0.
func charBefore(ed host.Editor, p buffer.Point) (buffer.Range, bool) {
	switch {
	case p.Column > 0:
		return buffer.LineRange(p.Line, p.Column-1, p.Column), true
	case p.Line > 0:
		prev := buffer.Point{Line: p.Line - 1, Column: lineLen(ed, p.Line-1)}
		return buffer.Range{Start: prev, End: p}, true
	}
	return buffer.Range{}, false
}

func lineLen(ed host.Editor, line int) int {
	text, err := ed.LineText(line)
	if err != nil {
		return 0
	}
	return scan.NewLine(text).Len()
}
