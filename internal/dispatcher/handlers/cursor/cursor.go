package cursor

import (
	"github.com/dshills/hspace/internal/dispatcher/execctx"
	"github.com/dshills/hspace/internal/dispatcher/handler"
	"github.com/dshills/hspace/internal/engine/buffer"
	"github.com/dshills/hspace/internal/engine/cursor"
	"github.com/dshills/hspace/internal/engine/scan"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
)

// Action names for cursor movements.
const (
	ActionMoveLeft      = "cursor.moveLeft"
	ActionMoveRight     = "cursor.moveRight"
	ActionMoveUp        = "cursor.moveUp"
	ActionMoveDown      = "cursor.moveDown"
	ActionMoveLineStart = "cursor.moveLineStart"
	ActionMoveLineEnd   = "cursor.moveLineEnd"
	ActionMoveFirstLine = "cursor.moveFirstLine"
	ActionMoveLastLine  = "cursor.moveLastLine"
)

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionMoveLineStart, ActionMoveLineEnd, ActionMoveFirstLine, ActionMoveLastLine:
		return true
	}
	return false
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	ed, err := activeEditor(ctx)
	if err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()
	p := ed.Selection().Active()

	switch action.Name {
	case ActionMoveLeft:
		for i := 0; i < count; i++ {
			p = left(ed, p)
		}
	case ActionMoveRight:
		for i := 0; i < count; i++ {
			p = right(ed, p)
		}
	case ActionMoveUp:
		p.Line = max(p.Line-count, 0)
		p.Column = min(p.Column, lineLen(ed, p.Line))
	case ActionMoveDown:
		p.Line = min(p.Line+count, ed.LineCount()-1)
		p.Column = min(p.Column, lineLen(ed, p.Line))
	case ActionMoveLineStart:
		p.Column = 0
	case ActionMoveLineEnd:
		p.Column = lineLen(ed, p.Line)
	case ActionMoveFirstLine:
		p = buffer.Point{}
	case ActionMoveLastLine:
		p = buffer.Point{Line: ed.LineCount() - 1}
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}

	return moveTo(ed, p)
}

// activeEditor returns the editor a motion applies to.
func activeEditor(ctx *execctx.ExecutionContext) (host.Editor, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	ed := ctx.ActiveEditor()
	if ed == nil {
		return nil, execctx.ErrNoEditor
	}
	return ed, nil
}

// moveTo collapses the selection at p. Moving to the current position is a
// no-op.
func moveTo(ed host.Editor, p buffer.Point) handler.Result {
	sel := ed.Selection()
	if sel.IsEmpty() && sel.Active() == p {
		return handler.NoOp()
	}
	if err := ed.SetSelection(cursor.NewCursorSelection(p)); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithData("cursor", p)
}

func line(ed host.Editor, n int) scan.Line {
	text, err := ed.LineText(n)
	if err != nil {
		return scan.NewLine("")
	}
	return scan.NewLine(text)
}

func lineLen(ed host.Editor, n int) int {
	return line(ed, n).Len()
}

func left(ed host.Editor, p buffer.Point) buffer.Point {
	switch {
	case p.Column > 0:
		p.Column--
	case p.Line > 0:
		p.Line--
		p.Column = lineLen(ed, p.Line)
	}
	return p
}

func right(ed host.Editor, p buffer.Point) buffer.Point {
	switch {
	case p.Column < lineLen(ed, p.Line):
		p.Column++
	case p.Line < ed.LineCount()-1:
		p.Line++
		p.Column = 0
	}
	return p
}
