package editor

import (
	"github.com/dshills/hspace/internal/dispatcher/execctx"
	"github.com/dshills/hspace/internal/dispatcher/handler"
	"github.com/dshills/hspace/internal/engine/cursor"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
)

// Action names for insert operations.
const (
	ActionInsertText    = "editor.insertText"
	ActionInsertNewline = "editor.insertNewline"
)

// InsertHandler handles text insertion operations.
type InsertHandler struct{}

// NewInsertHandler creates a new insert handler.
func NewInsertHandler() *InsertHandler {
	return &InsertHandler{}
}

// Namespace returns the editor namespace.
func (h *InsertHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *InsertHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionInsertText, ActionInsertNewline:
		return true
	}
	return false
}

// HandleAction processes an insert action.
func (h *InsertHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionInsertText:
		return h.insertText(ctx, action.Args.Text)
	case ActionInsertNewline:
		return h.insertText(ctx, "\n")
	default:
		return handler.Errorf("unknown insert action: %s", action.Name)
	}
}

// insertText replaces the primary selection with text and places the
// cursor after it.
func (h *InsertHandler) insertText(ctx *execctx.ExecutionContext, text string) handler.Result {
	if text == "" {
		return handler.NoOp()
	}

	ed := ctx.ActiveEditor()
	sel := ed.Selection()
	res, err := ed.Edit(ctx.Ctx(), func(b *host.EditBuilder) {
		b.Replace(sel, text)
	})
	if err != nil {
		return handler.Error(err)
	}
	return finishEdit(ed, res, sel.Range().Start.Line, func(c handler.Edit) cursor.Selection {
		return cursor.NewCursorSelection(c.Range.End)
	})
}

// finishEdit positions the cursor from the first applied change and
// reports the edit. Lines from line downwards are redrawn.
func finishEdit(ed host.Editor, res host.EditResult, line int, place func(handler.Edit) cursor.Selection) handler.Result {
	if len(res.Changes) == 0 {
		return handler.NoOp()
	}

	result := handler.Success()
	for _, c := range res.Changes {
		result = result.WithEdit(handler.Edit{Range: c.NewRange, OldText: c.OldText})
	}
	if err := ed.SetSelection(place(result.Edits[0])); err != nil {
		return handler.Error(err)
	}

	lines := make([]int, 0, ed.LineCount()-line)
	for l := line; l < ed.LineCount(); l++ {
		lines = append(lines, l)
	}
	return result.WithRedrawLines(lines...)
}
