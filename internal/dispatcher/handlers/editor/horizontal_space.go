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

// ActionDeleteHorizontalSpace deletes the whitespace run around the cursor.
const ActionDeleteHorizontalSpace = "editor.deleteHorizontalSpace"

// MessageNoEditor is shown when the command runs without an active editor.
const MessageNoEditor = "No editor"

// HorizontalSpaceHandler handles editor.deleteHorizontalSpace.
type HorizontalSpaceHandler struct{}

// NewHorizontalSpaceHandler creates a new horizontal space handler.
func NewHorizontalSpaceHandler() *HorizontalSpaceHandler {
	return &HorizontalSpaceHandler{}
}

// Namespace returns the editor namespace.
func (h *HorizontalSpaceHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *HorizontalSpaceHandler) CanHandle(actionName string) bool {
	return actionName == ActionDeleteHorizontalSpace
}

// HandleAction processes a horizontal space action.
func (h *HorizontalSpaceHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if action.Name != ActionDeleteHorizontalSpace {
		return handler.Errorf("unknown whitespace action: %s", action.Name)
	}
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	ed := ctx.ActiveEditor()
	if ed == nil {
		ctx.Window.ShowInformationMessage(MessageNoEditor)
		return handler.NoOpWithMessage(MessageNoEditor)
	}
	return h.deleteHorizontalSpace(ctx, ed)
}

func (h *HorizontalSpaceHandler) deleteHorizontalSpace(ctx *execctx.ExecutionContext, ed host.Editor) handler.Result {
	pos := ed.Selection().Active()
	text, err := ed.LineText(pos.Line)
	if err != nil {
		return handler.Error(err)
	}

	bounds, ok := scan.DeleteRange(scan.NewLine(text), pos.Column)
	if !ok {
		return handler.NoOp()
	}

	log := ctx.Log().WithFields(map[string]any{
		"line":  pos.Line,
		"range": bounds,
	})

	sel := cursor.NewRangeSelection(buffer.LineRange(pos.Line, bounds.First, bounds.Last))
	if err := ed.SetSelection(sel); err != nil {
		return handler.Error(err)
	}

	res, err := ed.Edit(ctx.Ctx(), func(b *host.EditBuilder) {
		b.Replace(sel, "")
	})
	if err != nil {
		log.Warn("edit failed: %v", err)
		return handler.Error(err)
	}

	// The host has already mapped the selection through the edit.
	after := ed.Selection().Collapse()
	if err := ed.SetSelection(after); err != nil {
		return handler.Error(err)
	}
	log.Debug("deleted horizontal space in tx %s", res.ID)

	result := handler.Success().WithRedrawLines(pos.Line)
	deleted := ""
	for _, c := range res.Changes {
		deleted += c.OldText
		result = result.WithEdit(handler.Edit{Range: c.OldRange, OldText: c.OldText})
	}
	return result.WithData("deleted", deleted).WithData("cursor", after.Active())
}
