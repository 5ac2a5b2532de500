package cursor

import (
	"github.com/dshills/hspace/internal/dispatcher/execctx"
	"github.com/dshills/hspace/internal/dispatcher/handler"
	"github.com/dshills/hspace/internal/engine/buffer"
	"github.com/dshills/hspace/internal/engine/scan"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
)

// Action names for word motions.
const (
	ActionWordForward   = "cursor.wordForward"
	ActionWordBackward  = "cursor.wordBackward"
	ActionFirstNonBlank = "cursor.firstNonBlank"
)

// MotionHandler implements whitespace-delimited word motions.
type MotionHandler struct{}

// NewMotionHandler creates a new motion handler.
func NewMotionHandler() *MotionHandler {
	return &MotionHandler{}
}

// Namespace returns the cursor namespace.
func (h *MotionHandler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *MotionHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionWordForward, ActionWordBackward, ActionFirstNonBlank:
		return true
	}
	return false
}

// HandleAction processes a motion action.
func (h *MotionHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	ed, err := activeEditor(ctx)
	if err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()
	p := ed.Selection().Active()

	switch action.Name {
	case ActionWordForward:
		for i := 0; i < count; i++ {
			p = wordForward(ed, p)
		}
	case ActionWordBackward:
		for i := 0; i < count; i++ {
			p = wordBackward(ed, p)
		}
	case ActionFirstNonBlank:
		p.Column = firstNonBlank(line(ed, p.Line))
	default:
		return handler.Errorf("unknown motion action: %s", action.Name)
	}

	return moveTo(ed, p)
}

func firstNonBlank(l scan.Line) int {
	return scan.FindLastSignificant(l, scan.IsSignificant, 0)
}

// wordForward moves to the start of the next word, continuing onto
// following lines when the current line has none.
func wordForward(ed host.Editor, p buffer.Point) buffer.Point {
	l := line(ed, p.Line)
	gap := scan.FindLastSignificant(l, scan.IsWhitespace, p.Column)
	next := scan.FindLastSignificant(l, scan.IsSignificant, gap)
	if next < l.Len() {
		p.Column = next
		return p
	}
	for n := p.Line + 1; n < ed.LineCount(); n++ {
		nl := line(ed, n)
		if c := firstNonBlank(nl); c < nl.Len() {
			return buffer.Point{Line: n, Column: c}
		}
	}
	p.Column = l.Len()
	return p
}

// wordBackward moves to the start of the word before p, continuing onto
// earlier lines at a line start.
func wordBackward(ed host.Editor, p buffer.Point) buffer.Point {
	for {
		l := line(ed, p.Line)
		end := scan.FindFirstSignificant(l, scan.IsSignificant, p.Column)
		if end > 0 {
			p.Column = scan.FindFirstSignificant(l, scan.IsWhitespace, end)
			return p
		}
		if p.Line == 0 {
			p.Column = 0
			return p
		}
		p.Line--
		p.Column = lineLen(ed, p.Line)
	}
}
