package api

import (
	"context"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hspace/internal/dispatcher/handler"
	"github.com/dshills/hspace/internal/dispatcher/handlers/editor"
	"github.com/dshills/hspace/internal/engine/scan"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
)

// Dispatcher is the part of the dispatcher the hspace module needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, action input.Action) handler.Result
	Window() host.Window
}

// HSpaceModule implements the hspace API module.
type HSpaceModule struct {
	d Dispatcher
}

// NewHSpaceModule creates a new hspace module bound to a dispatcher.
func NewHSpaceModule(d Dispatcher) *HSpaceModule {
	return &HSpaceModule{d: d}
}

// Name returns the module name.
func (m *HSpaceModule) Name() string {
	return "hspace"
}

// Register registers the module into the Lua state.
func (m *HSpaceModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "range", L.NewFunction(m.rangeOf))
	L.SetField(mod, "is_significant", L.NewFunction(m.isSignificant))
	L.SetField(mod, "find_first", L.NewFunction(m.findFirst))
	L.SetField(mod, "find_last", L.NewFunction(m.findLast))
	L.SetField(mod, "delete", L.NewFunction(m.delete))
	L.SetField(mod, "message", L.NewFunction(m.message))
	L.SetField(mod, "cursor", L.NewFunction(m.cursor))
	L.SetField(mod, "line", L.NewFunction(m.line))

	L.SetGlobal(m.Name(), mod)
	return nil
}

// range(text, col) -> first, last | nil
// Returns the whitespace run to delete around col, or nil for a no-op.
func (m *HSpaceModule) rangeOf(L *lua.LState) int {
	text := L.CheckString(1)
	col := L.CheckInt(2)

	b, ok := scan.DeleteRange(scan.NewLine(text), col)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(b.First))
	L.Push(lua.LNumber(b.Last))
	return 2
}

// is_significant(ch) -> bool
// Classifies the first character of ch. The empty string is not significant.
func (m *HSpaceModule) isSignificant(L *lua.LState) int {
	ch := L.CheckString(1)
	if ch == "" {
		L.Push(lua.LFalse)
		return 1
	}
	r, _ := utf8.DecodeRuneInString(ch)
	L.Push(lua.LBool(scan.IsSignificant(r)))
	return 1
}

// find_first(text, fn, col?) -> index
// Left boundary of the run before col using a Lua predicate.
func (m *HSpaceModule) findFirst(L *lua.LState) int {
	return m.find(L, scan.FindFirstSignificant)
}

// find_last(text, fn, col?) -> index
// Right boundary of the run from col using a Lua predicate.
func (m *HSpaceModule) findLast(L *lua.LState) int {
	return m.find(L, scan.FindLastSignificant)
}

func (m *HSpaceModule) find(L *lua.LState, locate func(scan.Line, scan.Predicate, int) int) int {
	text := L.CheckString(1)
	fn := L.CheckFunction(2)
	start := L.OptInt(3, scan.FromEnd)

	var callErr error
	pred := func(r rune) bool {
		if callErr != nil {
			return false
		}
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(string(r))); err != nil {
			callErr = err
			return false
		}
		ret := L.Get(-1)
		L.Pop(1)
		return lua.LVAsBool(ret)
	}

	idx := locate(scan.NewLine(text), pred, start)
	if callErr != nil {
		L.RaiseError("predicate failed: %v", callErr)
		return 0
	}
	L.Push(lua.LNumber(idx))
	return 1
}

// delete() -> status, err?
// Runs editor.deleteHorizontalSpace on the active editor.
func (m *HSpaceModule) delete(L *lua.LState) int {
	ctx := L.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res := m.d.Dispatch(ctx, input.NewAction(editor.ActionDeleteHorizontalSpace, input.SourceScript))
	L.Push(lua.LString(res.Status.String()))
	if res.IsError() {
		L.Push(lua.LString(res.Error.Error()))
		return 2
	}
	return 1
}

// message(msg)
// Shows an informational message in the window.
func (m *HSpaceModule) message(L *lua.LState) int {
	msg := L.CheckString(1)
	if w := m.d.Window(); w != nil {
		w.ShowInformationMessage(msg)
	}
	return 0
}

// cursor() -> line, col | nil
// Position of the active editor's cursor, 0-based like range and find_*.
func (m *HSpaceModule) cursor(L *lua.LState) int {
	ed := m.activeEditor()
	if ed == nil {
		L.Push(lua.LNil)
		return 1
	}
	p := ed.Selection().Active()
	L.Push(lua.LNumber(p.Line))
	L.Push(lua.LNumber(p.Column))
	return 2
}

// line() -> text | nil
// Text of the line holding the cursor.
func (m *HSpaceModule) line(L *lua.LState) int {
	ed := m.activeEditor()
	if ed == nil {
		L.Push(lua.LNil)
		return 1
	}
	text, err := ed.LineText(ed.Selection().Active().Line)
	if err != nil {
		L.RaiseError("line: %v", err)
		return 0
	}
	L.Push(lua.LString(text))
	return 1
}

func (m *HSpaceModule) activeEditor() host.Editor {
	w := m.d.Window()
	if w == nil {
		return nil
	}
	return w.ActiveEditor()
}
