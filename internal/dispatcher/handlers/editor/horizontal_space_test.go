package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/hspace/internal/dispatcher"
	"github.com/dshills/hspace/internal/dispatcher/execctx"
	"github.com/dshills/hspace/internal/dispatcher/handler"
	editorhandler "github.com/dshills/hspace/internal/dispatcher/handlers/editor"
	"github.com/dshills/hspace/internal/engine/buffer"
	"github.com/dshills/hspace/internal/engine/cursor"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
)

type session struct {
	doc *host.Document
	wb  *host.Workbench
	d   *dispatcher.Dispatcher
}

func newSession(t *testing.T, text string, opts ...host.DocumentOption) *session {
	t.Helper()
	doc := host.NewDocument(text, opts...)
	t.Cleanup(func() { _ = doc.Close() })

	wb := host.NewWorkbench(nil)
	wb.SetActive(doc)

	d := dispatcher.NewWithDefaults()
	d.SetWindow(wb)
	d.RegisterNamespace(editorhandler.NewHorizontalSpaceHandler())
	d.RegisterNamespace(editorhandler.NewInsertHandler())
	d.RegisterNamespace(editorhandler.NewDeleteHandler())
	return &session{doc: doc, wb: wb, d: d}
}

func (s *session) run(name string) handler.Result {
	return s.d.Dispatch(context.Background(), input.NewAction(name, input.SourceCommand))
}

func at(line, col int) buffer.Point {
	return buffer.Point{Line: line, Column: col}
}

// TestHorizontalSpaceHandlerCanHandle verifies the handler claims only its action.
func TestHorizontalSpaceHandlerCanHandle(t *testing.T) {
	h := editorhandler.NewHorizontalSpaceHandler()
	if h.Namespace() != "editor" {
		t.Errorf("expected namespace 'editor', got %q", h.Namespace())
	}

	tests := []struct {
		action   string
		expected bool
	}{
		{editorhandler.ActionDeleteHorizontalSpace, true},
		{editorhandler.ActionDeleteChar, false},
		{"editor.unknown", false},
		{"cursor.moveLeft", false},
	}
	for _, tc := range tests {
		if h.CanHandle(tc.action) != tc.expected {
			t.Errorf("CanHandle(%q) = %v, want %v", tc.action, h.CanHandle(tc.action), tc.expected)
		}
	}
}

func TestDeleteHorizontalSpace(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     buffer.Point
		wantText   string
		wantCursor buffer.Point
		deleted    string
	}{
		{"inside run", "foo   bar", at(0, 5), "foobar", at(0, 3), "   "},
		{"start of run", "foo   bar", at(0, 3), "foobar", at(0, 3), "   "},
		{"end of run", "foo   bar", at(0, 6), "foobar", at(0, 3), "   "},
		{"trailing", "foo   ", at(0, 6), "foo", at(0, 3), "   "},
		{"leading", "  b  ", at(0, 1), "b  ", at(0, 0), "  "},
		{"all whitespace", "   ", at(0, 1), "", at(0, 0), "   "},
		{"mixed tabs", "x\t \ty", at(0, 2), "xy", at(0, 1), "\t \t"},
		{"second line", "a\n  b  \nc", at(1, 4), "a\n  b\nc", at(1, 3), "  "},
		{"wide characters", "日本  語", at(0, 3), "日本語", at(0, 2), "  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession(t, tc.text, host.WithCursor(tc.cursor))

			res := s.run(editorhandler.ActionDeleteHorizontalSpace)
			if !res.IsOK() {
				t.Fatalf("Dispatch() status = %v, err = %v", res.Status, res.Error)
			}
			if got := s.doc.Text(); got != tc.wantText {
				t.Errorf("text = %q, want %q", got, tc.wantText)
			}
			if got := s.doc.Selection(); got != cursor.NewCursorSelection(tc.wantCursor) {
				t.Errorf("selection = %v, want cursor at %v", got, tc.wantCursor)
			}
			if v, _ := res.GetData("deleted"); v != tc.deleted {
				t.Errorf("deleted = %q, want %q", v, tc.deleted)
			}
			if len(res.RedrawLines) != 1 || res.RedrawLines[0] != tc.cursor.Line {
				t.Errorf("RedrawLines = %v", res.RedrawLines)
			}
		})
	}
}

func TestDeleteHorizontalSpaceNoOp(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor buffer.Point
	}{
		{"empty line", "", at(0, 0)},
		{"inside word", "foobar", at(0, 3)},
		{"line start", "foo bar", at(0, 0)},
		{"line end", "foo bar", at(0, 7)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession(t, tc.text, host.WithCursor(tc.cursor))

			res := s.run(editorhandler.ActionDeleteHorizontalSpace)
			if !res.IsNoOp() {
				t.Fatalf("expected no-op, got %v (%v)", res.Status, res.Error)
			}
			if s.doc.Text() != tc.text {
				t.Errorf("text changed to %q", s.doc.Text())
			}
			if got := s.doc.Selection(); got != cursor.NewCursorSelection(tc.cursor) {
				t.Errorf("selection moved to %v", got)
			}
		})
	}
}

func TestDeleteHorizontalSpaceTwice(t *testing.T) {
	s := newSession(t, "foo   bar", host.WithCursor(at(0, 4)))

	if res := s.run(editorhandler.ActionDeleteHorizontalSpace); !res.IsOK() {
		t.Fatalf("first run: %v", res.Status)
	}
	if res := s.run(editorhandler.ActionDeleteHorizontalSpace); !res.IsNoOp() {
		t.Fatalf("second run should be a no-op, got %v", res.Status)
	}
	if s.doc.Text() != "foobar" || s.doc.Selection().Active() != at(0, 3) {
		t.Errorf("state after second run: %q %v", s.doc.Text(), s.doc.Selection())
	}
}

func TestDeleteHorizontalSpaceUsesHead(t *testing.T) {
	s := newSession(t, "foo   bar")
	if err := s.doc.SetSelection(cursor.NewSelection(at(0, 0), at(0, 5))); err != nil {
		t.Fatal(err)
	}

	if res := s.run(editorhandler.ActionDeleteHorizontalSpace); !res.IsOK() {
		t.Fatalf("Dispatch() status = %v", res.Status)
	}
	if s.doc.Text() != "foobar" || s.doc.Selection() != cursor.NewCursorSelection(at(0, 3)) {
		t.Errorf("got %q %v", s.doc.Text(), s.doc.Selection())
	}
}

func TestDeleteHorizontalSpaceNoEditor(t *testing.T) {
	wb := host.NewWorkbench(nil)
	d := dispatcher.NewWithDefaults()
	d.SetWindow(wb)
	d.RegisterNamespace(editorhandler.NewHorizontalSpaceHandler())

	res := d.Dispatch(context.Background(), input.NewAction(editorhandler.ActionDeleteHorizontalSpace, input.SourceCommand))

	if !res.IsNoOp() || res.Message != editorhandler.MessageNoEditor {
		t.Errorf("result = %v %q, want no-op %q", res.Status, res.Message, editorhandler.MessageNoEditor)
	}
	if msgs := wb.Messages(); len(msgs) != 1 || msgs[0] != "No editor" {
		t.Errorf("messages = %v", msgs)
	}
}

func TestDeleteHorizontalSpaceNoWindow(t *testing.T) {
	h := editorhandler.NewHorizontalSpaceHandler()

	res := h.HandleAction(input.Action{Name: editorhandler.ActionDeleteHorizontalSpace}, execctx.New())
	if !errors.Is(res.Error, execctx.ErrMissingWindow) {
		t.Errorf("expected ErrMissingWindow, got %v", res.Error)
	}
}

func TestDeleteHorizontalSpaceEditFailure(t *testing.T) {
	s := newSession(t, "foo   bar", host.WithCursor(at(0, 4)), host.WithReadOnly(true))

	res := s.run(editorhandler.ActionDeleteHorizontalSpace)
	if !res.IsError() || !errors.Is(res.Error, host.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly error result, got %v %v", res.Status, res.Error)
	}
	if s.doc.Text() != "foo   bar" {
		t.Errorf("text changed to %q", s.doc.Text())
	}
	want := cursor.NewRangeSelection(buffer.LineRange(0, 3, 6))
	if got := s.doc.Selection(); got != want {
		t.Errorf("selection = %v, want %v left on the whitespace", got, want)
	}
}

// failingEditor accepts selections but rejects every edit.
type failingEditor struct {
	text string
	sel  cursor.Selection
	err  error
}

func (e *failingEditor) Name() string { return "failing" }
func (e *failingEditor) Text() string { return e.text }
func (e *failingEditor) LineText(int) (string, error) { return e.text, nil }
func (e *failingEditor) LineCount() int { return 1 }
func (e *failingEditor) Selection() cursor.Selection { return e.sel }
func (e *failingEditor) SetSelection(s cursor.Selection) error { e.sel = s; return nil }

func (e *failingEditor) Edit(context.Context, func(*host.EditBuilder)) (host.EditResult, error) {
	return host.EditResult{}, e.err
}

func TestDeleteHorizontalSpaceHostRejects(t *testing.T) {
	boom := errors.New("host rejected edit")
	ed := &failingEditor{text: "a  b", sel: cursor.NewCursorSelection(at(0, 2)), err: boom}
	wb := host.NewWorkbench(nil)
	wb.SetActive(ed)

	ctx := execctx.New().WithWindow(wb)
	res := editorhandler.NewHorizontalSpaceHandler().HandleAction(
		input.Action{Name: editorhandler.ActionDeleteHorizontalSpace}, ctx)

	if !errors.Is(res.Error, boom) {
		t.Errorf("expected host error, got %v", res.Error)
	}
	if ed.sel != cursor.NewRangeSelection(buffer.LineRange(0, 1, 3)) {
		t.Errorf("selection = %v", ed.sel)
	}
}
