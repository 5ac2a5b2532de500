package handler

import (
	"errors"
	"testing"

	"github.com/dshills/hspace/internal/dispatcher/execctx"
	"github.com/dshills/hspace/internal/input"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	h := NewHandlerFunc(func(action input.Action, ctx *execctx.ExecutionContext) Result {
		called = true
		return Success()
	})

	if !h.CanHandle("anything") {
		t.Error("HandlerFunc should accept every action")
	}
	if h.Priority() != 0 {
		t.Errorf("Priority() = %d, want 0", h.Priority())
	}
	if res := h.Handle(input.Action{Name: "x"}, execctx.New()); !res.IsOK() || !called {
		t.Errorf("Handle() = %v, called = %v", res.Status, called)
	}
}

func TestHandlerFuncNil(t *testing.T) {
	h := NewHandlerFuncWithPriority(nil, 5)
	if h.Priority() != 5 {
		t.Errorf("Priority() = %d, want 5", h.Priority())
	}
	if res := h.Handle(input.Action{}, execctx.New()); !res.IsError() {
		t.Errorf("nil function should produce an error result, got %v", res.Status)
	}
}

type testNamespace struct{}

func (testNamespace) Namespace() string { return "test" }

func (testNamespace) CanHandle(name string) bool { return name == "test.run" }

func (testNamespace) HandleAction(input.Action, *execctx.ExecutionContext) Result {
	return SuccessWithMessage("ran")
}

func TestNamespaceAdapter(t *testing.T) {
	h := NewNamespaceAdapter(testNamespace{})

	if !h.CanHandle("test.run") || h.CanHandle("test.other") {
		t.Error("adapter should delegate CanHandle")
	}
	if res := h.Handle(input.Action{Name: "test.run"}, execctx.New()); res.Message != "ran" {
		t.Errorf("Handle() message = %q, want ran", res.Message)
	}
}

func TestResultBuilders(t *testing.T) {
	r := Success().
		WithMessage("done").
		WithEdit(Edit{OldText: "  "}).
		WithRedrawLines(2, 3).
		WithData("deleted", "  ")

	if !r.IsOK() || r.IsError() || r.IsNoOp() {
		t.Errorf("unexpected status %v", r.Status)
	}
	if r.Message != "done" || len(r.Edits) != 1 || len(r.RedrawLines) != 2 {
		t.Errorf("builder fields not set: %+v", r)
	}
	if v, ok := r.GetData("deleted"); !ok || v != "  " {
		t.Errorf("GetData(deleted) = %v, %v", v, ok)
	}
	if _, ok := NoOp().GetData("x"); ok {
		t.Error("GetData on empty result should miss")
	}
}

func TestResultErrors(t *testing.T) {
	base := errors.New("boom")
	if r := Error(base); !r.IsError() || !errors.Is(r.Error, base) {
		t.Errorf("Error() = %+v", r)
	}
	if r := Errorf("wrapped: %w", base); !errors.Is(r.Error, base) {
		t.Errorf("Errorf() did not wrap: %v", r.Error)
	}
	if r := NoOpWithMessage("nothing"); !r.IsNoOp() || r.Message != "nothing" {
		t.Errorf("NoOpWithMessage() = %+v", r)
	}
}

func TestResultStatusString(t *testing.T) {
	tests := map[ResultStatus]string{
		StatusOK:          "ok",
		StatusNoOp:        "no-op",
		StatusError:       "error",
		ResultStatus(200): "unknown",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
