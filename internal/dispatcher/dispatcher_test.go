package dispatcher_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/hspace/internal/dispatcher"
	"github.com/dshills/hspace/internal/dispatcher/execctx"
	"github.com/dshills/hspace/internal/dispatcher/handler"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
	"github.com/dshills/hspace/internal/logging"
)

func TestNewWithDefaults(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	if d.Registry() == nil {
		t.Error("expected non-nil registry")
	}
	if d.Metrics() == nil {
		t.Error("expected metrics enabled by default")
	}
	if d.Logger() == nil {
		t.Error("expected a null logger by default")
	}
}

func TestNewWithoutMetrics(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics(false))
	if d.Metrics() != nil {
		t.Error("expected nil metrics when disabled")
	}

	// Dispatch must not touch the nil collector.
	d.Dispatch(context.Background(), input.Action{Name: "x.y"})
}

func TestDispatchNoHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(context.Background(), input.Action{Name: "unknown.action"})

	if result.Status != handler.StatusError {
		t.Fatalf("expected StatusError for unknown action, got %v", result.Status)
	}
	if !errors.Is(result.Error, dispatcher.ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Error)
	}
}

func TestDispatchInvalidAction(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(context.Background(), input.Action{})
	if !errors.Is(result.Error, dispatcher.ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", result.Error)
	}
}

func TestRegisterHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	called := false
	d.RegisterHandlerFunc("test.action", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := d.Dispatch(context.Background(), input.Action{Name: "test.action"})

	if !called {
		t.Error("expected handler to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if !d.CanDispatch("test.action") || d.CanDispatch("test.other") {
		t.Error("CanDispatch should reflect registrations")
	}
}

type nsHandler struct {
	calls []string
}

func (h *nsHandler) Namespace() string { return "editor" }

func (h *nsHandler) CanHandle(name string) bool { return name == "editor.run" }

func (h *nsHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	h.calls = append(h.calls, action.Name)
	return handler.SuccessWithMessage("ran")
}

func TestRegisterNamespace(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	ns := &nsHandler{}
	adapter := d.RegisterNamespace(ns)

	if res := d.Dispatch(context.Background(), input.Action{Name: "editor.run"}); res.Message != "ran" {
		t.Errorf("expected namespace handler result, got %+v", res)
	}
	if res := d.Dispatch(context.Background(), input.Action{Name: "editor.other"}); !errors.Is(res.Error, dispatcher.ErrNoHandler) {
		t.Errorf("namespace handler should decline editor.other, got %+v", res)
	}

	d.UnregisterHandler("", adapter)
	if d.CanDispatch("editor.run") {
		t.Error("expected namespace handler to be removed")
	}
	if len(ns.calls) != 1 {
		t.Errorf("calls = %v", ns.calls)
	}
}

func TestExactHandlerWinsOverNamespace(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterNamespace(&nsHandler{})
	d.RegisterHandlerFunc("editor.run", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("exact")
	})

	if res := d.Dispatch(context.Background(), input.Action{Name: "editor.run"}); res.Message != "exact" {
		t.Errorf("expected exact handler, got %q", res.Message)
	}
}

func TestDispatchPanicRecovery(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("test.panic", func(input.Action, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	result := d.Dispatch(context.Background(), input.Action{Name: "test.panic"})

	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Fatalf("expected ErrPanic, got %v", result.Error)
	}
	if !strings.Contains(result.Error.Error(), "boom") {
		t.Errorf("panic value missing from error: %v", result.Error)
	}
	if got := d.Metrics().Stats().TotalPanics; got != 1 {
		t.Errorf("TotalPanics = %d, want 1", got)
	}
}

func TestDispatchPassesContext(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	wb := host.NewWorkbench(nil)
	d.SetWindow(wb)

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	var gotCount int
	d.RegisterHandlerFunc("test.ctx", func(action input.Action, ec *execctx.ExecutionContext) handler.Result {
		if ec.Window != wb {
			return handler.Errorf("window not propagated")
		}
		if ec.Ctx().Value(key{}) != "v" {
			return handler.Errorf("context not propagated")
		}
		gotCount = ec.GetCount()
		return handler.Success()
	})

	res := d.Dispatch(ctx, input.Action{Name: "test.ctx", Count: 3})
	if !res.IsOK() {
		t.Fatalf("Dispatch() = %v", res.Error)
	}
	if gotCount != 3 {
		t.Errorf("count = %d, want 3", gotCount)
	}
}

func TestDispatchClampsRepeatCount(t *testing.T) {
	cfg := dispatcher.DefaultConfig()
	cfg.MaxRepeatCount = 5
	d := dispatcher.New(cfg)

	var gotCount int
	d.RegisterHandlerFunc("test.count", func(_ input.Action, ec *execctx.ExecutionContext) handler.Result {
		gotCount = ec.GetCount()
		return handler.Success()
	})
	d.Dispatch(context.Background(), input.Action{Name: "test.count", Count: 50})

	if gotCount != 5 {
		t.Errorf("count = %d, want 5", gotCount)
	}
}

func TestDispatchLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	d := dispatcher.NewWithDefaults()
	d.SetLogger(logger)
	d.Dispatch(context.Background(), input.Action{Name: "missing.action"})

	out := buf.String()
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "action=missing.action") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestDispatchMetrics(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("test.ok", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	})
	d.RegisterHandlerFunc("test.noop", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	})

	ctx := context.Background()
	d.Dispatch(ctx, input.Action{Name: "test.ok"})
	d.Dispatch(ctx, input.Action{Name: "test.ok"})
	d.Dispatch(ctx, input.Action{Name: "test.noop"})
	d.Dispatch(ctx, input.Action{Name: "test.missing"})

	stats := d.Metrics().Stats()
	if stats.TotalDispatches != 4 {
		t.Errorf("TotalDispatches = %d, want 4", stats.TotalDispatches)
	}
	if stats.TotalErrors != 1 {
		t.Errorf("TotalErrors = %d, want 1", stats.TotalErrors)
	}

	ok, found := d.Metrics().Action("test.ok")
	if !found || ok.DispatchCount != 2 || ok.LastStatus != handler.StatusOK {
		t.Errorf("test.ok metrics = %+v", ok)
	}
	noop, _ := d.Metrics().Action("test.noop")
	if noop.NoOpCount != 1 {
		t.Errorf("test.noop NoOpCount = %d, want 1", noop.NoOpCount)
	}

	names := make([]string, 0, len(stats.Actions))
	for _, a := range stats.Actions {
		names = append(names, a.Name)
	}
	if strings.Join(names, ",") != "test.missing,test.noop,test.ok" {
		t.Errorf("actions = %v", names)
	}

	d.Metrics().Reset()
	if d.Metrics().Stats().TotalDispatches != 0 {
		t.Error("Reset should clear totals")
	}
}
