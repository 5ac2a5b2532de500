package extension

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/hspace/internal/dispatcher"
	"github.com/dshills/hspace/internal/dispatcher/handlers/editor"
	"github.com/dshills/hspace/internal/engine/buffer"
	"github.com/dshills/hspace/internal/host"
	"github.com/dshills/hspace/internal/input"
	"github.com/dshills/hspace/internal/logging"
	"github.com/dshills/hspace/internal/plugin"
)

func newDispatcher(t *testing.T, text string, col int) (*dispatcher.Dispatcher, *host.Document) {
	t.Helper()
	doc := host.NewDocument(text, host.WithCursor(buffer.Point{Column: col}))
	t.Cleanup(func() { _ = doc.Close() })

	wb := host.NewWorkbench(nil)
	wb.SetActive(doc)
	d := dispatcher.NewWithDefaults()
	d.SetWindow(wb)
	return d, doc
}

func deleteSpace(d *dispatcher.Dispatcher) bool {
	res := d.Dispatch(context.Background(), input.NewAction(editor.ActionDeleteHorizontalSpace, input.SourceCommand))
	return res.IsOK()
}

func TestActivateRegistersCommand(t *testing.T) {
	d, doc := newDispatcher(t, "a   b", 2)
	ext := New()

	if d.CanDispatch(editor.ActionDeleteHorizontalSpace) {
		t.Fatal("command should not exist before activation")
	}
	if err := ext.Activate(NewContext(d, nil)); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if ext.State() != plugin.StateActive {
		t.Errorf("State() = %v, want active", ext.State())
	}
	if !deleteSpace(d) || doc.Text() != "ab" {
		t.Errorf("command did not run, text = %q", doc.Text())
	}
}

func TestActivateTwice(t *testing.T) {
	d, _ := newDispatcher(t, "", 0)
	ext := New()

	if err := ext.Activate(NewContext(d, nil)); err != nil {
		t.Fatal(err)
	}
	if err := ext.Activate(NewContext(d, nil)); !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("second Activate() error = %v, want ErrAlreadyActive", err)
	}
}

func TestActivateWithoutDispatcher(t *testing.T) {
	if err := New().Activate(&Context{}); !errors.Is(err, ErrNoDispatcher) {
		t.Errorf("Activate() error = %v, want ErrNoDispatcher", err)
	}
}

func TestDeactivate(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})

	d, _ := newDispatcher(t, "", 0)
	ext := New()

	if err := ext.Deactivate(); !errors.Is(err, ErrNotActive) {
		t.Errorf("Deactivate() before Activate error = %v, want ErrNotActive", err)
	}

	ctx := NewContext(d, logger)
	if err := ext.Activate(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ext.Deactivate(); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}

	if d.CanDispatch(editor.ActionDeleteHorizontalSpace) {
		t.Error("command should be unregistered after Deactivate")
	}
	if ctx.Subscriptions.Len() != 0 {
		t.Errorf("subscriptions left: %d", ctx.Subscriptions.Len())
	}
	if ext.State() != plugin.StateUnloaded {
		t.Errorf("State() = %v, want unloaded", ext.State())
	}
	if !strings.Contains(buf.String(), "deactivated extension") {
		t.Errorf("log output = %q", buf.String())
	}

	// Reactivation works after a clean deactivate.
	if err := ext.Activate(NewContext(d, nil)); err != nil {
		t.Errorf("re-Activate() error = %v", err)
	}
}

func TestSubscriptionsDisposeInReverse(t *testing.T) {
	var order []int
	var subs Subscriptions
	for i := 1; i <= 3; i++ {
		subs.Push(DisposableFunc(func() { order = append(order, i) }))
	}

	subs.Dispose()
	if len(order) != 3 || order[0] != 3 || order[2] != 1 {
		t.Errorf("dispose order = %v, want [3 2 1]", order)
	}
	subs.Dispose()
	if len(order) != 3 {
		t.Error("second Dispose should be a no-op")
	}
}

func writeScript(t *testing.T, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestActivateRunsScripts(t *testing.T) {
	d, doc := newDispatcher(t, "x    y", 3)
	ext := New()

	script := writeScript(t, `function activate() hspace.delete() end`)
	if err := ext.Activate(NewContext(d, nil).WithScripts([]string{script})); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if doc.Text() != "xy" {
		t.Errorf("script did not run the command, text = %q", doc.Text())
	}
	if ext.Plugins() == nil || len(ext.Plugins().List()) != 1 {
		t.Error("expected one loaded script")
	}

	if err := ext.Deactivate(); err != nil {
		t.Fatal(err)
	}
	if ext.Plugins() != nil {
		t.Error("script manager should be released on Deactivate")
	}
}

func TestActivateScriptFailure(t *testing.T) {
	d, _ := newDispatcher(t, "", 0)
	ext := New()

	script := writeScript(t, `function activate() error("script refused") end`)
	err := ext.Activate(NewContext(d, nil).WithScripts([]string{script}))
	if err == nil || !strings.Contains(err.Error(), "script refused") {
		t.Fatalf("Activate() error = %v", err)
	}
	if ext.State() != plugin.StateError {
		t.Errorf("State() = %v, want error", ext.State())
	}
	if d.CanDispatch(editor.ActionDeleteHorizontalSpace) {
		t.Error("failed activation should unregister the command")
	}

	if err := ext.Activate(NewContext(d, nil)); err != nil {
		t.Errorf("Activate() after failure error = %v", err)
	}
}
