package lua

import (
	"reflect"
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func TestBridgeRoundTrip(t *testing.T) {
	state := newTestState(t)
	b := NewBridge(state.LuaState())

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bool", true, true},
		{"int", 7, int64(7)},
		{"float", 1.5, 1.5},
		{"string", "x", "x"},
		{"strings", []string{"a", "b"}, []any{"a", "b"}},
		{"map", map[string]any{"k": "v", "n": 2}, map[string]any{"k": "v", "n": int64(2)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := b.ToGoValue(b.ToLuaValue(tc.in))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("round trip = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestBridgeFromLua(t *testing.T) {
	state := newTestState(t)
	b := NewBridge(state.LuaState())

	if err := state.DoString(`t = {1, 2, {x = "y"}}; f = function() end`); err != nil {
		t.Fatal(err)
	}

	want := []any{int64(1), int64(2), map[string]any{"x": "y"}}
	if got := b.ToGoValue(state.GetGlobal("t")); !reflect.DeepEqual(got, want) {
		t.Errorf("ToGoValue(t) = %#v", got)
	}
	if got := b.ToGoValue(state.GetGlobal("f")); got != nil {
		t.Errorf("ToGoValue(function) = %v, want nil", got)
	}
	if got := b.ToLuaValue(glua.LString("raw")); got != glua.LString("raw") {
		t.Errorf("ToLuaValue(LValue) = %v", got)
	}
}

func TestBridgeCycle(t *testing.T) {
	state := newTestState(t)
	b := NewBridge(state.LuaState())

	if err := state.DoString(`c = {}; c.self = c`); err != nil {
		t.Fatal(err)
	}
	got, ok := b.ToGoValue(state.GetGlobal("c")).(map[string]any)
	if !ok || got["self"] != nil {
		t.Errorf("cyclic table = %#v", got)
	}
}
