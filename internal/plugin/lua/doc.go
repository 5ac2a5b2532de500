// Package lua provides the Lua runtime for user scripts.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - Go-Lua type conversion bridge
//   - Execution timeouts
//
// # State
//
// The State type manages a Lua runtime with sandboxing:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.DoFile("trim.lua"); err != nil {
//	    return err
//	}
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. The
// functions that load code from disk or strings (dofile, loadfile, load,
// loadstring, require) are removed, and print writes to the state logger
// instead of stdout.
//
// # Bridge
//
// The Bridge provides bidirectional type conversion:
//
//	bridge := lua.NewBridge(state.LuaState())
//	luaVal := bridge.ToLuaValue(map[string]any{"count": 42})
//	goVal := bridge.ToGoValue(luaVal)
package lua
