// Package api provides the Lua API modules exposed to user scripts.
//
// Each module implements the Module interface and is injected into a
// script's Lua state through a Registry:
//
//	reg := api.NewRegistry()
//	_ = reg.Register(api.NewHSpaceModule(d))
//	_ = reg.InjectAll(state.LuaState())
//
// The hspace module exposes the whitespace locator and the
// delete-horizontal-space command:
//
//	local first, last = hspace.range("foo   bar", 5)  -- 3, 6
//	hspace.is_significant("x")                       -- true
//	hspace.find_first(text, function(ch) return ch ~= "-" end, col)
//	hspace.find_last(text, function(ch) return ch ~= "-" end)
//	local status, err = hspace.delete()              -- "ok", "no-op" or "error"
//	hspace.message("done")
//	local line, col = hspace.cursor()
//	local text = hspace.line()
//
// Columns are zero-based character indices, matching the editor.
package api
