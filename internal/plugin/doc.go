// Package plugin runs user Lua scripts against the editor.
//
// A script is a single .lua file. Loading a script creates a sandboxed
// Lua state, injects the API modules (see package api) and executes the
// file. Scripts may define optional lifecycle functions:
//
//	function activate()   -- called by Host.Activate
//	  hspace.delete()
//	end
//
//	function deactivate() -- called by Host.Deactivate and Unload
//	end
//
// The Manager owns the hosts for every configured script and drives them
// through the lifecycle together:
//
//	m := plugin.NewManager(registry, plugin.WithLogger(logger))
//	if _, err := m.Load(ctx, "scripts/trim.lua"); err != nil {
//	    return err
//	}
//	if err := m.ActivateAll(ctx); err != nil {
//	    return err
//	}
//	defer m.Dispose()
package plugin
