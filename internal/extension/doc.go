// Package extension hosts the delete-horizontal-space command as an
// activatable extension.
//
// Activation registers the command handler with the dispatcher, loads and
// activates the configured Lua scripts, and records a Disposable for each
// so Deactivate can undo them in reverse order:
//
//	ext := extension.New()
//	ctx := extension.NewContext(d, logger).WithScripts(cfg.Plugins.Scripts)
//	if err := ext.Activate(ctx); err != nil {
//	    return err
//	}
//	defer ext.Deactivate()
package extension
