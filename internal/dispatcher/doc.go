// Package dispatcher routes actions to handlers and coordinates execution.
//
// Handlers are registered either for an exact action name or for a
// namespace (the prefix before the first dot). Dispatch resolves the
// handler, builds an execution context around the host window, runs the
// handler with panic recovery and records statistics:
//
//	d := dispatcher.NewWithDefaults()
//	d.SetWindow(workbench)
//	d.RegisterNamespace(editor.NewHorizontalSpaceHandler())
//	res := d.Dispatch(ctx, input.NewAction(editor.ActionDeleteHorizontalSpace, input.SourceKeyboard))
package dispatcher
