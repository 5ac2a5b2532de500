// Package cursor provides handlers for cursor movement.
//
// Positions are line and character columns on the active editor's primary
// selection. Movements collapse the selection and honour the action's
// repeat count.
//
// # Basic Movements
//
// The Handler type provides:
//   - cursor.moveLeft / cursor.moveRight: one character, wrapping across lines
//   - cursor.moveUp / cursor.moveDown: one line, clamping the column
//   - cursor.moveLineStart / cursor.moveLineEnd
//   - cursor.moveFirstLine / cursor.moveLastLine
//
// # Word Motions
//
// The MotionHandler type moves between whitespace-delimited words using
// the same character classes as delete-horizontal-space:
//   - cursor.wordForward: start of the next word
//   - cursor.wordBackward: start of the current or previous word
//   - cursor.firstNonBlank: first non-whitespace character of the line
//
// # Usage
//
//	d.RegisterNamespace(cursor.NewHandler())
//	d.RegisterNamespace(cursor.NewMotionHandler())
//
//	d.Dispatch(ctx, input.NewAction(cursor.ActionMoveDown, input.SourceKeyboard).WithCount(5))
package cursor
