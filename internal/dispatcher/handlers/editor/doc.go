// Package editor provides handlers for text editing operations.
//
// # Whitespace Operations
//
// The HorizontalSpaceHandler type provides:
//   - editor.deleteHorizontalSpace: delete the run of spaces and tabs
//     around the cursor and leave the cursor where the run began
//
// # Insert Operations
//
// The InsertHandler type provides text insertion:
//   - editor.insertText: Insert arbitrary text at cursor
//   - editor.insertNewline: Split the line at cursor
//
// # Delete Operations
//
// The DeleteHandler type provides text deletion:
//   - editor.deleteChar: Delete character under cursor
//   - editor.deleteCharBack: Delete character before cursor, joining lines
//     at column 0
//
// All handlers act on the primary selection of the window's active editor.
//
// # Usage
//
// Register handlers with the dispatcher:
//
//	d.RegisterNamespace(editor.NewHorizontalSpaceHandler())
//	d.RegisterNamespace(editor.NewInsertHandler())
//	d.RegisterNamespace(editor.NewDeleteHandler())
package editor
