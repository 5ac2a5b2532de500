// Package tui is a small terminal front end for a single in-memory document.
//
// A Session reads tcell key events, turns them into dispatcher actions and
// redraws the document with a View. Cursor motion is applied to the editor
// selection directly; every text change goes through the dispatcher so the
// same handlers serve the terminal, the CLI and Lua scripts.
//
// Key handling:
//
//	arrows, Home, End     move the cursor
//	printable runes, Tab  editor.insertText
//	Enter                 editor.insertNewline
//	Backspace / Delete    editor.deleteCharBack / editor.deleteChar
//	configured binding    editor.deleteHorizontalSpace (default alt+\)
//	ctrl+q, Esc           quit
package tui
