// Package buffer provides the thread-safe line store behind an editor
// document.
//
// Positions are expressed as a Point of 0-indexed line and column, where
// the column counts characters (grapheme clusters), not bytes. This matches
// what a user sees when moving the cursor and what the whitespace scanner in
// package scan indexes.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("foo   bar")
//	res, err := buf.Replace(buffer.NewRange(
//	    buffer.Point{Line: 0, Column: 3},
//	    buffer.Point{Line: 0, Column: 6},
//	), "")
//	// buf.Text() == "foobar", res.NewRange.End == (0:3)
//
// All Buffer methods are safe for concurrent use. Reads take a read lock and
// Replace takes the write lock.
package buffer
