// Package cursor provides the selection type used by editor documents.
//
// A Selection has an Anchor, where it started, and a Head, the active end
// where typing occurs. When Anchor == Head the selection is a plain cursor.
// Selections are immutable values; every operation returns a new one.
package cursor
