// Package host defines the editor surface commands run against and an
// in-memory implementation of it.
//
// Commands see the editor through two interfaces:
//
//   - Editor: one text document with a selection, line access and
//     asynchronous edit application
//   - Window: the active editor and user-facing information messages
//
// Document and Workbench implement them for the CLI, the terminal UI and
// tests. A Document applies edits on its own edit loop goroutine; Edit
// blocks until the loop reports the outcome or the context ends.
package host
