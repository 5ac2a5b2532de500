// Package input defines the actions that flow from keys, commands and
// scripts into the dispatcher.
package input
