// Package config loads hspace startup settings.
//
// Settings come from a single TOML or YAML file. A missing file is not an
// error: Load returns Default. Watch reloads the file when it changes on
// disk so a running edit session can pick up new key bindings and log
// levels without a restart.
//
// The delete-horizontal-space command itself has no settings. Only the
// hosts that run it (the CLI and the terminal UI) are configured here.
package config
