// Package config loads, normalizes, and validates picbox configuration.
//
// Configuration is TOML with defaults applied before parsing, so a missing
// file yields a fully usable config. Paths are expanded to absolute form and
// the extension allow-list is canonicalized (lowercase, leading dot) during
// load; the rest of the system relies on those shapes.
package config
