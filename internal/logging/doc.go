// Package logging assembles the structured slog loggers used across picbox.
//
// It owns console/JSON handler selection, level parsing, and file/stdout
// output routing, and exposes typed attribute helpers plus a no-op logger for
// tests and wiring code that cannot fail. Prefer these constructors over
// hand-rolled slog setup so every component emits log lines with the same
// shape.
package logging
