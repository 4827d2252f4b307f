// Package logging assembles the slog loggers used across the module.
//
// The console handler prints compact, optionally colorized lines (level
// badges are styled with lipgloss and only colored when writing to a
// terminal); the JSON handler emits one object per record for machines.
// Components accept a *slog.Logger and default to NewNop so wiring code and
// tests never need a real sink.
package logging
