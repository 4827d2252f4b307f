package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent names the subsystem emitting a record.
	FieldComponent = "component"
	// FieldStatus marks the outcome of an operation; see Success.
	FieldStatus = "status"
	// StatusOK is the FieldStatus value rendered with the OK badge.
	StatusOK = "ok"
)

// Error returns a standardized error attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Success logs msg at info level tagged as a successful outcome. Console
// output shows it with a green OK badge instead of INFO.
func Success(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, append([]any{slog.String(FieldStatus, StatusOK)}, args...)...)
}

// NewComponentLogger tags every record from the returned logger with component.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// NewNop returns a logger that discards all records.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NoopHandler drops every record.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
