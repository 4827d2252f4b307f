package utils

import "github.com/adriangalilea/go-utils/internal/offensive"

// Violation is the panic value of every fatal helper.
type Violation = offensive.Violation

var (
	Assert      = offensive.Assert
	Check       = offensive.Check
	Panic       = offensive.Panic
	Unreachable = offensive.Unreachable
	Recover     = offensive.Recover
	IsViolation = offensive.IsViolation
)

// Must returns v or panics with a *Violation when err is non-nil.
func Must[T any](v T, err error) T { return offensive.Must(v, err) }
