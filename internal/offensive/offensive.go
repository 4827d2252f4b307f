// Package offensive holds the fatal-error primitives used for programmer
// errors: malformed input that correct callers never produce, required values
// that are missing, and code paths that must not be reached.
//
// A violation panics with a *Violation. Nothing inside the module recovers
// from it; program boundaries such as a CLI entry point may convert it back
// into an error with Recover.
package offensive

import (
	"errors"
	"fmt"
)

// Violation is the panic value raised by every helper in this package.
type Violation struct {
	Message string
}

func (v *Violation) Error() string { return v.Message }

// Panic raises a violation with a formatted message. It never returns.
func Panic(format string, args ...any) {
	panic(&Violation{Message: fmt.Sprintf(format, args...)})
}

// Assert raises a violation when cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		Panic(format, args...)
	}
}

// Check raises a violation when err is non-nil, prefixed with context.
func Check(err error, context string) {
	if err == nil {
		return
	}
	if context == "" {
		Panic("%v", err)
	}
	Panic("%s: %v", context, err)
}

// Must returns v or raises a violation when err is non-nil.
func Must[T any](v T, err error) T {
	Check(err, "")
	return v
}

// Unreachable marks a branch that correct code never takes.
func Unreachable(format string, args ...any) {
	Panic("unreachable: "+format, args...)
}

// Recover converts an in-flight violation into *errp. Other panic values are
// re-raised. Use it deferred at a program boundary:
//
//	defer offensive.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if v, ok := r.(*Violation); ok {
		*errp = v
		return
	}
	panic(r)
}

// IsViolation reports whether err is (or wraps) a violation.
func IsViolation(err error) bool {
	var v *Violation
	return errors.As(err, &v)
}
