// Package assert provides process-terminating invariant checks. Every
// check in the core is a structural invariant, not input validation — a
// failure means a programming bug, not a recoverable condition, so these
// panic rather than return an error.
package assert

import "fmt"

// That panics with msg if cond is false.
func That(cond bool, msg string) {
	if !cond {
		panic("assertion failed: " + msg)
	}
}

// Thatf panics with a formatted message if cond is false.
func Thatf(cond bool, format string, args ...any) {
	if !cond {
		panic("assertion failed: " + fmt.Sprintf(format, args...))
	}
}
