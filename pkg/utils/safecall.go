// ABOUTME: Helpers for running functions and goroutines that must not crash the process
// ABOUTME: Recovers panics and converts them to errors or structured log entries

package utils

import (
	"fmt"
	"runtime/debug"

	"trends-shared/core/interfaces"
)

// ErrorHandler is invoked with the recovered failure when a guarded call
// does not complete normally.
type ErrorHandler func(err error)

// SafeCall runs fn, converting errors and panics into a single error return.
// If onError is non-nil it is invoked with the failure before returning.
func SafeCall(fn func() error, onError ErrorHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
			if onError != nil {
				onError(err)
			}
		}
	}()

	err = fn()
	if err != nil && onError != nil {
		onError(err)
	}
	return err
}

// SafeGo runs fn in a new goroutine. Panics and errors are logged instead
// of crashing the process.
func SafeGo(logger interfaces.Logger, name string, fn func() error) {
	go func() {
		err := SafeCall(fn, nil)
		if err == nil {
			return
		}
		if logger != nil {
			logger.Error("Background task failed", map[string]interface{}{
				"task":  name,
				"error": err.Error(),
			})
		}
	}()
}

func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w\n%s", err, debug.Stack())
	}
	return fmt.Errorf("panic: %v\n%s", r, debug.Stack())
}
