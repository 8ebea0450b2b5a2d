package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called without an input backend.
	ErrNoBackend = errors.New("no backend configured")

	// ErrNoSink indicates Run was called without a frame sink.
	ErrNoSink = errors.New("no frame sink configured")

	// ErrInputClosed indicates the input source stopped delivering events.
	ErrInputClosed = errors.New("input source closed")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ComponentError represents an error from a specific component.
type ComponentError struct {
	Component string // Component name (e.g., "renderer", "input", "config")
	Action    string // Action being performed
	Err       error  // Underlying error
}

// NewComponentError creates a new ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{
		Component: component,
		Action:    action,
		Err:       err,
	}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}

	if e.Action != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Component, e.Action)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Component, e.Err)
	}

	return e.Component
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for ComponentError.
// Matches both the wrapper itself and the wrapped error.
func (e *ComponentError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*ComponentError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}

// RecoveredPanicError wraps a panic value as an error.
// Error includes the stack, so it belongs in the log file rather than on
// the terminal.
type RecoveredPanicError struct {
	Value any
	Stack string
}

// NewRecoveredPanicError creates a new RecoveredPanicError.
func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{
		Value: value,
		Stack: stack,
	}
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error, so that
// errors.As can reach typed panics such as engine invariant failures.
func (e *RecoveredPanicError) Unwrap() error {
	if e == nil {
		return nil
	}
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorList collects multiple errors.
// NOTE: ErrorList is NOT safe for concurrent use.
type ErrorList struct {
	errors []error
}

// NewErrorList creates a new ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{
		errors: make([]error, 0),
	}
}

// Add adds an error to the list. Nil errors are ignored.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.errors = append(e.errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e *ErrorList) HasErrors() bool {
	return len(e.errors) > 0
}

// Errors returns a copy of the error slice.
func (e *ErrorList) Errors() []error {
	if e == nil || len(e.errors) == 0 {
		return nil
	}
	out := make([]error, len(e.errors))
	copy(out, e.errors)
	return out
}

// Error returns a combined error message.
func (e *ErrorList) Error() string {
	if e == nil || len(e.errors) == 0 {
		return ""
	}

	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}

	return fmt.Sprintf("%d errors: first: %v", len(e.errors), e.errors[0])
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.Errors()
}

// AsError returns nil if there are no errors, otherwise returns the ErrorList.
func (e *ErrorList) AsError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// WrapError wraps an error with additional context if it's not nil.
// The format string uses fmt.Sprintf verbs; wrapping is handled internally.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}
