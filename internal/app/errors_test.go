package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dshills/modal/internal/engine"
)

func TestComponentErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ComponentError
		want string
	}{
		{"nil", nil, ""},
		{"component", &ComponentError{Component: "renderer"}, "renderer"},
		{"action", &ComponentError{Component: "config", Action: "close watcher"}, "config: close watcher"},
		{"cause", &ComponentError{Component: "renderer", Err: io.ErrClosedPipe}, "renderer: io: read/write on closed pipe"},
		{"action and cause", NewComponentError("renderer", "write frame", io.ErrShortWrite), "renderer: write frame: short write"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComponentErrorMatching(t *testing.T) {
	sinkErr := NewComponentError("renderer", "write frame", io.ErrShortWrite)
	wrapped := fmt.Errorf("run: %w", sinkErr)

	if !errors.Is(wrapped, io.ErrShortWrite) {
		t.Error("errors.Is did not reach the sink error")
	}
	if !errors.Is(wrapped, sinkErr) {
		t.Error("errors.Is did not match the component error itself")
	}
	if errors.Is(wrapped, NewComponentError("renderer", "write frame", io.ErrShortWrite)) {
		t.Error("distinct component errors compared equal")
	}

	var ce *ComponentError
	if !errors.As(wrapped, &ce) {
		t.Fatal("errors.As did not find the component error")
	}
	if ce.Component != "renderer" {
		t.Errorf("Component = %q, want renderer", ce.Component)
	}

	var nilErr *ComponentError
	if nilErr.Unwrap() != nil || nilErr.Is(io.EOF) {
		t.Error("nil ComponentError should match nothing")
	}
}

func TestInitError(t *testing.T) {
	err := &InitError{Component: "backend", Err: errors.New("not a terminal")}

	if err.Error() != "init backend: not a terminal" {
		t.Errorf("Error() = %q", err.Error())
	}
	if errors.Unwrap(err) != err.Err {
		t.Error("Unwrap did not return the cause")
	}
}

func TestRecoveredPanicError(t *testing.T) {
	tests := []struct {
		name string
		err  *RecoveredPanicError
		want string
	}{
		{"nil", nil, ""},
		{"value", NewRecoveredPanicError("index out of range", ""), "panic: index out of range"},
		{"stack", NewRecoveredPanicError(7, "main.go:12"), "panic: 7\nmain.go:12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecoveredPanicErrorReachesInvariantError(t *testing.T) {
	inv := &engine.InvariantError{Rule: "cursor row", Detail: "row 4 outside 2 rows"}
	err := NewRecoveredPanicError(inv, "stack")

	var got *engine.InvariantError
	if !errors.As(err, &got) || got != inv {
		t.Errorf("errors.As did not reach the invariant error: %v", err)
	}
	if !errors.Is(err, engine.ErrInvariant) {
		t.Error("errors.Is did not reach ErrInvariant")
	}
	if NewRecoveredPanicError("text", "").Unwrap() != nil {
		t.Error("a non-error panic value should not unwrap")
	}
}

func TestErrorList(t *testing.T) {
	var el ErrorList
	if el.AsError() != nil || el.Error() != "" || el.Errors() != nil {
		t.Fatal("empty list should report no error")
	}

	el.Add(nil)
	el.Add(NewComponentError("config", "close watcher", io.ErrClosedPipe))
	if el.Error() != "config: close watcher: io: read/write on closed pipe" {
		t.Errorf("single Error() = %q", el.Error())
	}

	el.Add(ErrInputClosed)
	if !el.HasErrors() || len(el.Errors()) != 2 {
		t.Fatalf("Errors() = %v, want 2 entries", el.Errors())
	}
	if !strings.HasPrefix(el.Error(), "2 errors: first: config:") {
		t.Errorf("Error() = %q", el.Error())
	}

	err := el.AsError()
	if !errors.Is(err, ErrInputClosed) || !errors.Is(err, io.ErrClosedPipe) {
		t.Error("errors.Is should search every collected error")
	}

	errs := el.Errors()
	errs[0] = nil
	if el.Errors()[0] == nil {
		t.Error("Errors() exposed the internal slice")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "loading %s", "x") != nil {
		t.Error("WrapError(nil) should be nil")
	}

	err := WrapError(ErrNoBackend, "command line")
	if err.Error() != "command line: no backend configured" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrNoBackend) {
		t.Error("wrapped error lost its sentinel")
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrAlreadyRunning, ErrNoBackend, ErrNoSink, ErrInputClosed}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v matches %v", a, b)
			}
		}
	}
}
