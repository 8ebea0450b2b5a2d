package engine

import (
	"errors"
	"fmt"
)

// ErrInvariant indicates the engine reached a state its own bound
// enforcement should have made impossible.
var ErrInvariant = errors.New("engine invariant violated")

// InvariantError describes a violated engine invariant. Like buffer
// precondition failures it is raised with panic.
type InvariantError struct {
	Rule   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvariant, e.Rule, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}
