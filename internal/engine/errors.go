package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrDetachRefused is returned by Component.OnDetach when the component
	// must not be removed outside of a forced teardown. It is recoverable:
	// the component stays attached.
	ErrDetachRefused = errors.New("detach refused")

	// ErrNotFound reports a lookup of a gameobject id the scene does not
	// hold.
	ErrNotFound = errors.New("not found")

	// ErrNoScene is returned by operations that need a current scene.
	ErrNoScene = errors.New("no current scene")
)

// ComponentError is raised by a component lifecycle hook. It is fatal at the
// top level.
type ComponentError struct {
	Component Component
	Message   string
	Err       error // optional cause
}

// NewComponentError formats a ComponentError for c.
func NewComponentError(c Component, format string, args ...any) *ComponentError {
	return &ComponentError{Component: c, Message: fmt.Sprintf(format, args...)}
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("error with component %s: %s", Describe(e.Component), e.Message)
}

func (e *ComponentError) Unwrap() error { return e.Err }

// RefuseDetach returns the error OnDetach uses to veto an unforced detach.
func RefuseDetach(c Component, reason string) *ComponentError {
	return &ComponentError{Component: c, Message: reason, Err: ErrDetachRefused}
}
