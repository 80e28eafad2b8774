package model

import "fmt"

// The controller returns these typed errors so the web layer can map them
// to status codes without string matching. Entity not-found conditions are
// sentinel errors in the db package.

// ValidationError is a malformed or missing input, rejected before any
// state changes.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError is an actor trying to mutate a resource it does not own.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string {
	return e.Msg
}

// ConflictError is an invalid state transition, e.g. submitting a
// prediction twice. Expired marks the sub-case where the game has already
// started so the client should refresh its schedule view.
type ConflictError struct {
	Msg     string
	Expired bool
}

func (e *ConflictError) Error() string {
	return e.Msg
}

// UpstreamError wraps a failed call to the schedule provider. The
// reconciliation driver logs it and skips that one game.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error in %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
