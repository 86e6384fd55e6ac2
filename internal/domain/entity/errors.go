package entity

import "fmt"

// InvalidTransitionError is returned when a requested edge is not in the
// transition table. Always recoverable; the message names both statuses.
type InvalidTransitionError struct {
	From FlightStatus
	To   FlightStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition flight from %q to %q", e.From, e.To)
}

// NotFoundError is returned when a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// AuthorizationError is returned when the acting role lacks permission for
// the attempted mutation. Distinct from InvalidTransitionError so callers
// can message "you can't do this" vs "this isn't allowed right now".
type AuthorizationError struct {
	Role       Role
	Permission Permission
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %q lacks permission %q", e.Role, e.Permission)
}

// StatusConflictError is returned when the caller's expected current status
// no longer matches the stored status. The caller should re-read and retry.
type StatusConflictError struct {
	Expected FlightStatus
	Actual   FlightStatus
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("flight status changed: expected %q but found %q", e.Expected, e.Actual)
}

// PersistenceError wraps a failed store write with the operation that failed.
// Retryable by the caller, not by the core.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
