package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lifecycle-specific failure classes. Every failure
// in the engine is scoped to a single entity mutation; none of these are
// fatal to the process.
var (
	// ErrInvalidTransition is returned when a requested target state is not
	// the defined successor of the current state. Always recoverable by
	// re-reading current state.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnauthorized is returned when the authority resolver denies a
	// transition. Never retried automatically.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDispatchFailed is returned when a mutation dispatch does not reach a
	// confirmed state (network/server error or timeout). Triggers rollback.
	ErrDispatchFailed = errors.New("dispatch failed")

	// ErrStaleRead is returned when a change notification carries an entity
	// version older than the local one. Silently discarded by subscribers.
	ErrStaleRead = errors.New("stale read")
)

// DenyReason classifies why the authority resolver refused a transition.
type DenyReason string

const (
	DenyNotOwner     DenyReason = "NotOwner"
	DenyWrongRole    DenyReason = "WrongRole"
	DenyEntityLocked DenyReason = "EntityLocked"
)

// InvalidTransitionError reports a state transition request that is not part
// of an entity's defined successor set.
type InvalidTransitionError struct {
	EntityKind string
	From       string
	To         string
	Cause      error
}

// NewInvalidTransitionError creates an InvalidTransitionError without a cause.
func NewInvalidTransitionError(entityKind, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{EntityKind: entityKind, From: from, To: to}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError
// wrapping an underlying cause.
func NewInvalidTransitionErrorWithCause(entityKind, from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{EntityKind: entityKind, From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s cannot move from %s to %s (cause: %s)",
			ErrInvalidTransition, e.EntityKind, e.From, e.To, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidTransition, e.EntityKind, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedError reports a transition denied by the authority resolver,
// carrying the reason code surfaced to the user.
type UnauthorizedError struct {
	Reason DenyReason
	Actor  string
	Cause  error
}

// NewUnauthorizedError creates an UnauthorizedError without a cause.
func NewUnauthorizedError(reason DenyReason, actor string) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason, Actor: actor}
}

// NewUnauthorizedErrorWithCause creates an UnauthorizedError wrapping an
// underlying cause.
func NewUnauthorizedErrorWithCause(reason DenyReason, actor string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason, Actor: actor, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (actor: %s) (cause: %s)", ErrUnauthorized, e.Reason, e.Actor, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s (actor: %s)", ErrUnauthorized, e.Reason, e.Actor))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// DispatchFailedError reports a mutation dispatch that resolved to failure,
// including timeouts. The local optimistic value has been rolled back by the
// time this error reaches the caller.
type DispatchFailedError struct {
	EntityID string
	Cause    error
}

// NewDispatchFailedError creates a DispatchFailedError without a cause.
func NewDispatchFailedError(entityID string) *DispatchFailedError {
	return &DispatchFailedError{EntityID: entityID}
}

// NewDispatchFailedErrorWithCause creates a DispatchFailedError wrapping an
// underlying cause.
func NewDispatchFailedErrorWithCause(entityID string, cause error) *DispatchFailedError {
	return &DispatchFailedError{EntityID: entityID, Cause: cause}
}

func (e *DispatchFailedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrDispatchFailed, e.EntityID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrDispatchFailed, e.EntityID))
}

func (e *DispatchFailedError) Unwrap() error {
	return ErrDispatchFailed
}

// StaleReadError reports a change notification older than the local entity
// version.
type StaleReadError struct {
	EntityID        string
	LocalVersion    int64
	IncomingVersion int64
}

// NewStaleReadError creates a StaleReadError.
func NewStaleReadError(entityID string, localVersion, incomingVersion int64) *StaleReadError {
	return &StaleReadError{EntityID: entityID, LocalVersion: localVersion, IncomingVersion: incomingVersion}
}

func (e *StaleReadError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s local version is %d, incoming version is %d",
		ErrStaleRead, e.EntityID, e.LocalVersion, e.IncomingVersion))
}

func (e *StaleReadError) Unwrap() error {
	return ErrStaleRead
}
