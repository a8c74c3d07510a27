// Package errs provides standardized error types for the freight application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes generic validation errors:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - VersionIsInvalidError: For when an entity version marker is not usable
//
// and the lifecycle-engine failure taxonomy:
//   - InvalidTransitionError: The requested target state is not a defined successor
//   - UnauthorizedError: The authority resolver denied the transition (NotOwner, WrongRole, EntityLocked)
//   - DispatchFailedError: A mutation dispatch failed or timed out, after rollback
//   - StaleReadError: A change notification arrived for an older entity version
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
