// Package errs provides standardized error types for the order workflow service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes generic validation errors:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// and the workflow engine taxonomy:
//   - InvalidTransitionError: target status is not reachable from the current step
//   - ApprovalRequiredError: target step is gated and the gate is not satisfied
//   - NotPendingError: an approval was resolved twice
//   - ConflictError: a write would break a store invariant (e.g. deleting the default workflow)
//   - ActionExecutionError: a single step or rule action failed; collected, never fatal
//   - StoreUnavailableError: persistence failed; the whole operation aborts
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on wrapped chains
package errs
