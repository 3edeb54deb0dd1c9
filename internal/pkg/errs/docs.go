// Package errs provides the standardized error types used across the food
// delivery service.
//
// Every error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrValueIsRequired) used with errors.Is
//   - a struct type carrying the details of the failure
//   - constructors with and without a cause
//   - Unwrap returning the sentinel so callers can classify failures
//
// The HTTP adapter relies on these sentinels to choose response codes:
// ErrObjectNotFound maps to 404, ErrVersionIsInvalid to 409, and the value
// errors to 400.
package errs
