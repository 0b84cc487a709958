// Package errs provides the typed errors shared by the domain, the persistence
// adapters and the HTTP layer.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) returned by Unwrap
//   - a struct carrying the details
//   - constructors with and without a cause
//
// The HTTP layer classifies failures with errors.Is against the sentinels:
// ErrObjectNotFound maps to 404, ErrValueIsInvalid, ErrValueIsRequired and
// ErrValueIsOutOfRange map to 400, ErrConflict maps to 409.
package errs
