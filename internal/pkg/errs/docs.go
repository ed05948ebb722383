// Package errs provides the standardized error types used across the tracker
// application. Every error follows the same pattern: a sentinel variable for
// classification with errors.Is, a struct carrying the failure details, a
// constructor with and without a cause, and Error/Unwrap methods.
//
// The types map onto the failure taxonomy of the service:
//   - ObjectNotFoundError: an order id or tracking code did not resolve
//   - ValueIsInvalidError: a value (e.g. a status string) is outside its enumeration
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsOutOfRangeError: a numeric value (e.g. a coordinate) is out of bounds
//
// Persistence failures are not wrapped here; they propagate as the driver's
// errors so callers can distinguish domain rejections from infrastructure
// faults.
package errs
