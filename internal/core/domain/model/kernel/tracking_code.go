package kernel

import (
	"fmt"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

const (
	// TrackingCodeMinLength is the minimum accepted code length.
	TrackingCodeMinLength = 4
	// TrackingCodeMaxLength is the maximum accepted code length.
	TrackingCodeMaxLength = 12
)

// ErrTrackingCodeIsNotConstructed is returned when validating a
// TrackingCode that was not created through NewTrackingCode.
var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking code must be created via NewTrackingCode constructor")

// TrackingCode is the short human-facing code printed on a delivery receipt.
// Customers use it to look up an order without authentication, so it is
// distinct from the order's internal UUID. Codes are case-sensitive
// alphanumeric strings between TrackingCodeMinLength and
// TrackingCodeMaxLength characters.
type TrackingCode struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewTrackingCode creates a TrackingCode from its string form.
// Returns an error for empty, too short, too long, or non-alphanumeric input.
func NewTrackingCode(value string) (TrackingCode, error) {
	if value == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("tracking code")
	}
	if len(value) < TrackingCodeMinLength || len(value) > TrackingCodeMaxLength {
		return TrackingCode{}, errs.NewValueIsOutOfRangeError(
			"tracking code length", len(value), TrackingCodeMinLength, TrackingCodeMaxLength)
	}
	for _, r := range value {
		if !isAlphanumeric(r) {
			return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
				"tracking code", fmt.Errorf("character %q is not alphanumeric", r))
		}
	}

	return TrackingCode{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the code was created through NewTrackingCode.
func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}

// String returns the code's string form.
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual reports whether two codes are identical.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

func isAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
