package order

import (
	"fmt"

	"tracker/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
//
// The canonical workflow is:
//
//	Pending ──> PickedUp ──> OnTheWay ──> Delivered
//
// Delivered is terminal. Whether the workflow is enforced depends on the
// transition policy in effect (see TransitionTo): the strict policy allows
// only the next step forward, the permissive policy accepts any valid
// status, including regressions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every new order: accepted but not
	// yet collected by the delivery partner.
	Pending

	// PickedUp indicates the partner has collected the package.
	PickedUp

	// OnTheWay indicates the partner is en route to the delivery address.
	OnTheWay

	// Delivered indicates the package reached the customer.
	// This is a terminal state with no further transitions.
	Delivered
)

// getStatusStrings returns the wire/persistence names for every Status,
// including Unknown for display purposes.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		PickedUp:  "picked_up",
		OnTheWay:  "on_the_way",
		Delivered: "delivered",
	}
}

// getValidStatusStrings returns only the statuses accepted from external
// input. Unknown is excluded.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		PickedUp:  "picked_up",
		OnTheWay:  "on_the_way",
		Delivered: "delivered",
	}
}

// getStatusIcons returns the display icon hint derived from each status.
// The hint travels with every history entry so clients can render the
// timeline without their own mapping.
func getStatusIcons() map[Status]string {
	//nolint:exhaustive // Unknown never reaches a history entry
	return map[Status]string{
		Pending:   "clock",
		PickedUp:  "package",
		OnTheWay:  "truck",
		Delivered: "check",
	}
}

// StatusFromString parses a status from its wire form ("pending",
// "picked_up", "on_the_way", "delivered"). Returns an error for any value
// outside the enumeration.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value belongs to the enumeration.
// Unknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. It implements fmt.Stringer
// and is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Icon returns the display icon hint for the status, or an empty string
// for invalid values.
func (s Status) Icon() string {
	return getStatusIcons()[s]
}

// IsTerminal reports whether no further transitions are allowed from this
// status under the strict policy.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// TransitionTo validates a transition from the current status to next and
// returns the resulting status.
//
// Under the strict policy, next must be the immediate successor of the
// current status: no regression, no skipping, and nothing beyond Delivered.
// Under the permissive policy, any status from the enumeration is accepted
// regardless of the current state.
//
// Returns:
//   - (next, nil) when the transition is allowed
//   - (Unknown, error) when next is outside the enumeration or the strict
//     policy rejects the move
func (s Status) TransitionTo(next Status, strict bool) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !strict {
		return next, nil
	}

	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status transition",
			fmt.Errorf("%s is terminal and cannot transition to %s", s, next),
		)
	}

	if next != s+1 {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status transition",
			fmt.Errorf("cannot transition from %s to %s", s, next),
		)
	}

	return next, nil
}
