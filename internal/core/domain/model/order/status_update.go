package order

import (
	"time"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/guard"
)

// ErrStatusUpdateIsNotConstructed is returned when validating a
// StatusUpdate that was not created through a constructor.
var ErrStatusUpdateIsNotConstructed = errs.NewValueIsRequiredError(
	"StatusUpdate must be created via NewStatusUpdate or RestoreStatusUpdate")

// StatusUpdate is an immutable history entry recorded on every status
// transition. Once appended to an order's history it is never mutated or
// removed; insertion order is significant.
type StatusUpdate struct {
	status    Status
	timestamp time.Time
	icon      string

	guard guard.ConstructorGuard
}

// NewStatusUpdate creates a history entry for a transition to status at
// the given server-observed time. The icon hint is derived from the status.
func NewStatusUpdate(status Status, at time.Time) (StatusUpdate, error) {
	if err := status.Validate(); err != nil {
		return StatusUpdate{}, err
	}
	if at.IsZero() {
		return StatusUpdate{}, errs.NewValueIsRequiredError("timestamp")
	}

	return StatusUpdate{
		status:    status,
		timestamp: at,
		icon:      status.Icon(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreStatusUpdate reconstructs a history entry from persistence,
// keeping the icon hint exactly as stored.
func RestoreStatusUpdate(status Status, at time.Time, icon string) (StatusUpdate, error) {
	if err := status.Validate(); err != nil {
		return StatusUpdate{}, err
	}
	if at.IsZero() {
		return StatusUpdate{}, errs.NewValueIsRequiredError("timestamp")
	}

	return StatusUpdate{
		status:    status,
		timestamp: at,
		icon:      icon,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the entry was created through a constructor.
func (u StatusUpdate) Validate() error {
	return u.guard.Validate(ErrStatusUpdateIsNotConstructed)
}

// Status returns the status recorded by this entry.
func (u StatusUpdate) Status() Status {
	return u.status
}

// Timestamp returns the server-observed time of the transition.
func (u StatusUpdate) Timestamp() time.Time {
	return u.timestamp
}

// Icon returns the display icon hint recorded with the entry.
func (u StatusUpdate) Icon() string {
	return u.icon
}
