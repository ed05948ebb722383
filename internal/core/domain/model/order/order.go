package order

import (
	"errors"
	"fmt"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Details holds the free-form display fields of an order: who ordered it,
// where it travels, what it contains, and which partner carries it. These
// fields have no domain rules of their own; they exist for customer and
// partner screens.
type Details struct {
	CustomerName    string
	CustomerPhone   string
	PickupAddress   string
	DeliveryAddress string
	Items           string
	Weight          string
	Instructions    string
	PartnerName     string
	PartnerPhone    string
	ETA             string
}

// Order is the aggregate root for one delivery job.
//
// Order maintains these invariants:
//   - Identity is a valid UUID plus a valid human-facing tracking code
//   - The status history is append-only; entries are never reordered,
//     mutated, or pruned
//   - The current status equals the status of the most recently appended
//     history entry, or Pending while the history is empty
//   - Instances exist only via NewOrder or RestoreOrder
//
// Status and history always change together through ChangeStatus, so a
// caller can never observe one updated without the other.
type Order struct {
	// id is the stable internal identifier, assigned at creation
	id kernel.UUID

	// code is the short human-facing code used for unauthenticated lookup
	code kernel.TrackingCode

	// details holds the display fields shown to customers and partners
	details Details

	// status is the current state in the order lifecycle
	status Status

	// history is the append-only sequence of status transitions
	history []StatusUpdate

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with an empty history.
//
// Parameters:
//   - id: unique internal identifier (must be a valid UUID)
//   - code: human-facing tracking code (must be a valid TrackingCode)
//   - details: free-form display fields, stored as given
//
// Returns the order, or a validation error if id or code is invalid.
func NewOrder(id kernel.UUID, code kernel.TrackingCode, details Details) (*Order, error) {
	order := &Order{
		details:       details,
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCode(code),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. In addition to the
// constructor validations it checks the history invariant: when the history
// is non-empty, the stored status must equal the status of the last entry;
// when it is empty, the stored status must be Pending.
func RestoreOrder(
	id kernel.UUID,
	code kernel.TrackingCode,
	details Details,
	status Status,
	history []StatusUpdate,
) (*Order, error) {
	order, err := NewOrder(id, code, details)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	for _, update := range history {
		if err = update.Validate(); err != nil {
			return nil, err
		}
	}

	if len(history) == 0 {
		if status != Pending {
			return nil, errs.NewValueIsInvalidErrorWithCause("status",
				fmt.Errorf("status %s requires a non-empty history", status))
		}
	} else if last := history[len(history)-1].Status(); last != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("status %s does not match last history entry %s", status, last))
	}

	order.status = status
	order.history = append([]StatusUpdate(nil), history...)
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their internal identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's internal identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Code returns the order's human-facing tracking code.
func (o *Order) Code() kernel.TrackingCode {
	return o.code
}

// Details returns the order's display fields.
func (o *Order) Details() Details {
	return o.details
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StatusHistory returns the status history in insertion order.
// The returned slice is a copy; the history itself stays append-only.
func (o *Order) StatusHistory() []StatusUpdate {
	return append([]StatusUpdate(nil), o.history...)
}

// ChangeStatus applies a status transition and appends the matching
// history entry. The two mutations happen together: if the transition or
// the history entry is rejected, the order is left untouched.
//
// Parameters:
//   - next: the requested status from the enumeration
//   - at: the server-observed transition time
//   - strict: transition policy; when true, only the immediate forward
//     step is allowed (no regression, no skipping)
//
// Returns an error if next is outside the enumeration or the policy
// rejects the transition.
func (o *Order) ChangeStatus(next Status, at time.Time, strict bool) error {
	newStatus, err := o.status.TransitionTo(next, strict)
	if err != nil {
		return err
	}

	update, err := NewStatusUpdate(newStatus, at)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.history = append(o.history, update)
	return nil
}

// AssignPartner records the delivery partner's contact details.
func (o *Order) AssignPartner(name string, phone string) {
	o.details.PartnerName = name
	o.details.PartnerPhone = phone
}

// SetETA updates the estimated-time-of-arrival display string.
func (o *Order) SetETA(eta string) {
	o.details.ETA = eta
}

// setID validates and sets the order's internal identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCode validates and sets the order's tracking code.
// This is a private method used only during construction.
func (o *Order) setCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.code = code
	return nil
}
