package commands

import (
	"errors"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to register a new delivery order.
// Carries the order identity (internal id plus tracking code) and the
// free-form details shown on customer and partner screens.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	code, _ := kernel.NewTrackingCode("4821")
//	cmd, err := NewCreateOrderCommand(orderID, code, order.Details{CustomerName: "Asha"})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	code    kernel.TrackingCode
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that the order id and tracking code are properly constructed.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	code kernel.TrackingCode,
	details order.Details,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the internal identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Code returns the human-facing tracking code for the new order.
func (c CreateOrderCommand) Code() kernel.TrackingCode {
	return c.code
}

// Details returns the display fields for the new order.
func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.code = code
	return nil
}
