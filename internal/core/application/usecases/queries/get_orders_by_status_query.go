package queries

import (
	"errors"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery lists orders for the partner dashboard, optionally
// narrowed to a single status.
type GetOrdersByStatusQuery struct {
	status    order.Status
	hasFilter bool

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery creates a listing query filtered to one status.
func NewGetOrdersByStatusQuery(status order.Status) (GetOrdersByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	return GetOrdersByStatusQuery{
		status:    status,
		hasFilter: true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewGetAllOrdersQuery creates a listing query with no status filter.
func NewGetAllOrdersQuery() (GetOrdersByStatusQuery, error) {
	return GetOrdersByStatusQuery{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

// Status returns the status filter. Only meaningful when HasFilter is true.
func (q GetOrdersByStatusQuery) Status() order.Status {
	return q.status
}

// HasFilter reports whether the listing is narrowed to a single status.
func (q GetOrdersByStatusQuery) HasFilter() bool {
	return q.hasFilter
}
