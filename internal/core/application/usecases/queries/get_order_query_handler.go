package queries

import (
	"context"

	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler resolves an order read model by internal identifier.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups by ID.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ObjectNotFoundError when the
// order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	resp, found, err := scanOrderRow(ctx, h.db, "id = ?", query.OrderID().String())
	if err != nil {
		return OrderResponse{}, err
	}
	if !found {
		return OrderResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	return resp, nil
}
