package ports

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Lookups resolve either the internal identifier or the human-facing
// tracking code; not-found conditions surface as errs.ObjectNotFoundError.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// any newly appended status history entries.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its internal identifier,
	// with the complete status history in insertion order.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCode retrieves an order aggregate by its tracking code.
	// Used for unauthenticated customer lookup.
	GetByCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error)
}
