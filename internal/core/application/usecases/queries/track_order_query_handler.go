package queries

import (
	"context"

	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackOrderQueryHandler resolves an order read model by tracking code.
// This backs the public tracking screen, so it requires no authentication
// and returns the full status timeline.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for tracking code lookups.
// Requires a GORM database connection for query execution.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ObjectNotFoundError when no
// order carries the requested code.
func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	resp, found, err := scanOrderRow(ctx, h.db, "code = ?", query.Code().String())
	if err != nil {
		return OrderResponse{}, err
	}
	if !found {
		return OrderResponse{}, errs.NewObjectNotFoundError("code", query.Code().String())
	}

	return resp, nil
}
