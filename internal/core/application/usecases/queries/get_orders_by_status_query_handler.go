package queries

import (
	"context"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderSummaryResponse is one row of the partner order listing. The status
// timeline is omitted; fetch a single order for the full history.
type OrderSummaryResponse struct {
	ID              kernel.UUID
	Code            string
	CustomerName    string
	DeliveryAddress string
	PartnerName     string
	ETA             string
	Status          string
}

// GetOrdersByStatusQueryHandler lists order summaries for the partner
// dashboard, newest first.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the listing. An empty result is a valid outcome and
// returns an empty slice, not an error.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context, query GetOrdersByStatusQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			code,
			customer_name,
			delivery_address,
			partner_name,
			eta,
			status
		FROM orders
	`
	args := make([]any, 0, 1)
	if query.HasFilter() {
		sql += " WHERE status = ?"
		args = append(args, int(query.Status()))
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		var summary OrderSummaryResponse
		var id uuid.UUID
		var status int

		if err = rows.Scan(
			&id,
			&summary.Code,
			&summary.CustomerName,
			&summary.DeliveryAddress,
			&summary.PartnerName,
			&summary.ETA,
			&status,
		); err != nil {
			return nil, err
		}

		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		summary.ID = orderID
		summary.Status = order.Status(status).String()

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
