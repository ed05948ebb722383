// Package queries contains read-only operations for the CQRS architecture.
// Query handlers bypass the domain aggregates and read projection rows
// straight from the database, returning plain response structs.
package queries

import (
	"context"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusUpdateResponse is one entry of an order's status timeline.
type StatusUpdateResponse struct {
	Status    string
	Timestamp time.Time
	Icon      string
}

// OrderResponse is the full read model of an order, including the status
// timeline in insertion order.
type OrderResponse struct {
	ID              kernel.UUID
	Code            string
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
	Status          string
	StatusHistory   []StatusUpdateResponse
}

// scanOrderRow reads a single order row selected by the given predicate and
// attaches its status history. Returns (response, false, nil) when no row
// matches.
func scanOrderRow(ctx context.Context, db *gorm.DB, predicate string, arg any) (OrderResponse, bool, error) {
	var resp OrderResponse

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			customer_name,
			customer_phone,
			pickup_address,
			delivery_address,
			items,
			weight,
			instructions,
			partner_name,
			partner_phone,
			eta,
			status
		FROM orders
		WHERE `+predicate, arg).Rows()
	if err != nil {
		return OrderResponse{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, false, err
		}
		return OrderResponse{}, false, nil
	}

	var id uuid.UUID
	var status int

	if err = rows.Scan(
		&id,
		&resp.Code,
		&resp.CustomerName,
		&resp.CustomerPhone,
		&resp.PickupAddress,
		&resp.DeliveryAddress,
		&resp.Items,
		&resp.Weight,
		&resp.Instructions,
		&resp.PartnerName,
		&resp.PartnerPhone,
		&resp.ETA,
		&status,
	); err != nil {
		return OrderResponse{}, false, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, false, err
	}
	resp.ID = orderID
	resp.Status = order.Status(status).String()

	history, err := scanStatusHistory(ctx, db, id)
	if err != nil {
		return OrderResponse{}, false, err
	}
	resp.StatusHistory = history

	return resp, true, nil
}

// scanStatusHistory reads the status timeline of one order in append order.
func scanStatusHistory(ctx context.Context, db *gorm.DB, orderID uuid.UUID) ([]StatusUpdateResponse, error) {
	history := make([]StatusUpdateResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			status,
			timestamp,
			icon
		FROM status_updates
		WHERE order_id = ?
		ORDER BY seq
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry StatusUpdateResponse
		var status int

		if err = rows.Scan(&status, &entry.Timestamp, &entry.Icon); err != nil {
			return nil, err
		}

		entry.Status = order.Status(status).String()
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
