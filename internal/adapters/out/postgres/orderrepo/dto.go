// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
//
// The status history lives in its own table keyed by (order_id, seq), where
// seq is the position of the entry in the aggregate's history. Existing rows
// are never updated or deleted; persisting an order only appends the new
// tail of the history.
package orderrepo

import (
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The tracking code carries a unique index so customer lookups
// by code stay cheap and duplicate codes are rejected by the database.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code            string    `gorm:"uniqueIndex"`
	CustomerName    string
	CustomerPhone   string
	PickupAddress   string
	DeliveryAddress string
	Items           string
	Weight          string
	Instructions    string
	PartnerName     string
	PartnerPhone    string
	Eta             string
	Status          int `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusUpdateDTO represents one entry of an order's status history.
// The composite primary key (order_id, seq) mirrors the entry's position in
// the aggregate; inserting an existing position is a conflict, which keeps
// the persisted history append-only.
type StatusUpdateDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey"`
	Status    int
	Timestamp time.Time
	Icon      string
}

// TableName specifies the database table name for status history entries.
func (StatusUpdateDTO) TableName() string {
	return "status_updates"
}

// fromDomain converts an order domain aggregate to its database
// representation: the parent row plus one history row per status update.
func fromDomain(aggregate *order.Order) (OrderDTO, []StatusUpdateDTO) {
	details := aggregate.Details()
	id := aggregate.ID().Bytes()

	dto := OrderDTO{
		ID:              id,
		Code:            aggregate.Code().String(),
		CustomerName:    details.CustomerName,
		CustomerPhone:   details.CustomerPhone,
		PickupAddress:   details.PickupAddress,
		DeliveryAddress: details.DeliveryAddress,
		Items:           details.Items,
		Weight:          details.Weight,
		Instructions:    details.Instructions,
		PartnerName:     details.PartnerName,
		PartnerPhone:    details.PartnerPhone,
		Eta:             details.ETA,
		Status:          int(aggregate.Status()),
	}

	history := aggregate.StatusHistory()
	historyDTOs := make([]StatusUpdateDTO, 0, len(history))
	for seq, update := range history {
		historyDTOs = append(historyDTOs, StatusUpdateDTO{
			OrderID:   id,
			Seq:       seq,
			Status:    int(update.Status()),
			Timestamp: update.Timestamp(),
			Icon:      update.Icon(),
		})
	}

	return dto, historyDTOs
}

// toDomain converts database rows to an order domain aggregate.
// Reconstructs the complete aggregate including the status history using
// RestoreOrder, which re-checks the status/history invariant.
func toDomain(dto OrderDTO, historyDTOs []StatusUpdateDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := kernel.NewTrackingCode(dto.Code)
	if err != nil {
		return nil, err
	}

	history := make([]order.StatusUpdate, 0, len(historyDTOs))
	for _, entry := range historyDTOs {
		update, restoreErr := order.RestoreStatusUpdate(
			order.Status(entry.Status), entry.Timestamp, entry.Icon)
		if restoreErr != nil {
			return nil, restoreErr
		}
		history = append(history, update)
	}

	details := order.Details{
		CustomerName:    dto.CustomerName,
		CustomerPhone:   dto.CustomerPhone,
		PickupAddress:   dto.PickupAddress,
		DeliveryAddress: dto.DeliveryAddress,
		Items:           dto.Items,
		Weight:          dto.Weight,
		Instructions:    dto.Instructions,
		PartnerName:     dto.PartnerName,
		PartnerPhone:    dto.PartnerPhone,
		ETA:             dto.Eta,
	}

	return order.RestoreOrder(id, code, details, order.Status(dto.Status), history)
}
