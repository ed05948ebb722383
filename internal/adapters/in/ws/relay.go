package ws

import (
	"context"
	"log/slog"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
)

// Relay fans events out to room members. All publishes are non-blocking
// in-memory operations: frames are handed to each member's write pump and
// dropped for members whose buffer is full.
type Relay struct {
	registry *Registry
	logger   *slog.Logger
}

// NewRelay creates a relay over the given room registry.
func NewRelay(registry *Registry, logger *slog.Logger) *Relay {
	return &Relay{
		registry: registry,
		logger:   logger.With("component", "relay"),
	}
}

// PublishLocation broadcasts a location tick to every member of the order's
// room except the sender, so a partner never receives an echo of its own
// ticks. Publishing to an empty room is a no-op.
func (r *Relay) PublishLocation(roomID string, from *Session, point kernel.GeoPoint) {
	frame, err := newLocationUpdateFrame(roomID, point)
	if err != nil {
		r.logger.Debug("failed to encode location frame", "room", roomID, "error", err)
		return
	}

	for _, member := range r.registry.Members(roomID) {
		if member == from {
			continue
		}
		if !member.enqueue(frame) {
			r.logger.Debug("dropped location frame for slow member", "room", roomID)
		}
	}
}

// NotifyStatusChanged broadcasts the order's new status to every member of
// its room, the sender included; all recipients are observers here. It
// implements the notifier port consumed by the status-change use case and
// is called only after the new status is durable.
func (r *Relay) NotifyStatusChanged(_ context.Context, aggregate *order.Order) {
	if aggregate == nil {
		return
	}

	frame, err := newStatusUpdateFrame(aggregate)
	if err != nil {
		r.logger.Debug("failed to encode status frame", "error", err)
		return
	}

	roomID := aggregate.ID().String()
	for _, member := range r.registry.Members(roomID) {
		if !member.enqueue(frame) {
			r.logger.Debug("dropped status frame for slow member", "room", roomID)
		}
	}
}
