// Package ws is the live-tracking transport adapter: it upgrades HTTP
// connections to websockets, tracks room membership per order, and fans out
// location ticks and status changes to room members.
//
// Delivery is at-most-once and best-effort. There is no acknowledgment, no
// retry, and no buffering for members who join after an event was sent; a
// late joiner only receives a replay of the last persisted status. Location
// is a live cursor, not a log.
package ws

import (
	"encoding/json"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
)

// Inbound message types.
const (
	messageTypeJoin     = "join"
	messageTypeLocation = "location"
)

// Outbound event types.
const (
	eventTypeLocationUpdate = "locationUpdate"
	eventTypeStatusUpdate   = "statusUpdate"
)

// inboundEnvelope is the shape of every client frame. Fields beyond Type are
// populated depending on the message type.
type inboundEnvelope struct {
	Type     string           `json:"type"`
	OrderID  string           `json:"orderId"`
	Location *locationPayload `json:"location"`
}

// locationPayload uses pointer fields so a missing coordinate is
// distinguishable from zero. Frames with either field absent are dropped as
// malformed.
type locationPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type locationUpdateEvent struct {
	Type     string      `json:"type"`
	OrderID  string      `json:"orderId"`
	Location coordinates `json:"location"`
}

type statusUpdateEvent struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
	Code    string `json:"code"`
	Status  string `json:"status"`
	Icon    string `json:"icon"`
	Eta     string `json:"eta,omitempty"`
}

// newLocationUpdateFrame encodes a location tick for room fan-out.
func newLocationUpdateFrame(orderID string, point kernel.GeoPoint) ([]byte, error) {
	return json.Marshal(locationUpdateEvent{
		Type:    eventTypeLocationUpdate,
		OrderID: orderID,
		Location: coordinates{
			Latitude:  point.Latitude(),
			Longitude: point.Longitude(),
		},
	})
}

// newStatusUpdateFrame encodes the current status of an order for room
// fan-out and for join replay.
func newStatusUpdateFrame(aggregate *order.Order) ([]byte, error) {
	return json.Marshal(statusUpdateEvent{
		Type:    eventTypeStatusUpdate,
		OrderID: aggregate.ID().String(),
		Code:    aggregate.Code().String(),
		Status:  aggregate.Status().String(),
		Icon:    aggregate.Status().Icon(),
		Eta:     aggregate.Details().ETA,
	})
}
