package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderRepository serves a single seeded aggregate and reports every
// other lookup as not found.
type stubOrderRepository struct {
	aggregate *order.Order
}

func (r *stubOrderRepository) Add(context.Context, *order.Order) error    { return nil }
func (r *stubOrderRepository) Update(context.Context, *order.Order) error { return nil }

func (r *stubOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if r.aggregate != nil && r.aggregate.ID().IsEqual(id) {
		return r.aggregate, nil
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}

func (r *stubOrderRepository) GetByCode(_ context.Context, code kernel.TrackingCode) (*order.Order, error) {
	if r.aggregate != nil && r.aggregate.Code().IsEqual(code) {
		return r.aggregate, nil
	}
	return nil, errs.NewObjectNotFoundError("code", code.String())
}

func newTestServer(t *testing.T, repo ports.OrderRepository) (*Server, *Registry) {
	t.Helper()
	registry := NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	relay := NewRelay(registry, logger)
	return NewServer(registry, relay, repo, logger), registry
}

// seededOrder builds an order that has already advanced to PickedUp.
func seededOrder(t *testing.T) *order.Order {
	t.Helper()
	code, err := kernel.NewTrackingCode("4821")
	require.NoError(t, err)
	aggregate, err := order.NewOrder(kernel.NewUUID(), code, order.Details{ETA: "25 min"})
	require.NoError(t, err)
	require.NoError(t, aggregate.ChangeStatus(order.PickedUp, time.Now().UTC(), true))
	return aggregate
}

func joinFrame(orderID string) []byte {
	return []byte(fmt.Sprintf(`{"type":"join","orderId":%q}`, orderID))
}

func TestServer_Join_ReplaysLastPersistedStatus(t *testing.T) {
	aggregate := seededOrder(t)
	server, registry := newTestServer(t, &stubOrderRepository{aggregate: aggregate})
	session := newTestSession(registry)
	roomID := aggregate.ID().String()

	server.dispatch(context.Background(), session, joinFrame(roomID))

	require.Len(t, registry.Members(roomID), 1)

	frames := drainFrames(session)
	require.Len(t, frames, 1)

	var event statusUpdateEvent
	require.NoError(t, json.Unmarshal(frames[0], &event))
	assert.Equal(t, eventTypeStatusUpdate, event.Type)
	assert.Equal(t, roomID, event.OrderID)
	assert.Equal(t, "4821", event.Code)
	assert.Equal(t, "picked_up", event.Status)
	assert.Equal(t, "package", event.Icon)
	assert.Equal(t, "25 min", event.Eta)
}

func TestServer_Join_FreeFormRoomKey_JoinsWithoutReplay(t *testing.T) {
	server, registry := newTestServer(t, &stubOrderRepository{})
	session := newTestSession(registry)

	server.dispatch(context.Background(), session, joinFrame("order-77"))

	require.Len(t, registry.Members("order-77"), 1)
	assert.Empty(t, drainFrames(session))
}

func TestServer_Join_UnknownOrder_JoinsWithoutReplay(t *testing.T) {
	server, registry := newTestServer(t, &stubOrderRepository{})
	session := newTestSession(registry)
	roomID := kernel.NewUUID().String()

	server.dispatch(context.Background(), session, joinFrame(roomID))

	require.Len(t, registry.Members(roomID), 1)
	assert.Empty(t, drainFrames(session))
}

func TestServer_Join_MissingOrderID_Dropped(t *testing.T) {
	server, registry := newTestServer(t, &stubOrderRepository{})
	session := newTestSession(registry)

	server.dispatch(context.Background(), session, []byte(`{"type":"join"}`))

	assert.Equal(t, 0, registry.RoomCount())
	assert.Empty(t, drainFrames(session))
}

func TestServer_Location_FansOutToRoomMembersExceptSender(t *testing.T) {
	server, registry := newTestServer(t, &stubOrderRepository{})
	sender := newTestSession(registry)
	observer := newTestSession(registry)
	registry.Join("order-77", sender)
	registry.Join("order-77", observer)

	tick := []byte(`{"type":"location","orderId":"order-77",` +
		`"location":{"latitude":6.5244,"longitude":3.3792}}`)
	server.dispatch(context.Background(), sender, tick)

	frames := drainFrames(observer)
	require.Len(t, frames, 1)

	var event locationUpdateEvent
	require.NoError(t, json.Unmarshal(frames[0], &event))
	assert.Equal(t, eventTypeLocationUpdate, event.Type)
	assert.Equal(t, "order-77", event.OrderID)
	assert.InDelta(t, 6.5244, event.Location.Latitude, 1e-9)
	assert.InDelta(t, 3.3792, event.Location.Longitude, 1e-9)

	assert.Empty(t, drainFrames(sender))
}

func TestServer_MalformedFrames_AreDroppedSilently(t *testing.T) {
	tests := []struct {
		name  string
		frame string
	}{
		{"undecodable_json", `{"type":"location",`},
		{"unknown_message_type", `{"type":"teleport","orderId":"order-77"}`},
		{"location_without_order_id", `{"type":"location","location":{"latitude":1,"longitude":2}}`},
		{"location_without_payload", `{"type":"location","orderId":"order-77"}`},
		{"missing_latitude", `{"type":"location","orderId":"order-77","location":{"longitude":3.3792}}`},
		{"missing_longitude", `{"type":"location","orderId":"order-77","location":{"latitude":6.5244}}`},
		{"latitude_out_of_range", `{"type":"location","orderId":"order-77","location":{"latitude":95,"longitude":3.3792}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, registry := newTestServer(t, &stubOrderRepository{})
			sender := newTestSession(registry)
			observer := newTestSession(registry)
			registry.Join("order-77", sender)
			registry.Join("order-77", observer)

			server.dispatch(context.Background(), sender, []byte(tt.frame))

			assert.Empty(t, drainFrames(observer))
			assert.Empty(t, drainFrames(sender))
		})
	}
}
