package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Server owns the websocket endpoint: it upgrades connections, runs the
// per-connection read loop and dispatches inbound frames. Malformed frames
// are dropped with a debug log and never surface an error to the sender.
type Server struct {
	registry *Registry
	relay    *Relay
	orders   ports.OrderRepository
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer creates the websocket server. The order repository is used to
// replay the last persisted status to a session that joins a room.
func NewServer(
	registry *Registry,
	relay *Relay,
	orders ports.OrderRepository,
	logger *slog.Logger,
) *Server {
	return &Server{
		registry: registry,
		relay:    relay,
		orders:   orders,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the tracking page origin;
			// access control happens on the status-changing REST surface.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws"),
	}
}

// Handle upgrades the request and serves the connection until it closes.
// Registered on the echo router.
func (s *Server) Handle(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return nil
	}

	session := NewSession(conn, s.registry, s.logger)
	go session.writePump()

	s.readLoop(c.Request().Context(), conn, session)
	return nil
}

// readLoop consumes frames until the connection errors or closes, then
// tears the session down. Close is idempotent, so a session already closed
// by a failed write is fine.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, session *Session) {
	defer session.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Debug("session read ended", "error", err)
			return
		}
		s.dispatch(ctx, session, data)
	}
}

func (s *Server) dispatch(ctx context.Context, session *Session, data []byte) {
	var msg inboundEnvelope
	if err := json.Unmarshal(data, &msg); err != nil {
		s.logger.Debug("dropping undecodable frame", "error", err)
		return
	}

	switch msg.Type {
	case messageTypeJoin:
		s.handleJoin(ctx, session, msg.OrderID)
	case messageTypeLocation:
		s.handleLocation(session, msg)
	default:
		s.logger.Debug("dropping frame with unknown type", "type", msg.Type)
	}
}

// handleJoin subscribes the session to the order's room and replays the
// last persisted status, so a late joiner is not left waiting for the next
// transition to learn where the order stands.
func (s *Server) handleJoin(ctx context.Context, session *Session, orderID string) {
	if orderID == "" {
		s.logger.Debug("dropping join without order id")
		return
	}

	s.registry.Join(orderID, session)

	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		// Room keys are free-form; only well-formed ids have a replayable order.
		return
	}

	aggregate, err := s.orders.Get(ctx, id)
	if err != nil {
		s.logger.Debug("no status replay for joined room", "room", orderID, "error", err)
		return
	}

	frame, err := newStatusUpdateFrame(aggregate)
	if err != nil {
		s.logger.Debug("failed to encode replay frame", "room", orderID, "error", err)
		return
	}
	session.enqueue(frame)
}

// handleLocation validates the tick and hands it to the relay. Ticks with
// missing or non-finite coordinates are dropped.
func (s *Server) handleLocation(session *Session, msg inboundEnvelope) {
	if msg.OrderID == "" || msg.Location == nil ||
		msg.Location.Latitude == nil || msg.Location.Longitude == nil {
		s.logger.Debug("dropping malformed location tick", "room", msg.OrderID)
		return
	}

	point, err := kernel.NewGeoPoint(*msg.Location.Latitude, *msg.Location.Longitude)
	if err != nil {
		s.logger.Debug("dropping location tick with invalid coordinates",
			"room", msg.OrderID, "error", err)
		return
	}

	s.relay.PublishLocation(msg.OrderID, session, point)
}
