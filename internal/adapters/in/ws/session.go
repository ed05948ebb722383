package ws

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// sendBufferSize bounds the per-session outbound queue. A member that falls
// this far behind starts losing frames rather than blocking the relay.
const sendBufferSize = 32

// wireConn is the subset of *websocket.Conn the session writes to.
// Narrowed to an interface so tests can observe written frames.
type wireConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Session is one live client connection. It exists from connect to
// disconnect, owns its room memberships through the registry, and must be
// removed from every room when the connection ends.
//
// There are no reconnection semantics: a new connection is always a new
// session with no memberships, and the client re-issues join after
// reconnecting.
type Session struct {
	conn     wireConn
	registry *Registry
	logger   *slog.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession wraps a connection in a session handle with an empty
// room-membership set. The caller starts the write pump.
func NewSession(conn wireConn, registry *Registry, logger *slog.Logger) *Session {
	return &Session{
		conn:     conn,
		registry: registry,
		logger:   logger,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
	}
}

// enqueue hands a frame to the write pump without blocking. Returns false
// when the session's buffer is full and the frame was dropped.
func (s *Session) enqueue(frame []byte) bool {
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

// writePump drains the send queue onto the connection. Runs in its own
// goroutine, one per session, so the relay never performs connection I/O.
// A write failure terminates the session.
func (s *Session) writePump() {
	for {
		select {
		case frame := <-s.send:
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.logger.Debug("session write failed", "error", err)
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// Close tears the session down: leaves every room, stops the write pump and
// closes the connection. Idempotent against duplicate disconnect signals
// from the transport.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.registry.LeaveAll(s)
		close(s.done)
		_ = s.conn.Close()
	})
}
