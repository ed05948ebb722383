package ws

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records frames instead of writing to a network connection.
type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func newTestSession(registry *Registry) *Session {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSession(&fakeConn{}, registry, logger)
}

// drainFrames empties the session's outbound queue without blocking.
func drainFrames(s *Session) [][]byte {
	var frames [][]byte
	for {
		select {
		case frame := <-s.send:
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func TestRegistry_JoinIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	session := newTestSession(registry)

	registry.Join("order-77", session)
	registry.Join("order-77", session)
	registry.Join("order-77", session)

	require.Len(t, registry.Members("order-77"), 1)
	assert.Equal(t, 1, registry.RoomCount())
	assert.Equal(t, 1, registry.SessionCount())
}

func TestRegistry_LeaveRemovesMembership(t *testing.T) {
	registry := NewRegistry()
	stayer := newTestSession(registry)
	leaver := newTestSession(registry)

	registry.Join("order-77", stayer)
	registry.Join("order-77", leaver)
	registry.Leave("order-77", leaver)

	members := registry.Members("order-77")
	require.Len(t, members, 1)
	assert.Same(t, stayer, members[0])
}

func TestRegistry_LeaveNonMemberIsNoOp(t *testing.T) {
	registry := NewRegistry()
	member := newTestSession(registry)
	outsider := newTestSession(registry)

	registry.Join("order-77", member)
	registry.Leave("order-77", outsider)
	registry.Leave("unknown-room", outsider)

	require.Len(t, registry.Members("order-77"), 1)
}

func TestRegistry_EmptyRoomIsDeleted(t *testing.T) {
	registry := NewRegistry()
	session := newTestSession(registry)

	registry.Join("order-77", session)
	require.Equal(t, 1, registry.RoomCount())

	registry.Leave("order-77", session)
	assert.Equal(t, 0, registry.RoomCount())
	assert.Equal(t, 0, registry.SessionCount())
	assert.Empty(t, registry.Members("order-77"))
}

func TestRegistry_LeaveAllEmptiesEveryRoom(t *testing.T) {
	registry := NewRegistry()
	session := newTestSession(registry)
	other := newTestSession(registry)

	// Duplicate joins and multiple distinct rooms.
	registry.Join("order-1", session)
	registry.Join("order-1", session)
	registry.Join("order-2", session)
	registry.Join("order-3", session)
	registry.Join("order-2", other)

	registry.LeaveAll(session)

	assert.Empty(t, registry.Members("order-1"))
	assert.Empty(t, registry.Members("order-3"))
	require.Len(t, registry.Members("order-2"), 1)
	assert.Same(t, other, registry.Members("order-2")[0])
	assert.Equal(t, 1, registry.SessionCount())

	// A second LeaveAll for the same session changes nothing.
	registry.LeaveAll(session)
	assert.Equal(t, 1, registry.SessionCount())
}

func TestRegistry_MembersReturnsSnapshot(t *testing.T) {
	registry := NewRegistry()
	session := newTestSession(registry)
	registry.Join("order-77", session)

	snapshot := registry.Members("order-77")
	registry.Leave("order-77", session)

	// The earlier snapshot is unaffected by the mutation.
	require.Len(t, snapshot, 1)
	assert.Empty(t, registry.Members("order-77"))
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	conn := &fakeConn{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := NewSession(conn, registry, logger)

	registry.Join("order-77", session)
	session.Close()
	session.Close()

	assert.Empty(t, registry.Members("order-77"))
	assert.Equal(t, 0, registry.SessionCount())
	assert.True(t, conn.closed)
}
