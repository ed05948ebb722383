package ws

import "sync"

// Registry maps order identifiers to the set of live sessions subscribed to
// them. Rooms are ephemeral: created lazily on first join, removed when the
// last member leaves, never persisted.
//
// Registry maintains these invariants:
//   - A session appears in a room iff it joined and has not since left or
//     disconnected
//   - Join is idempotent; duplicate joins never cause duplicate fan-out
//   - After LeaveAll, no room retains a reference to the session
//
// All methods are safe for concurrent use. Mutations and membership reads
// are serialized by one lock, so a fan-out that overlaps a join or leave
// observes a consistent snapshot, never a torn set.
type Registry struct {
	mu sync.RWMutex

	// rooms maps order id -> member set
	rooms map[string]map[*Session]struct{}

	// memberships is the reverse index, session -> joined room ids,
	// making LeaveAll cheap on disconnect
	memberships map[*Session]map[string]struct{}
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:       make(map[string]map[*Session]struct{}),
		memberships: make(map[*Session]map[string]struct{}),
	}
}

// Join adds the session to the room, creating the room if needed.
// Joining a room the session is already in is a no-op.
func (r *Registry) Join(roomID string, session *Session) {
	if roomID == "" || session == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[*Session]struct{})
		r.rooms[roomID] = members
	}
	members[session] = struct{}{}

	joined, ok := r.memberships[session]
	if !ok {
		joined = make(map[string]struct{})
		r.memberships[session] = joined
	}
	joined[roomID] = struct{}{}
}

// Leave removes the session from the room. A no-op if the session is not a
// member. Empty rooms are deleted.
func (r *Registry) Leave(roomID string, session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(roomID, session)

	if joined, ok := r.memberships[session]; ok {
		delete(joined, roomID)
		if len(joined) == 0 {
			delete(r.memberships, session)
		}
	}
}

// LeaveAll removes the session from every room it belongs to. Called on
// session termination; calling it again for the same session is a no-op.
func (r *Registry) LeaveAll(session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for roomID := range r.memberships[session] {
		r.removeLocked(roomID, session)
	}
	delete(r.memberships, session)
}

// Members returns a snapshot of the room's current member set. The snapshot
// is safe to iterate while other goroutines mutate membership.
func (r *Registry) Members(roomID string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[roomID]
	snapshot := make([]*Session, 0, len(members))
	for session := range members {
		snapshot = append(snapshot, session)
	}
	return snapshot
}

// RoomCount returns the number of rooms with at least one member.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// SessionCount returns the number of sessions joined to at least one room.
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.memberships)
}

// removeLocked deletes the session from one room. Caller holds the lock.
func (r *Registry) removeLocked(roomID string, session *Session) {
	members, ok := r.rooms[roomID]
	if !ok {
		return
	}
	delete(members, session)
	if len(members) == 0 {
		delete(r.rooms, roomID)
	}
}
