package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Close codes sent to dashboards.
const (
	CloseSessionReplaced = 4001
	CloseRoomClosed      = 4002
)

// Router tracks dashboard sessions and per-event rooms. It keeps one active
// Connection per user and fans RSVP updates out to everyone watching an event.
type Router struct {
	mu           sync.RWMutex
	sessions     map[string]*Connection            // sessionID -> connection
	userSessions map[string]string                 // userID -> sessionID
	rooms        map[string]map[string]*Connection // eventID -> sessionID -> connection
	sessionRooms map[string]map[string]struct{}    // sessionID -> set of eventIDs
}

// NewRouter constructs an initialized Router.
func NewRouter() *Router {
	return &Router{
		sessions:     make(map[string]*Connection),
		userSessions: make(map[string]string),
		rooms:        make(map[string]map[string]*Connection),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection and starts its write loop. A previous session
// of the same user is detached and closed after the swap.
func (r *Router) Attach(conn *Connection) {
	var previous *Connection

	r.mu.Lock()
	if existingID, ok := r.userSessions[conn.UserID]; ok {
		if existing := r.sessions[existingID]; existing != nil {
			previous = existing
			r.detachLocked(existingID)
		}
	}
	r.sessions[conn.ID] = conn
	r.userSessions[conn.UserID] = conn.ID
	r.sessionRooms[conn.ID] = make(map[string]struct{})
	r.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(CloseSessionReplaced, "session replaced")
	}
}

// Detach removes a connection if it is still tracked.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	r.detachLocked(conn.ID)
	r.mu.Unlock()
}

// Join subscribes the connection to an event room.
func (r *Router) Join(eventID string, conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[conn.ID]; !ok {
		return
	}
	room := r.rooms[eventID]
	if room == nil {
		room = make(map[string]*Connection)
		r.rooms[eventID] = room
	}
	room[conn.ID] = conn
	r.sessionRooms[conn.ID][eventID] = struct{}{}
}

// Leave unsubscribes the connection from an event room.
func (r *Router) Leave(eventID string, conn *Connection) {
	r.mu.Lock()
	r.leaveLocked(eventID, conn.ID)
	r.mu.Unlock()
}

// Publish writes payload to every connection in the event room and returns
// how many accepted it.
func (r *Router) Publish(eventID string, payload []byte) int {
	r.mu.RLock()
	room := r.rooms[eventID]
	targets := make([]*Connection, 0, len(room))
	for _, conn := range room {
		targets = append(targets, conn)
	}
	r.mu.RUnlock()

	delivered := 0
	for _, conn := range targets {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// RoomSize reports how many connections watch eventID.
func (r *Router) RoomSize(eventID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[eventID])
}

// CloseRoom disconnects everyone watching an event, used once it is archived.
func (r *Router) CloseRoom(eventID string) {
	r.mu.Lock()
	room := r.rooms[eventID]
	conns := make([]*Connection, 0, len(room))
	for id, conn := range room {
		conns = append(conns, conn)
		r.leaveLocked(eventID, id)
	}
	r.mu.Unlock()

	for _, conn := range conns {
		conn.Close(CloseRoomClosed, "event archived")
	}
}

// Close terminates all tracked connections and clears router state.
func (r *Router) Close() {
	r.mu.Lock()
	sessions := make([]*Connection, 0, len(r.sessions))
	for _, conn := range r.sessions {
		sessions = append(sessions, conn)
	}
	r.sessions = make(map[string]*Connection)
	r.userSessions = make(map[string]string)
	r.rooms = make(map[string]map[string]*Connection)
	r.sessionRooms = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(websocket.CloseGoingAway, "server shutdown")
	}
}

func (r *Router) detachLocked(sessionID string) {
	conn, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	delete(r.sessions, sessionID)

	if current, ok := r.userSessions[conn.UserID]; ok && current == sessionID {
		delete(r.userSessions, conn.UserID)
	}
	for eventID := range r.sessionRooms[sessionID] {
		r.leaveLocked(eventID, sessionID)
	}
	delete(r.sessionRooms, sessionID)
}

func (r *Router) leaveLocked(eventID string, sessionID string) {
	room := r.rooms[eventID]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(r.rooms, eventID)
	}
	if memberships, ok := r.sessionRooms[sessionID]; ok {
		delete(memberships, eventID)
	}
}
