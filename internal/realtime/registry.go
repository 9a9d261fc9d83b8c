// Package realtime keeps the process-wide directory of live room channels
// and serves them over websocket.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/mmynk/splitroom/internal/metrics"
)

// Channel is one live push pipe to one connected user.
type Channel interface {
	// Send queues an event without blocking on delivery.
	Send(ev Event) error

	// Close shuts the channel down, telling the client why. Safe to call twice.
	Close(reason CloseReason)
}

// Registry maps room -> user -> channel, with at most one channel per pair.
// It is not persisted; a restart drops every channel and clients reconnect.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]map[string]Channel
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[string]Channel)}
}

// Register stores ch for (roomID, userID). A previous channel for the same
// pair is closed with CloseReplaced before ch becomes visible.
func (r *Registry) Register(roomID, userID string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, ok := r.rooms[roomID]
	if !ok {
		users = make(map[string]Channel)
		r.rooms[roomID] = users
	}

	if prev, ok := users[userID]; ok {
		if prev == ch {
			return
		}
		prev.Close(CloseReplaced)
		metrics.RealtimeReplaced.Inc()
		metrics.RealtimeConnections.Dec()
		slog.Debug("Realtime channel replaced", "room_id", roomID, "user_id", userID)
	}

	users[userID] = ch
	metrics.RealtimeConnections.Inc()
}

// Unregister removes the mapping only if it still points at ch, so a late
// close callback from an evicted channel cannot drop its replacement.
func (r *Registry) Unregister(roomID, userID string, ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, ok := r.rooms[roomID]
	if !ok || users[userID] != ch {
		return false
	}

	delete(users, userID)
	if len(users) == 0 {
		delete(r.rooms, roomID)
	}
	metrics.RealtimeConnections.Dec()
	return true
}

// Disconnect closes and forgets the user's channel for the room, if any.
func (r *Registry) Disconnect(roomID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, ok := r.rooms[roomID]
	if !ok {
		return
	}
	ch, ok := users[userID]
	if !ok {
		return
	}

	ch.Close(CloseUserLeft)
	delete(users, userID)
	if len(users) == 0 {
		delete(r.rooms, roomID)
	}
	metrics.RealtimeConnections.Dec()
}

// CloseRoom closes every channel of the room.
func (r *Registry) CloseRoom(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, ok := r.rooms[roomID]
	if !ok {
		return
	}
	for _, ch := range users {
		ch.Close(CloseRoomClosed)
		metrics.RealtimeConnections.Dec()
	}
	delete(r.rooms, roomID)
}

// Broadcast hands ev to every channel registered under the room.
// Delivery is best effort: failures are logged and never returned.
func (r *Registry) Broadcast(roomID string, ev Event) {
	r.mu.Lock()
	users := r.rooms[roomID]
	targets := make(map[string]Channel, len(users))
	for userID, ch := range users {
		targets[userID] = ch
	}
	r.mu.Unlock()

	for userID, ch := range targets {
		if err := ch.Send(ev); err != nil {
			metrics.RealtimeDropped.Inc()
			slog.Warn("Realtime delivery failed",
				"room_id", roomID,
				"user_id", userID,
				"event", ev.Type,
				"error", err,
			)
			continue
		}
		metrics.RealtimeEvents.WithLabelValues(ev.Type).Inc()
	}
}

// Count returns the number of channels registered for the room.
func (r *Registry) Count(roomID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[roomID])
}
