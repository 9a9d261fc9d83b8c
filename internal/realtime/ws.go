package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/websocket"
)

const (
	defaultSendBuffer = 32
	writeTimeout      = 10 * time.Second
)

var (
	// ErrChannelClosed is returned by Send after the channel has been closed.
	ErrChannelClosed = errors.New("realtime channel closed")

	// ErrSendBufferFull is returned by Send when the client is not keeping up.
	ErrSendBufferFull = errors.New("realtime send buffer full")
)

// Authorizer verifies who is connecting and whether they may watch a room.
type Authorizer interface {
	// Authenticate resolves a bearer token to a user ID.
	Authenticate(ctx context.Context, token string) (string, error)

	// CanWatch reports whether the user is a current member of the room.
	CanWatch(ctx context.Context, roomID, userID string) (bool, error)
}

type wsIdentityKey struct{}

type wsIdentity struct {
	roomID string
	userID string
}

// NewHandler serves GET /ws?roomId=<id>. The handshake is refused with 401
// (code 4001) when the token is missing or invalid, and with 403 (code 4002)
// when the room is unknown or the user is not a member.
func NewHandler(registry *Registry, authorizer Authorizer, sendBuffer int) http.Handler {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}

	wsServer := websocket.Server{
		// Identity comes from the bearer token, so any origin is accepted.
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler: func(conn *websocket.Conn) {
			id, ok := conn.Request().Context().Value(wsIdentityKey{}).(wsIdentity)
			if !ok {
				conn.Close()
				return
			}
			serveChannel(conn, registry, authorizer, id, sendBuffer)
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		token := tokenFromRequest(r)
		if token == "" {
			refuse(w, http.StatusUnauthorized, RefuseUnauthorized)
			return
		}
		userID, err := authorizer.Authenticate(r.Context(), token)
		if err != nil || userID == "" {
			slog.Info("Realtime handshake unauthorized", "remote_addr", r.RemoteAddr, "error", err)
			refuse(w, http.StatusUnauthorized, RefuseUnauthorized)
			return
		}

		roomID := strings.TrimSpace(r.URL.Query().Get("roomId"))
		if roomID == "" {
			refuse(w, http.StatusForbidden, RefuseInvalidRoom)
			return
		}
		allowed, err := authorizer.CanWatch(r.Context(), roomID, userID)
		if err != nil {
			slog.Error("Realtime membership check failed", "room_id", roomID, "user_id", userID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !allowed {
			refuse(w, http.StatusForbidden, RefuseInvalidRoom)
			return
		}

		ctx := context.WithValue(r.Context(), wsIdentityKey{}, wsIdentity{roomID: roomID, userID: userID})
		wsServer.ServeHTTP(w, r.WithContext(ctx))
	})
}

func serveChannel(conn *websocket.Conn, registry *Registry, authorizer Authorizer, id wsIdentity, sendBuffer int) {
	ch := newWSChannel(conn, sendBuffer)
	registry.Register(id.roomID, id.userID, ch)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ch.writeLoop()
	}()

	// A leave that commits between the handshake check and Register finds
	// no channel to disconnect, so membership is checked again once registered.
	allowed, err := authorizer.CanWatch(conn.Request().Context(), id.roomID, id.userID)
	if err != nil || !allowed {
		if err != nil {
			slog.Error("Realtime membership recheck failed", "room_id", id.roomID, "user_id", id.userID, "error", err)
		}
		ch.Close(CloseUserLeft)
		registry.Unregister(id.roomID, id.userID, ch)
		<-writerDone
		slog.Info("Realtime channel dropped after leave", "room_id", id.roomID, "user_id", id.userID)
		return
	}
	slog.Info("Realtime channel opened", "room_id", id.roomID, "user_id", id.userID)

	// Clients never send anything meaningful; reading only detects closure.
	for {
		var msg string
		if err := websocket.Message.Receive(conn, &msg); err != nil {
			break
		}
		if msg == "ping" {
			_ = ch.Send(Event{Type: "pong"})
		}
	}

	ch.Close(CloseReason{})
	registry.Unregister(id.roomID, id.userID, ch)
	<-writerDone
	slog.Info("Realtime channel closed", "room_id", id.roomID, "user_id", id.userID)
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

func refuse(w http.ResponseWriter, status int, reason CloseReason) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reason)
}

// wsChannel queues events for a single writer goroutine so Send never blocks.
type wsChannel struct {
	conn *websocket.Conn
	out  chan Event

	done   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	reason CloseReason
}

func newWSChannel(conn *websocket.Conn, buffer int) *wsChannel {
	return &wsChannel{
		conn: conn,
		out:  make(chan Event, buffer),
		done: make(chan struct{}),
	}
}

func (c *wsChannel) Send(ev Event) error {
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}

	select {
	case c.out <- ev:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *wsChannel) Close(reason CloseReason) {
	c.once.Do(func() {
		c.mu.Lock()
		c.reason = reason
		c.mu.Unlock()
		close(c.done)
	})
}

func (c *wsChannel) closeReason() CloseReason {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

func (c *wsChannel) write(ev Event) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return websocket.JSON.Send(c.conn, ev)
}

// writeLoop delivers queued events until the channel is closed, then sends
// the close reason (if any) and hangs up.
func (c *wsChannel) writeLoop() {
	defer c.conn.Close()

	for {
		select {
		case ev := <-c.out:
			if err := c.write(ev); err != nil {
				slog.Debug("Realtime write failed", "error", err)
				c.Close(CloseReason{})
				return
			}
		case <-c.done:
			if reason := c.closeReason(); reason.Code != 0 {
				c.drain()
				_ = c.write(Event{Type: eventClosed, Data: reason})
			}
			return
		}
	}
}

// drain flushes events queued before the close so a final notice such as
// room_closed still reaches the client.
func (c *wsChannel) drain() {
	for {
		select {
		case ev := <-c.out:
			if err := c.write(ev); err != nil {
				return
			}
		default:
			return
		}
	}
}
