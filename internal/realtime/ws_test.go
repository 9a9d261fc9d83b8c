package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/net/websocket"
)

// fakeAuthorizer treats the token as the user ID and allows listed members.
type fakeAuthorizer struct {
	members map[string]map[string]bool
}

func (f fakeAuthorizer) Authenticate(_ context.Context, token string) (string, error) {
	if token == "bad" {
		return "", errors.New("invalid token")
	}
	return token, nil
}

func (f fakeAuthorizer) CanWatch(_ context.Context, roomID, userID string) (bool, error) {
	return f.members[roomID][userID], nil
}

func newTestWSServer(t *testing.T) (*httptest.Server, *Registry) {
	t.Helper()

	reg := NewRegistry()
	authz := fakeAuthorizer{members: map[string]map[string]bool{
		"R": {"U": true, "V": true},
	}}
	srv := httptest.NewServer(NewHandler(reg, authz, 8))
	t.Cleanup(srv.Close)
	return srv, reg
}

func dialRoom(t *testing.T, srv *httptest.Server, roomID, token string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?roomId=" + roomID
	config, err := websocket.NewConfig(wsURL, srv.URL)
	if err != nil {
		t.Fatalf("websocket config: %v", err)
	}
	config.Header.Set("Authorization", "Bearer "+token)

	conn, err := websocket.DialConfig(config)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func receiveEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	var ev Event
	if err := websocket.JSON.Receive(conn, &ev); err != nil {
		t.Fatalf("receive event: %v", err)
	}
	return ev
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHandshakeRefusals(t *testing.T) {
	srv, _ := newTestWSServer(t)

	tests := []struct {
		name       string
		query      string
		header     string
		wantStatus int
		wantCode   int
	}{
		{"missing token", "?roomId=R", "", http.StatusUnauthorized, 4001},
		{"invalid token", "?roomId=R", "Bearer bad", http.StatusUnauthorized, 4001},
		{"missing room", "", "Bearer U", http.StatusForbidden, 4002},
		{"not a member", "?roomId=R", "Bearer stranger", http.StatusForbidden, 4002},
		{"unknown room", "?roomId=nope", "Bearer U", http.StatusForbidden, 4002},
		{"token in query", "?roomId=nope&token=U", "", http.StatusForbidden, 4002},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, srv.URL+"/ws"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var reason CloseReason
			if err := json.NewDecoder(resp.Body).Decode(&reason); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if reason.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", reason.Code, tt.wantCode)
			}
		})
	}
}

func TestBroadcastReachesConnectedMembers(t *testing.T) {
	srv, reg := newTestWSServer(t)

	u := dialRoom(t, srv, "R", "U")
	v := dialRoom(t, srv, "R", "V")
	waitFor(t, "both channels", func() bool { return reg.Count("R") == 2 })

	reg.Broadcast("R", Event{Type: EventMemberJoined, Data: map[string]string{"user_id": "W"}})

	for name, conn := range map[string]*websocket.Conn{"U": u, "V": v} {
		ev := receiveEvent(t, conn)
		if ev.Type != EventMemberJoined {
			t.Errorf("%s got event %q, want %q", name, ev.Type, EventMemberJoined)
		}
	}
}

func TestReconnectReplacesPreviousChannel(t *testing.T) {
	srv, reg := newTestWSServer(t)

	first := dialRoom(t, srv, "R", "U")
	waitFor(t, "first channel", func() bool { return reg.Count("R") == 1 })

	second := dialRoom(t, srv, "R", "U")

	closed := receiveEvent(t, first)
	if closed.Type != eventClosed {
		t.Fatalf("first channel got %q, want %q", closed.Type, eventClosed)
	}
	data, _ := closed.Data.(map[string]any)
	if data["reason"] != "replaced" {
		t.Errorf("close reason = %v, want replaced", data["reason"])
	}

	reg.Broadcast("R", Event{Type: "e"})

	if ev := receiveEvent(t, second); ev.Type != "e" {
		t.Errorf("second channel got %q, want e", ev.Type)
	}

	first.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var extra Event
	if err := websocket.JSON.Receive(first, &extra); err == nil {
		t.Errorf("first channel received %q after being replaced", extra.Type)
	}
	if n := reg.Count("R"); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestDisconnectClosesChannel(t *testing.T) {
	srv, reg := newTestWSServer(t)

	conn := dialRoom(t, srv, "R", "U")
	waitFor(t, "channel", func() bool { return reg.Count("R") == 1 })

	reg.Disconnect("R", "U")

	ev := receiveEvent(t, conn)
	if ev.Type != eventClosed {
		t.Fatalf("got %q, want %q", ev.Type, eventClosed)
	}
	data, _ := ev.Data.(map[string]any)
	if data["code"] != float64(CloseUserLeft.Code) {
		t.Errorf("close code = %v, want %d", data["code"], CloseUserLeft.Code)
	}
}

func TestClientHangupUnregisters(t *testing.T) {
	srv, reg := newTestWSServer(t)

	conn := dialRoom(t, srv, "R", "U")
	waitFor(t, "channel", func() bool { return reg.Count("R") == 1 })

	conn.Close()
	waitFor(t, "unregister", func() bool { return reg.Count("R") == 0 })
}

// leavingAuthorizer admits one membership check and then reports the user
// gone, as if their leave committed right after the handshake.
type leavingAuthorizer struct {
	fakeAuthorizer

	mu   sync.Mutex
	left bool
}

func (a *leavingAuthorizer) CanWatch(_ context.Context, _, _ string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.left {
		return false, nil
	}
	a.left = true
	return true, nil
}

func TestLeaveDuringHandshakeClosesChannel(t *testing.T) {
	reg := NewRegistry()
	srv := httptest.NewServer(NewHandler(reg, &leavingAuthorizer{}, 8))
	t.Cleanup(srv.Close)

	conn := dialRoom(t, srv, "R", "U")

	ev := receiveEvent(t, conn)
	if ev.Type != eventClosed {
		t.Fatalf("got %q, want %q", ev.Type, eventClosed)
	}
	data, _ := ev.Data.(map[string]any)
	if data["code"] != float64(CloseUserLeft.Code) {
		t.Errorf("close code = %v, want %d", data["code"], CloseUserLeft.Code)
	}

	waitFor(t, "unregister", func() bool { return reg.Count("R") == 0 })
	reg.Broadcast("R", Event{Type: EventMemberLeft})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var extra Event
	if err := websocket.JSON.Receive(conn, &extra); err == nil {
		t.Errorf("departed user received %q", extra.Type)
	}
}
