// Package ledger implements room membership, transfers, balances and
// settlements on top of a transactional store. Every state change that must
// be all-or-nothing runs inside storage.Store.InTx; realtime notifications are
// published only after the change has committed.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/realtime"
	"github.com/mmynk/splitroom/internal/storage"
)

const (
	maxNicknameLength = 32
	maxRoomNameLength = 64
)

// Notifier receives room events. Delivery is best effort: none of these
// methods report failures.
type Notifier interface {
	Broadcast(roomID string, ev realtime.Event)
	Disconnect(roomID, userID string)
	CloseRoom(roomID string)
}

// Engine is the ledger and membership core.
type Engine struct {
	store    storage.Store
	notifier Notifier
}

// New creates an Engine. A nil notifier discards events.
func New(store storage.Store, notifier Notifier) *Engine {
	if notifier == nil {
		notifier = discard{}
	}
	return &Engine{store: store, notifier: notifier}
}

type discard struct{}

func (discard) Broadcast(string, realtime.Event) {}
func (discard) Disconnect(string, string)        {}
func (discard) CloseRoom(string)                 {}

// MemberBalance is a member together with their unsettled balance.
type MemberBalance struct {
	*models.Member
	Balance models.Amount
	IsOwner bool
}

// RoomDetail is a room as shown to one of its members.
type RoomDetail struct {
	Room    *models.Room
	Members []MemberBalance
}

// loadRoom maps a missing room to ErrRoomNotFound.
func loadRoom(ctx context.Context, q storage.Queries, roomID string) (*models.Room, error) {
	room, err := q.GetRoom(ctx, roomID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load room: %w", err)
	}
	return room, nil
}

// requireMember loads the room and the caller's membership in it.
func requireMember(ctx context.Context, q storage.Queries, roomID, userID string) (*models.Room, *models.Member, error) {
	room, err := loadRoom(ctx, q, roomID)
	if err != nil {
		return nil, nil, err
	}
	member, err := q.GetMember(ctx, roomID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrNotMember
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load membership: %w", err)
	}
	return room, member, nil
}

func memberIDs(members []*models.Member) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	return ids
}

// memberPayload is the realtime shape of a membership.
type memberPayload struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	JoinedAt    int64  `json:"joined_at"`
}

func newMemberPayload(m *models.Member) memberPayload {
	return memberPayload{
		ID:          m.ID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName(),
		AvatarURL:   m.AvatarURL,
		JoinedAt:    m.JoinedAt,
	}
}
