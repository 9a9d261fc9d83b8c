package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mmynk/splitroom/internal/calculator"
	"github.com/mmynk/splitroom/internal/metrics"
	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/realtime"
	"github.com/mmynk/splitroom/internal/storage"
)

// CreateRoom creates a room owned by userID and makes the owner its first
// member. An empty name becomes "<display name>'s room".
func (e *Engine) CreateRoom(ctx context.Context, userID, name string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > maxRoomNameLength {
		return nil, ErrRoomNameTooLong
	}

	user, err := e.store.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if name == "" {
		name = user.DisplayName + "'s room"
	}

	for attempt := 1; attempt <= inviteAttempts; attempt++ {
		code, err := newInviteCode()
		if err != nil {
			return nil, fmt.Errorf("generate invite code: %w", err)
		}

		room := &models.Room{Name: name, CreatorID: userID, InviteCode: code}
		err = e.store.InTx(ctx, func(q storage.Queries) error {
			if err := q.CreateRoom(ctx, room); err != nil {
				return err
			}
			_, err := q.AddMember(ctx, &models.Member{RoomID: room.ID, UserID: userID})
			return err
		})
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Warn("Invite code collision", "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create room: %w", err)
		}
		return room, nil
	}
	return nil, ErrInviteExhausted
}

// ListRooms returns the rooms userID belongs to.
func (e *Engine) ListRooms(ctx context.Context, userID string) ([]*models.RoomSummary, error) {
	rooms, err := e.store.ListRoomsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// GetRoom returns the room with every member's unsettled balance.
// Only members may look at a room.
func (e *Engine) GetRoom(ctx context.Context, userID, roomID string) (*RoomDetail, error) {
	var detail *RoomDetail
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		room, _, err := requireMember(ctx, q, roomID, userID)
		if err != nil {
			return err
		}
		balances, err := memberBalances(ctx, q, room)
		if err != nil {
			return err
		}
		detail = &RoomDetail{Room: room, Members: balances}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// memberBalances nets the room's unsettled transfers over its current members.
func memberBalances(ctx context.Context, q storage.Queries, room *models.Room) ([]MemberBalance, error) {
	members, err := q.ListMembers(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	unsettled, err := q.ListUnsettledTransfers(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("list unsettled transfers: %w", err)
	}

	net := calculator.NetOf(calculator.FromTransfers(unsettled), memberIDs(members))
	out := make([]MemberBalance, len(members))
	for i, m := range members {
		out[i] = MemberBalance{
			Member:  m,
			Balance: net[m.UserID],
			IsOwner: m.UserID == room.CreatorID,
		}
	}
	return out, nil
}

// CheckMembership looks a room up by invite code, or by ID when the code is
// empty, and reports whether userID is in it.
func (e *Engine) CheckMembership(ctx context.Context, userID, inviteCode, roomID string) (bool, *models.Room, error) {
	var (
		room *models.Room
		err  error
	)
	if code := normalizeInviteCode(inviteCode); code != "" {
		room, err = e.store.GetRoomByInviteCode(ctx, code)
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil, ErrInviteNotFound
		}
		if err != nil {
			return false, nil, fmt.Errorf("load room: %w", err)
		}
	} else {
		room, err = loadRoom(ctx, e.store, roomID)
		if err != nil {
			return false, nil, err
		}
	}

	_, err = e.store.GetMember(ctx, room.ID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, room, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("load membership: %w", err)
	}
	return true, room, nil
}

// IsMember reports whether userID currently belongs to roomID. Unknown rooms
// are reported as false.
func (e *Engine) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	_, err := e.store.GetMember(ctx, roomID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CloseRoom deletes the room with all of its memberships, transfers and
// settlements. Only the owner may close a room.
func (e *Engine) CloseRoom(ctx context.Context, userID, roomID string) error {
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		room, err := loadRoom(ctx, q, roomID)
		if err != nil {
			return err
		}
		if room.CreatorID != userID {
			return ErrNotOwner
		}
		return q.DeleteRoom(ctx, roomID)
	})
	if err != nil {
		return err
	}

	metrics.RoomsTornDown.Inc()
	slog.Info("Room closed", "room_id", roomID, "user_id", userID)

	e.notifier.Broadcast(roomID, realtime.Event{
		Type: realtime.EventRoomClosed,
		Data: map[string]string{"room_id": roomID},
	})
	e.notifier.CloseRoom(roomID)
	return nil
}
