package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mmynk/splitroom/internal/metrics"
	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/realtime"
	"github.com/mmynk/splitroom/internal/storage"
)

// JoinResult is the room a user joined together with its members.
type JoinResult struct {
	Room          *models.Room
	Members       []*models.Member
	AlreadyMember bool
}

// LeaveResult describes what a departure did to the room.
type LeaveResult struct {
	// NewOwnerID is set when the owner left and the room passed to a successor.
	NewOwnerID string

	// RoomDeleted is set when the last member left and the room was torn down.
	RoomDeleted bool
}

// Join adds userID to the room with the given invite code. Joining a room
// twice is a no-op that reports AlreadyMember.
func (e *Engine) Join(ctx context.Context, userID, inviteCode string) (*JoinResult, error) {
	code := normalizeInviteCode(inviteCode)
	if code == "" {
		return nil, ErrInviteNotFound
	}

	var (
		result *JoinResult
		joined *models.Member
	)
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		room, err := q.GetRoomByInviteCode(ctx, code)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInviteNotFound
		}
		if err != nil {
			return fmt.Errorf("load room: %w", err)
		}

		created, err := q.AddMember(ctx, &models.Member{RoomID: room.ID, UserID: userID})
		if err != nil {
			return fmt.Errorf("add member: %w", err)
		}

		members, err := q.ListMembers(ctx, room.ID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		for _, m := range members {
			if m.UserID == userID {
				joined = m
			}
		}

		result = &JoinResult{Room: room, Members: members, AlreadyMember: !created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyMember && joined != nil {
		slog.Info("Member joined", "room_id", result.Room.ID, "user_id", userID)
		e.notifier.Broadcast(result.Room.ID, realtime.Event{
			Type: realtime.EventMemberJoined,
			Data: newMemberPayload(joined),
		})
	}
	return result, nil
}

// Leave removes userID from the room.
//
// A member whose unsettled balance is not zero cannot leave while anyone else
// remains. When the owner leaves, the earliest remaining joiner becomes the
// owner; when the last member leaves, the room and its whole ledger are
// deleted. Ownership transfer and teardown happen in the same transaction as
// the membership removal.
func (e *Engine) Leave(ctx context.Context, userID, roomID string) (*LeaveResult, error) {
	result := &LeaveResult{}
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		room, _, err := requireMember(ctx, q, roomID, userID)
		if err != nil {
			return err
		}

		members, err := q.ListMembers(ctx, roomID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		remaining := make([]*models.Member, 0, len(members))
		for _, m := range members {
			if m.UserID != userID {
				remaining = append(remaining, m)
			}
		}

		if len(remaining) == 0 {
			e.notifier.Disconnect(roomID, userID)
			result.RoomDeleted = true
			return q.DeleteRoom(ctx, roomID)
		}

		balance, err := q.UnsettledBalance(ctx, roomID, userID)
		if err != nil {
			return fmt.Errorf("load balance: %w", err)
		}
		if balance != 0 {
			return ErrOutstandingBalance
		}

		if room.CreatorID == userID {
			successor := remaining[0]
			if err := q.UpdateRoomOwner(ctx, roomID, successor.UserID); err != nil {
				return fmt.Errorf("transfer ownership: %w", err)
			}
			result.NewOwnerID = successor.UserID
		}

		e.notifier.Disconnect(roomID, userID)
		if err := q.DeleteMember(ctx, roomID, userID); err != nil {
			return fmt.Errorf("delete member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.RoomDeleted {
		metrics.RoomsTornDown.Inc()
		slog.Info("Last member left, room deleted", "room_id", roomID, "user_id", userID)
		return result, nil
	}

	slog.Info("Member left", "room_id", roomID, "user_id", userID, "new_owner_id", result.NewOwnerID)
	data := map[string]string{"user_id": userID}
	if result.NewOwnerID != "" {
		data["new_owner_id"] = result.NewOwnerID
	}
	e.notifier.Broadcast(roomID, realtime.Event{Type: realtime.EventMemberLeft, Data: data})
	return result, nil
}

// UpdateNickname sets the room-scoped nickname of a membership. Members may
// only rename themselves; an empty nickname clears the override.
func (e *Engine) UpdateNickname(ctx context.Context, userID, roomID, memberID, nickname string) (*models.Member, error) {
	nickname = strings.TrimSpace(nickname)
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return nil, ErrNicknameTooLong
	}

	var updated *models.Member
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		if _, err := loadRoom(ctx, q, roomID); err != nil {
			return err
		}
		member, err := q.GetMemberByID(ctx, roomID, memberID)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrMemberNotFound
		}
		if err != nil {
			return fmt.Errorf("load member: %w", err)
		}
		if member.UserID != userID {
			return ErrNotOwnMembership
		}

		if err := q.UpdateMemberNickname(ctx, member.ID, nickname); err != nil {
			return fmt.Errorf("update nickname: %w", err)
		}
		member.CustomNickname = nickname
		updated = member
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.notifier.Broadcast(roomID, realtime.Event{
		Type: realtime.EventMemberUpdated,
		Data: newMemberPayload(updated),
	})
	return updated, nil
}
