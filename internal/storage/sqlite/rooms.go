package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/storage"
)

// CreateRoom persists a new room.
func (q *queries) CreateRoom(ctx context.Context, room *models.Room) error {
	// Generate ID if not set
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = time.Now().Unix()
	}

	_, err := q.db.ExecContext(ctx,
		"INSERT INTO rooms (id, name, creator_id, invite_code, created_at) VALUES (?, ?, ?, ?, ?)",
		room.ID, room.Name, room.CreatorID, room.InviteCode, room.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("invite code %s: %w", room.InviteCode, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by ID.
func (q *queries) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	return q.getRoom(ctx, "SELECT id, name, creator_id, invite_code, created_at FROM rooms WHERE id = ?", roomID)
}

// GetRoomByInviteCode retrieves a room by its invite code.
func (q *queries) GetRoomByInviteCode(ctx context.Context, inviteCode string) (*models.Room, error) {
	return q.getRoom(ctx, "SELECT id, name, creator_id, invite_code, created_at FROM rooms WHERE invite_code = ?", inviteCode)
}

func (q *queries) getRoom(ctx context.Context, query, arg string) (*models.Room, error) {
	room := &models.Room{}
	err := q.db.QueryRowContext(ctx, query, arg).
		Scan(&room.ID, &room.Name, &room.CreatorID, &room.InviteCode, &room.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("room %s: %w", arg, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// ListRoomsByUser returns every room the user belongs to, most recently joined first.
func (q *queries) ListRoomsByUser(ctx context.Context, userID string) ([]*models.RoomSummary, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.creator_id, r.invite_code, r.created_at, m.joined_at,
		        (SELECT COUNT(*) FROM room_members c WHERE c.room_id = r.id)
		 FROM room_members m
		 JOIN rooms r ON r.id = m.room_id
		 WHERE m.user_id = ?
		 ORDER BY m.joined_at DESC, m.rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.RoomSummary
	for rows.Next() {
		r := &models.RoomSummary{}
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatorID, &r.InviteCode, &r.CreatedAt, &r.JoinedAt, &r.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	return rooms, nil
}

// UpdateRoomOwner hands the room to another user.
func (q *queries) UpdateRoomOwner(ctx context.Context, roomID, ownerID string) error {
	res, err := q.db.ExecContext(ctx, "UPDATE rooms SET creator_id = ? WHERE id = ?", ownerID, roomID)
	if err != nil {
		return fmt.Errorf("failed to update room owner: %w", err)
	}
	return checkAffected(res, "room "+roomID)
}

// DeleteRoom removes a room and everything recorded in it.
// Should run inside a transaction.
func (q *queries) DeleteRoom(ctx context.Context, roomID string) error {
	steps := []struct {
		what  string
		query string
	}{
		{"settlement items", "DELETE FROM settlement_items WHERE settlement_id IN (SELECT id FROM settlements WHERE room_id = ?)"},
		{"transfers", "DELETE FROM transfers WHERE room_id = ?"},
		{"settlements", "DELETE FROM settlements WHERE room_id = ?"},
		{"members", "DELETE FROM room_members WHERE room_id = ?"},
	}
	for _, step := range steps {
		if _, err := q.db.ExecContext(ctx, step.query, roomID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.what, err)
		}
	}

	res, err := q.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", roomID)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return checkAffected(res, "room "+roomID)
}
