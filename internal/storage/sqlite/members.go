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

const memberSelect = `
	SELECT m.id, m.room_id, m.user_id, m.custom_nickname, m.joined_at, u.display_name, u.avatar_url
	FROM room_members m
	JOIN users u ON u.id = m.user_id`

// AddMember inserts the membership if the user is not in the room yet.
func (q *queries) AddMember(ctx context.Context, member *models.Member) (bool, error) {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO room_members (id, room_id, user_id, custom_nickname, joined_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (room_id, user_id) DO NOTHING`,
		member.ID, member.RoomID, member.UserID, nullString(member.CustomNickname), member.JoinedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert member: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// GetMember retrieves the membership of userID in roomID.
func (q *queries) GetMember(ctx context.Context, roomID, userID string) (*models.Member, error) {
	row := q.db.QueryRowContext(ctx, memberSelect+" WHERE m.room_id = ? AND m.user_id = ?", roomID, userID)
	member, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s in room %s: %w", userID, roomID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// GetMemberByID retrieves a membership record by its own ID.
func (q *queries) GetMemberByID(ctx context.Context, roomID, memberID string) (*models.Member, error) {
	row := q.db.QueryRowContext(ctx, memberSelect+" WHERE m.room_id = ? AND m.id = ?", roomID, memberID)
	member, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member record %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// ListMembers returns the members of a room, earliest joiner first.
// Insertion order breaks ties between members that joined in the same second.
func (q *queries) ListMembers(ctx context.Context, roomID string) ([]*models.Member, error) {
	rows, err := q.db.QueryContext(ctx,
		memberSelect+" WHERE m.room_id = ? ORDER BY m.joined_at ASC, m.rowid ASC",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// UpdateMemberNickname sets or clears (empty string) the room-scoped nickname.
func (q *queries) UpdateMemberNickname(ctx context.Context, memberID, nickname string) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE room_members SET custom_nickname = ? WHERE id = ?",
		nullString(nickname), memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to update nickname: %w", err)
	}
	return checkAffected(res, "member record "+memberID)
}

// DeleteMember removes the user's membership. Transfers are kept.
func (q *queries) DeleteMember(ctx context.Context, roomID, userID string) error {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM room_members WHERE room_id = ? AND user_id = ?",
		roomID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return checkAffected(res, "member "+userID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMember(row scanner) (*models.Member, error) {
	member := &models.Member{}
	var nickname sql.NullString
	if err := row.Scan(
		&member.ID,
		&member.RoomID,
		&member.UserID,
		&nickname,
		&member.JoinedAt,
		&member.Nickname,
		&member.AvatarURL,
	); err != nil {
		return nil, err
	}
	if nickname.Valid {
		member.CustomNickname = nickname.String
	}
	return member, nil
}
