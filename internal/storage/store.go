// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitroom/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// Queries defines the record operations on users, rooms, members, transfers
// and settlements. The same set is available outside and inside a transaction.
type Queries interface {
	// CreateUser persists a new user. Returns ErrDuplicate if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id, displayName, avatarURL string) error

	// CreateRoom persists a new room. The room.ID and CreatedAt fields are
	// populated by the store. Returns ErrDuplicate on an invite code collision.
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	GetRoomByInviteCode(ctx context.Context, inviteCode string) (*models.Room, error)
	ListRoomsByUser(ctx context.Context, userID string) ([]*models.RoomSummary, error)
	UpdateRoomOwner(ctx context.Context, roomID, ownerID string) error

	// DeleteRoom removes the room with all of its members, transfers,
	// settlements and settlement items.
	DeleteRoom(ctx context.Context, roomID string) error

	// AddMember inserts a membership unless one already exists for the
	// (room, user) pair. It reports whether a row was created.
	AddMember(ctx context.Context, member *models.Member) (bool, error)
	GetMember(ctx context.Context, roomID, userID string) (*models.Member, error)
	GetMemberByID(ctx context.Context, roomID, memberID string) (*models.Member, error)

	// ListMembers returns the room's members ordered by join time, earliest first.
	ListMembers(ctx context.Context, roomID string) ([]*models.Member, error)
	UpdateMemberNickname(ctx context.Context, memberID, nickname string) error
	DeleteMember(ctx context.Context, roomID, userID string) error

	CreateTransfer(ctx context.Context, transfer *models.Transfer) error

	// ListTransfers returns one page of a room's transfers, newest first,
	// along with the total number of transfers in the room.
	ListTransfers(ctx context.Context, roomID string, limit, offset int) ([]*models.Transfer, int, error)
	ListUnsettledTransfers(ctx context.Context, roomID string) ([]*models.Transfer, error)

	// UnsettledBalance is received minus paid over the user's live transfers.
	UnsettledBalance(ctx context.Context, roomID, userID string) (models.Amount, error)

	// MarkTransfersSettled stamps the room's live transfers with settlementID.
	// transferIDs is the snapshot being settled; it fails if the live set no
	// longer matches it in size.
	MarkTransfersSettled(ctx context.Context, roomID, settlementID string, transferIDs []string) error

	// CreateSettlement inserts the settlement row and all of its items.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlements returns a room's settlements with items, newest first.
	ListSettlements(ctx context.Context, roomID string) ([]*models.Settlement, error)
}

// Store is the persistent backend. This abstraction allows swapping storage
// backends without changing the ledger.
type Store interface {
	Queries

	// InTx runs fn inside one all-or-nothing transaction. If fn returns an
	// error or panics, nothing it wrote is kept. fn must only use the Queries
	// it is given, never the Store itself.
	InTx(ctx context.Context, fn func(q Queries) error) error

	// Close releases any resources held by the store.
	Close() error
}
