package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/realtime"
	"github.com/mmynk/splitroom/internal/storage"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// TransferView is a transfer with the names of both parties resolved.
type TransferView struct {
	*models.Transfer
	PayerName string
	PayeeName string
}

// TransferPage is one page of a room's transfer history.
type TransferPage struct {
	Transfers  []TransferView
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// CreateTransfer records that userID paid payeeID the given amount.
// Both parties must currently be members of the room.
func (e *Engine) CreateTransfer(ctx context.Context, userID, roomID, payeeID string, amount models.Amount) (*models.Transfer, error) {
	if !amount.Positive() || amount > models.MaxAmount {
		return nil, ErrInvalidAmount
	}
	if payeeID == userID {
		return nil, ErrSelfTransfer
	}

	transfer := &models.Transfer{RoomID: roomID, PayerID: userID, PayeeID: payeeID, Amount: amount}
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		if _, _, err := requireMember(ctx, q, roomID, userID); err != nil {
			return err
		}
		_, err := q.GetMember(ctx, roomID, payeeID)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrPayeeNotMember
		}
		if err != nil {
			return fmt.Errorf("load payee: %w", err)
		}
		return q.CreateTransfer(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Transfer created",
		"room_id", roomID,
		"transfer_id", transfer.ID,
		"payer_id", userID,
		"payee_id", payeeID,
		"amount", amount.String(),
	)
	e.notifier.Broadcast(roomID, realtime.Event{
		Type: realtime.EventTransferCreated,
		Data: map[string]any{
			"id":         transfer.ID,
			"payer_id":   transfer.PayerID,
			"payee_id":   transfer.PayeeID,
			"amount":     transfer.Amount.String(),
			"created_at": transfer.CreatedAt,
		},
	})
	return transfer, nil
}

// Balance is received minus paid over userID's unsettled transfers in the room.
func (e *Engine) Balance(ctx context.Context, roomID, userID string) (models.Amount, error) {
	if _, _, err := requireMember(ctx, e.store, roomID, userID); err != nil {
		return 0, err
	}
	balance, err := e.store.UnsettledBalance(ctx, roomID, userID)
	if err != nil {
		return 0, fmt.Errorf("load balance: %w", err)
	}
	return balance, nil
}

// Balances returns every current member's unsettled balance. The caller
// must be a member.
func (e *Engine) Balances(ctx context.Context, userID, roomID string) ([]MemberBalance, error) {
	var balances []MemberBalance
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		room, _, err := requireMember(ctx, q, roomID, userID)
		if err != nil {
			return err
		}
		balances, err = memberBalances(ctx, q, room)
		return err
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// ListTransfers returns one page of the room's transfers, newest first.
// page starts at 1; zero values fall back to the first page of 20.
func (e *Engine) ListTransfers(ctx context.Context, userID, roomID string, page, limit int) (*TransferPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	result := &TransferPage{Page: page, Limit: limit}
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		if _, _, err := requireMember(ctx, q, roomID, userID); err != nil {
			return err
		}

		transfers, total, err := q.ListTransfers(ctx, roomID, limit, (page-1)*limit)
		if err != nil {
			return fmt.Errorf("list transfers: %w", err)
		}
		names, err := newNameResolver(ctx, q, roomID)
		if err != nil {
			return err
		}

		result.Total = total
		result.TotalPages = (total + limit - 1) / limit
		result.Transfers = make([]TransferView, len(transfers))
		for i, t := range transfers {
			result.Transfers[i] = TransferView{
				Transfer:  t,
				PayerName: names.name(ctx, t.PayerID),
				PayeeName: names.name(ctx, t.PayeeID),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// nameResolver prefers the room nickname of current members and falls back
// to the global display name for users who have left.
type nameResolver struct {
	q       storage.Queries
	members map[string]*models.Member
	users   map[string]string
}

func newNameResolver(ctx context.Context, q storage.Queries, roomID string) (*nameResolver, error) {
	members, err := q.ListMembers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	r := &nameResolver{
		q:       q,
		members: make(map[string]*models.Member, len(members)),
		users:   make(map[string]string),
	}
	for _, m := range members {
		r.members[m.UserID] = m
	}
	return r, nil
}

func (r *nameResolver) member(userID string) (*models.Member, bool) {
	m, ok := r.members[userID]
	return m, ok
}

func (r *nameResolver) name(ctx context.Context, userID string) string {
	if m, ok := r.members[userID]; ok {
		return m.DisplayName()
	}
	if name, ok := r.users[userID]; ok {
		return name
	}

	name := ""
	if user, err := r.q.GetUserByID(ctx, userID); err == nil {
		name = user.DisplayName
	}
	r.users[userID] = name
	return name
}
