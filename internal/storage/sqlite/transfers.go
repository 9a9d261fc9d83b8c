package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitroom/internal/models"
)

const transferColumns = `id, room_id, payer_id, payee_id, amount, settlement_id, created_at`

// CreateTransfer persists a new transfer.
func (q *queries) CreateTransfer(ctx context.Context, transfer *models.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO transfers (`+transferColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		transfer.ID, transfer.RoomID, transfer.PayerID, transfer.PayeeID,
		int64(transfer.Amount), nullString(transfer.SettlementID), transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}
	return nil
}

// ListTransfers returns a page of the room's transfers, newest first.
func (q *queries) ListTransfers(ctx context.Context, roomID string, limit, offset int) ([]*models.Transfer, int, error) {
	var total int
	if err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transfers WHERE room_id = ?", roomID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}

	transfers, err := q.queryTransfers(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE room_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		roomID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	return transfers, total, nil
}

// ListUnsettledTransfers returns every live transfer of the room in creation order.
func (q *queries) ListUnsettledTransfers(ctx context.Context, roomID string) ([]*models.Transfer, error) {
	return q.queryTransfers(ctx,
		`SELECT `+transferColumns+` FROM transfers
		 WHERE room_id = ? AND settlement_id IS NULL
		 ORDER BY created_at ASC, rowid ASC`,
		roomID,
	)
}

// UnsettledBalance computes received minus paid over live transfers in SQL.
// Amounts are integer cents, so the sum is exact.
func (q *queries) UnsettledBalance(ctx context.Context, roomID, userID string) (models.Amount, error) {
	var balance int64
	err := q.db.QueryRowContext(ctx,
		`SELECT
		    COALESCE(SUM(CASE WHEN payee_id = ? THEN amount ELSE 0 END), 0) -
		    COALESCE(SUM(CASE WHEN payer_id = ? THEN amount ELSE 0 END), 0)
		 FROM transfers
		 WHERE room_id = ? AND settlement_id IS NULL AND (payee_id = ? OR payer_id = ?)`,
		userID, userID, roomID, userID, userID,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to sum balance: %w", err)
	}
	return models.Amount(balance), nil
}

// MarkTransfersSettled stamps every live transfer in the room with the
// settlement ID. The stamped row count must match transferIDs, the snapshot
// the settlement was computed from.
func (q *queries) MarkTransfersSettled(ctx context.Context, roomID, settlementID string, transferIDs []string) error {
	if len(transferIDs) == 0 {
		return nil
	}

	res, err := q.db.ExecContext(ctx,
		`UPDATE transfers SET settlement_id = ? WHERE room_id = ? AND settlement_id IS NULL`,
		settlementID, roomID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark transfers settled: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if int(n) != len(transferIDs) {
		return fmt.Errorf("marked %d of %d transfers settled", n, len(transferIDs))
	}
	return nil
}

func (q *queries) queryTransfers(ctx context.Context, query string, args ...any) ([]*models.Transfer, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*models.Transfer
	for rows.Next() {
		t := &models.Transfer{}
		var amount int64
		var settlementID sql.NullString
		if err := rows.Scan(&t.ID, &t.RoomID, &t.PayerID, &t.PayeeID, &amount, &settlementID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		t.Amount = models.Amount(amount)
		if settlementID.Valid {
			t.SettlementID = settlementID.String
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}
