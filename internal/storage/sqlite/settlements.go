package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitroom/internal/models"
)

// CreateSettlement persists a settlement and its items.
// Should run inside a transaction so the header and items land together.
func (q *queries) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	// Generate ID if not set
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	_, err := q.db.ExecContext(ctx,
		"INSERT INTO settlements (id, room_id, creator_id, created_at) VALUES (?, ?, ?, ?)",
		settlement.ID, settlement.RoomID, settlement.CreatorID, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for i := range settlement.Items {
		item := &settlement.Items[i]
		item.SettlementID = settlement.ID
		_, err = q.db.ExecContext(ctx,
			"INSERT INTO settlement_items (settlement_id, user_id, net_amount) VALUES (?, ?, ?)",
			item.SettlementID, item.UserID, int64(item.NetAmount),
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement item: %w", err)
		}
	}

	return nil
}

// ListSettlements retrieves all settlements for a room, newest first, with items.
func (q *queries) ListSettlements(ctx context.Context, roomID string) ([]*models.Settlement, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, room_id, creator_id, created_at
		 FROM settlements WHERE room_id = ? ORDER BY created_at DESC, rowid DESC`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	var settlements []*models.Settlement
	byID := make(map[string]*models.Settlement)
	for rows.Next() {
		s := &models.Settlement{}
		if err := rows.Scan(&s.ID, &s.RoomID, &s.CreatorID, &s.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, s)
		byID[s.ID] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	if len(settlements) == 0 {
		return settlements, nil
	}

	itemRows, err := q.db.QueryContext(ctx,
		`SELECT i.settlement_id, i.user_id, i.net_amount
		 FROM settlement_items i
		 JOIN settlements s ON s.id = i.settlement_id
		 WHERE s.room_id = ?
		 ORDER BY i.rowid ASC`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.SettlementItem
		var net int64
		if err := itemRows.Scan(&item.SettlementID, &item.UserID, &net); err != nil {
			return nil, fmt.Errorf("failed to scan settlement item: %w", err)
		}
		item.NetAmount = models.Amount(net)
		if s, ok := byID[item.SettlementID]; ok {
			s.Items = append(s.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement items: %w", err)
	}

	return settlements, nil
}
