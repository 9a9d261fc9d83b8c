package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitroom/internal/calculator"
	"github.com/mmynk/splitroom/internal/metrics"
	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/realtime"
	"github.com/mmynk/splitroom/internal/storage"
)

// SettlementLine is one member's share of a settlement, ready for display.
type SettlementLine struct {
	UserID      string
	DisplayName string
	AvatarURL   string
	NetAmount   models.Amount
}

// SettlementResult is a committed settlement with its resolved lines.
type SettlementResult struct {
	Settlement *models.Settlement
	Lines      []SettlementLine

	// TransferCount is the number of transfers the settlement froze.
	TransferCount int
}

// CreateSettlement freezes every unsettled transfer of the room into a new
// settlement with one line per current member, zero nets included. Only the
// owner may settle. The settlement row, its items and the transfer stamps
// are written in one transaction, so a concurrent second settlement sees
// nothing left to settle.
func (e *Engine) CreateSettlement(ctx context.Context, userID, roomID string) (*SettlementResult, error) {
	var result *SettlementResult
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		room, err := loadRoom(ctx, q, roomID)
		if err != nil {
			return err
		}
		if room.CreatorID != userID {
			return ErrNotOwner
		}

		unsettled, err := q.ListUnsettledTransfers(ctx, roomID)
		if err != nil {
			return fmt.Errorf("list unsettled transfers: %w", err)
		}
		members, err := q.ListMembers(ctx, roomID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}

		net := calculator.NetOf(calculator.FromTransfers(unsettled), memberIDs(members))
		if total := calculator.Total(net); total != 0 {
			slog.Warn("Settlement nets do not balance", "room_id", roomID, "total", total.String())
		}

		settlement := &models.Settlement{RoomID: roomID, CreatorID: userID}
		lines := make([]SettlementLine, len(members))
		for i, m := range members {
			settlement.Items = append(settlement.Items, models.SettlementItem{
				UserID:    m.UserID,
				NetAmount: net[m.UserID],
			})
			lines[i] = SettlementLine{
				UserID:      m.UserID,
				DisplayName: m.DisplayName(),
				AvatarURL:   m.AvatarURL,
				NetAmount:   net[m.UserID],
			}
		}

		if err := q.CreateSettlement(ctx, settlement); err != nil {
			return fmt.Errorf("create settlement: %w", err)
		}
		if len(unsettled) > 0 {
			ids := make([]string, len(unsettled))
			for i, t := range unsettled {
				ids[i] = t.ID
			}
			if err := q.MarkTransfersSettled(ctx, roomID, settlement.ID, ids); err != nil {
				return fmt.Errorf("stamp transfers: %w", err)
			}
		}

		result = &SettlementResult{Settlement: settlement, Lines: lines, TransferCount: len(unsettled)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SettlementsCreated.Inc()
	metrics.TransfersSettled.Add(float64(result.TransferCount))
	slog.Info("Settlement created",
		"room_id", roomID,
		"settlement_id", result.Settlement.ID,
		"transfers", result.TransferCount,
		"members", len(result.Lines),
	)

	e.notifier.Broadcast(roomID, realtime.Event{
		Type: realtime.EventSettlementCreated,
		Data: settlementPayload{
			ID:        result.Settlement.ID,
			CreatedAt: result.Settlement.CreatedAt,
			Items:     newSettlementItemPayloads(result.Lines),
		},
	})
	return result, nil
}

// ListSettlements returns the room's settlement history, newest first.
func (e *Engine) ListSettlements(ctx context.Context, userID, roomID string) ([]*SettlementResult, error) {
	var results []*SettlementResult
	err := e.store.InTx(ctx, func(q storage.Queries) error {
		if _, _, err := requireMember(ctx, q, roomID, userID); err != nil {
			return err
		}

		settlements, err := q.ListSettlements(ctx, roomID)
		if err != nil {
			return fmt.Errorf("list settlements: %w", err)
		}
		names, err := newNameResolver(ctx, q, roomID)
		if err != nil {
			return err
		}

		results = make([]*SettlementResult, len(settlements))
		for i, s := range settlements {
			lines := make([]SettlementLine, len(s.Items))
			for j, item := range s.Items {
				lines[j] = SettlementLine{
					UserID:      item.UserID,
					DisplayName: names.name(ctx, item.UserID),
					NetAmount:   item.NetAmount,
				}
				if m, ok := names.member(item.UserID); ok {
					lines[j].AvatarURL = m.AvatarURL
				}
			}
			results[i] = &SettlementResult{Settlement: s, Lines: lines}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

type settlementItemPayload struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	NetAmount   string `json:"net_amount"`
}

type settlementPayload struct {
	ID        string                  `json:"id"`
	CreatedAt int64                   `json:"created_at"`
	Items     []settlementItemPayload `json:"items"`
}

func newSettlementItemPayloads(lines []SettlementLine) []settlementItemPayload {
	items := make([]settlementItemPayload, len(lines))
	for i, l := range lines {
		items[i] = settlementItemPayload{
			UserID:      l.UserID,
			DisplayName: l.DisplayName,
			Avatar:      l.AvatarURL,
			NetAmount:   l.NetAmount.String(),
		}
	}
	return items
}
