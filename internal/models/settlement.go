package models

// Settlement is an append-only snapshot that froze a room's unsettled transfers.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// RoomID is the room this settlement belongs to.
	RoomID string

	// CreatorID is the room owner who requested the settlement.
	CreatorID string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// Items holds one entry per member at settlement time.
	Items []SettlementItem
}

// SettlementItem is one member's net over a settled batch.
// Positive means the member received more than they paid.
type SettlementItem struct {
	SettlementID string
	UserID       string
	NetAmount    Amount
}
