package models

// Transfer is a directed money movement from payer to payee inside a room.
// It is immutable except for SettlementID, which is stamped exactly once.
type Transfer struct {
	ID      string
	RoomID  string
	PayerID string
	PayeeID string
	Amount  Amount

	// SettlementID is empty while the transfer is live (unsettled).
	SettlementID string

	CreatedAt int64
}

// Settled reports whether the transfer has been frozen into a settlement.
func (t *Transfer) Settled() bool {
	return t.SettlementID != ""
}
