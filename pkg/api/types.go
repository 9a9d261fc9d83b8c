package api

// User is a registered account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
}

// Room is a shared ledger. MemberCount and JoinedAt are only filled in room lists.
type Room struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerID     string `json:"owner_id"`
	InviteCode  string `json:"invite_code"`
	CreatedAt   int64  `json:"created_at"`
	MemberCount int    `json:"member_count,omitempty"`
	JoinedAt    int64  `json:"joined_at,omitempty"`
}

// Member is a user's membership in a room.
type Member struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	DisplayName    string `json:"display_name"`
	Nickname       string `json:"nickname"`
	CustomNickname string `json:"custom_nickname,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	JoinedAt       int64  `json:"joined_at"`
	IsOwner        bool   `json:"is_owner"`

	// Balance is only set where balances are requested.
	Balance string `json:"balance,omitempty"`
}

// Transfer is a payment from payer to payee.
type Transfer struct {
	ID           string `json:"id"`
	RoomID       string `json:"room_id"`
	PayerID      string `json:"payer_id"`
	PayerName    string `json:"payer_name,omitempty"`
	PayeeID      string `json:"payee_id"`
	PayeeName    string `json:"payee_name,omitempty"`
	Amount       string `json:"amount"`
	Settled      bool   `json:"settled"`
	SettlementID string `json:"settlement_id,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// SettlementItem is one member's net amount in a settlement.
// Positive means the member received more than they paid.
type SettlementItem struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	NetAmount   string `json:"net_amount"`
}

// Settlement is a frozen batch of transfers.
type Settlement struct {
	ID        string           `json:"id"`
	RoomID    string           `json:"room_id"`
	CreatorID string           `json:"creator_id"`
	CreatedAt int64            `json:"created_at"`
	Items     []SettlementItem `json:"items"`
}
