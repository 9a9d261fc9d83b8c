package models

// Room is a shared ledger context.
type Room struct {
	// ID is the unique identifier for the room (UUID format).
	ID string

	// Name is the display name of the room.
	Name string

	// CreatorID is the current owner. It changes when the owner leaves
	// and another member inherits the room.
	CreatorID string

	// InviteCode is the unique six-character code used to join.
	InviteCode string

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64
}

// RoomSummary is a room as seen from one member's room list.
type RoomSummary struct {
	Room
	MemberCount int
	JoinedAt    int64
}

// Member links a user to a room.
type Member struct {
	ID     string
	RoomID string
	UserID string

	// CustomNickname overrides the user's display name inside this room.
	// Empty means no override.
	CustomNickname string

	// JoinedAt orders owner succession: the earliest remaining joiner
	// inherits the room.
	JoinedAt int64

	// Nickname and AvatarURL are copied from the user record when the
	// member is loaded.
	Nickname  string
	AvatarURL string
}

// DisplayName prefers the room-scoped nickname over the global one.
func (m *Member) DisplayName() string {
	if m.CustomNickname != "" {
		return m.CustomNickname
	}
	return m.Nickname
}
