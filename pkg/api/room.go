package api

type CreateRoomRequest struct {
	// Name is optional; rooms without one are named after their owner.
	Name string `json:"name,omitempty"`
}

type CreateRoomResponse struct {
	Room *Room `json:"room"`
}

type JoinRoomRequest struct {
	InviteCode string `json:"invite_code"`
}

type JoinRoomResponse struct {
	Room          *Room     `json:"room"`
	Members       []*Member `json:"members"`
	AlreadyMember bool      `json:"already_member"`
}

type LeaveRoomRequest struct {
	RoomID string `json:"room_id"`
}

type LeaveRoomResponse struct {
	Message     string `json:"message"`
	NewOwnerID  string `json:"new_owner_id,omitempty"`
	RoomDeleted bool   `json:"room_deleted"`
}

type CloseRoomRequest struct {
	RoomID string `json:"room_id"`
}

type CloseRoomResponse struct{}

type ListRoomsRequest struct{}

type ListRoomsResponse struct {
	Rooms []*Room `json:"rooms"`
}

type GetRoomRequest struct {
	RoomID string `json:"room_id"`
}

type GetRoomResponse struct {
	Room    *Room     `json:"room"`
	Members []*Member `json:"members"`
}

// CheckMembershipRequest identifies the room by invite code or, failing
// that, by ID.
type CheckMembershipRequest struct {
	InviteCode string `json:"invite_code,omitempty"`
	RoomID     string `json:"room_id,omitempty"`
}

type CheckMembershipResponse struct {
	IsMember bool  `json:"is_member"`
	Room     *Room `json:"room"`
}

type UpdateNicknameRequest struct {
	RoomID   string `json:"room_id"`
	MemberID string `json:"member_id"`
	Nickname string `json:"nickname"`
}

type UpdateNicknameResponse struct {
	Member *Member `json:"member"`
}
