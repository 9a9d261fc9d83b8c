package realtime

// Event types pushed to room members.
const (
	EventMemberJoined      = "member_joined"
	EventMemberLeft        = "member_left"
	EventMemberUpdated     = "member_updated"
	EventTransferCreated   = "transfer_created"
	EventSettlementCreated = "settlement_created"
	EventRoomClosed        = "room_closed"

	// eventClosed is the last frame a channel receives before the server hangs up.
	eventClosed = "closed"
)

// Event is the payload delivered on a realtime channel.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// CloseReason tells a client why its channel was closed.
type CloseReason struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

var (
	// CloseReplaced is sent when the same user opens a newer channel to the room.
	CloseReplaced = CloseReason{Code: 4000, Reason: "replaced"}

	// CloseUserLeft is sent when the user is no longer a member of the room.
	CloseUserLeft = CloseReason{Code: 1000, Reason: "user left room"}

	// CloseRoomClosed is sent to everyone when the room is torn down.
	CloseRoomClosed = CloseReason{Code: 1001, Reason: "room closed"}
)

// Handshake refusals. Clients retry on neither, but only an unauthorized
// refusal is worth a fresh login.
var (
	RefuseUnauthorized = CloseReason{Code: 4001, Reason: "unauthorized"}
	RefuseInvalidRoom  = CloseReason{Code: 4002, Reason: "invalid room"}
)
