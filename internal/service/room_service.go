package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitroom/internal/ledger"
	"github.com/mmynk/splitroom/internal/middleware"
	"github.com/mmynk/splitroom/pkg/api"
	"github.com/mmynk/splitroom/pkg/api/apiconnect"
)

// RoomService implements the Connect RoomService.
type RoomService struct {
	apiconnect.UnimplementedRoomServiceHandler
	engine *ledger.Engine
}

// NewRoomService creates a RoomService backed by the ledger engine.
func NewRoomService(engine *ledger.Engine) *RoomService {
	return &RoomService{engine: engine}
}

// CreateRoom creates a room owned by the caller.
func (s *RoomService) CreateRoom(ctx context.Context, req *connect.Request[api.CreateRoomRequest]) (*connect.Response[api.CreateRoomResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("CreateRoom request received", "user_id", userID, "name", req.Msg.Name)

	room, err := s.engine.CreateRoom(ctx, userID, req.Msg.Name)
	if err != nil {
		return nil, toConnectError("CreateRoom", err)
	}

	slog.Info("Room created", "room_id", room.ID, "invite_code", room.InviteCode)
	return connect.NewResponse(&api.CreateRoomResponse{Room: toAPIRoom(room)}), nil
}

// JoinRoom joins the room behind an invite code. Joining twice is harmless.
func (s *RoomService) JoinRoom(ctx context.Context, req *connect.Request[api.JoinRoomRequest]) (*connect.Response[api.JoinRoomResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("JoinRoom request received", "user_id", userID, "invite_code", req.Msg.InviteCode)

	result, err := s.engine.Join(ctx, userID, req.Msg.InviteCode)
	if err != nil {
		return nil, toConnectError("JoinRoom", err)
	}

	members := make([]*api.Member, len(result.Members))
	for i, m := range result.Members {
		members[i] = toAPIMember(m, result.Room.CreatorID)
	}
	return connect.NewResponse(&api.JoinRoomResponse{
		Room:          toAPIRoom(result.Room),
		Members:       members,
		AlreadyMember: result.AlreadyMember,
	}), nil
}

// LeaveRoom removes the caller from a room.
func (s *RoomService) LeaveRoom(ctx context.Context, req *connect.Request[api.LeaveRoomRequest]) (*connect.Response[api.LeaveRoomResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("LeaveRoom request received", "user_id", userID, "room_id", req.Msg.RoomID)

	if req.Msg.RoomID == "" {
		return nil, invalidArgument("room_id is required")
	}

	result, err := s.engine.Leave(ctx, userID, req.Msg.RoomID)
	if err != nil {
		return nil, toConnectError("LeaveRoom", err)
	}

	message := "left room"
	switch {
	case result.RoomDeleted:
		message = "left room; room deleted"
	case result.NewOwnerID != "":
		message = "left room; ownership transferred"
	}
	return connect.NewResponse(&api.LeaveRoomResponse{
		Message:     message,
		NewOwnerID:  result.NewOwnerID,
		RoomDeleted: result.RoomDeleted,
	}), nil
}

// CloseRoom deletes a room and its ledger. Owner only.
func (s *RoomService) CloseRoom(ctx context.Context, req *connect.Request[api.CloseRoomRequest]) (*connect.Response[api.CloseRoomResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("CloseRoom request received", "user_id", userID, "room_id", req.Msg.RoomID)

	if req.Msg.RoomID == "" {
		return nil, invalidArgument("room_id is required")
	}
	if err := s.engine.CloseRoom(ctx, userID, req.Msg.RoomID); err != nil {
		return nil, toConnectError("CloseRoom", err)
	}
	return connect.NewResponse(&api.CloseRoomResponse{}), nil
}

// ListRooms returns the caller's rooms, most recently joined first.
func (s *RoomService) ListRooms(ctx context.Context, req *connect.Request[api.ListRoomsRequest]) (*connect.Response[api.ListRoomsResponse], error) {
	userID := middleware.GetUserID(ctx)

	rooms, err := s.engine.ListRooms(ctx, userID)
	if err != nil {
		return nil, toConnectError("ListRooms", err)
	}

	out := make([]*api.Room, len(rooms))
	for i, r := range rooms {
		out[i] = toAPIRoom(&r.Room)
		out[i].MemberCount = r.MemberCount
		out[i].JoinedAt = r.JoinedAt
	}

	slog.Info("ListRooms successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListRoomsResponse{Rooms: out}), nil
}

// GetRoom returns a room with its members and their unsettled balances.
func (s *RoomService) GetRoom(ctx context.Context, req *connect.Request[api.GetRoomRequest]) (*connect.Response[api.GetRoomResponse], error) {
	userID := middleware.GetUserID(ctx)

	detail, err := s.engine.GetRoom(ctx, userID, req.Msg.RoomID)
	if err != nil {
		return nil, toConnectError("GetRoom", err)
	}
	return connect.NewResponse(&api.GetRoomResponse{
		Room:    toAPIRoom(detail.Room),
		Members: toAPIMemberBalances(detail.Members),
	}), nil
}

// CheckMembership tells a client whether to show a join prompt for a room.
func (s *RoomService) CheckMembership(ctx context.Context, req *connect.Request[api.CheckMembershipRequest]) (*connect.Response[api.CheckMembershipResponse], error) {
	userID := middleware.GetUserID(ctx)

	if req.Msg.InviteCode == "" && req.Msg.RoomID == "" {
		return nil, invalidArgument("invite_code or room_id is required")
	}

	isMember, room, err := s.engine.CheckMembership(ctx, userID, req.Msg.InviteCode, req.Msg.RoomID)
	if err != nil {
		return nil, toConnectError("CheckMembership", err)
	}
	return connect.NewResponse(&api.CheckMembershipResponse{IsMember: isMember, Room: toAPIRoom(room)}), nil
}

// UpdateNickname sets the caller's nickname inside a room.
func (s *RoomService) UpdateNickname(ctx context.Context, req *connect.Request[api.UpdateNicknameRequest]) (*connect.Response[api.UpdateNicknameResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("UpdateNickname request received", "user_id", userID, "room_id", req.Msg.RoomID, "member_id", req.Msg.MemberID)

	member, err := s.engine.UpdateNickname(ctx, userID, req.Msg.RoomID, req.Msg.MemberID, req.Msg.Nickname)
	if err != nil {
		return nil, toConnectError("UpdateNickname", err)
	}
	return connect.NewResponse(&api.UpdateNicknameResponse{Member: toAPIMember(member, "")}), nil
}
