package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitroom/pkg/api"
)

// RoomServiceName is the fully-qualified name of the RoomService service.
const RoomServiceName = "splitroom.v1.RoomService"

const (
	RoomServiceCreateRoomProcedure      = "/splitroom.v1.RoomService/CreateRoom"
	RoomServiceJoinRoomProcedure        = "/splitroom.v1.RoomService/JoinRoom"
	RoomServiceLeaveRoomProcedure       = "/splitroom.v1.RoomService/LeaveRoom"
	RoomServiceCloseRoomProcedure       = "/splitroom.v1.RoomService/CloseRoom"
	RoomServiceListRoomsProcedure       = "/splitroom.v1.RoomService/ListRooms"
	RoomServiceGetRoomProcedure         = "/splitroom.v1.RoomService/GetRoom"
	RoomServiceCheckMembershipProcedure = "/splitroom.v1.RoomService/CheckMembership"
	RoomServiceUpdateNicknameProcedure  = "/splitroom.v1.RoomService/UpdateNickname"
)

// RoomServiceClient is a client for the splitroom.v1.RoomService service.
type RoomServiceClient interface {
	CreateRoom(context.Context, *connect.Request[api.CreateRoomRequest]) (*connect.Response[api.CreateRoomResponse], error)
	JoinRoom(context.Context, *connect.Request[api.JoinRoomRequest]) (*connect.Response[api.JoinRoomResponse], error)
	LeaveRoom(context.Context, *connect.Request[api.LeaveRoomRequest]) (*connect.Response[api.LeaveRoomResponse], error)
	CloseRoom(context.Context, *connect.Request[api.CloseRoomRequest]) (*connect.Response[api.CloseRoomResponse], error)
	ListRooms(context.Context, *connect.Request[api.ListRoomsRequest]) (*connect.Response[api.ListRoomsResponse], error)
	GetRoom(context.Context, *connect.Request[api.GetRoomRequest]) (*connect.Response[api.GetRoomResponse], error)
	CheckMembership(context.Context, *connect.Request[api.CheckMembershipRequest]) (*connect.Response[api.CheckMembershipResponse], error)
	UpdateNickname(context.Context, *connect.Request[api.UpdateNicknameRequest]) (*connect.Response[api.UpdateNicknameResponse], error)
}

// NewRoomServiceClient constructs a client for the splitroom.v1.RoomService service.
func NewRoomServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RoomServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &roomServiceClient{
		createRoom:      connect.NewClient[api.CreateRoomRequest, api.CreateRoomResponse](httpClient, baseURL+RoomServiceCreateRoomProcedure, opts...),
		joinRoom:        connect.NewClient[api.JoinRoomRequest, api.JoinRoomResponse](httpClient, baseURL+RoomServiceJoinRoomProcedure, opts...),
		leaveRoom:       connect.NewClient[api.LeaveRoomRequest, api.LeaveRoomResponse](httpClient, baseURL+RoomServiceLeaveRoomProcedure, opts...),
		closeRoom:       connect.NewClient[api.CloseRoomRequest, api.CloseRoomResponse](httpClient, baseURL+RoomServiceCloseRoomProcedure, opts...),
		listRooms:       connect.NewClient[api.ListRoomsRequest, api.ListRoomsResponse](httpClient, baseURL+RoomServiceListRoomsProcedure, opts...),
		getRoom:         connect.NewClient[api.GetRoomRequest, api.GetRoomResponse](httpClient, baseURL+RoomServiceGetRoomProcedure, opts...),
		checkMembership: connect.NewClient[api.CheckMembershipRequest, api.CheckMembershipResponse](httpClient, baseURL+RoomServiceCheckMembershipProcedure, opts...),
		updateNickname:  connect.NewClient[api.UpdateNicknameRequest, api.UpdateNicknameResponse](httpClient, baseURL+RoomServiceUpdateNicknameProcedure, opts...),
	}
}

type roomServiceClient struct {
	createRoom      *connect.Client[api.CreateRoomRequest, api.CreateRoomResponse]
	joinRoom        *connect.Client[api.JoinRoomRequest, api.JoinRoomResponse]
	leaveRoom       *connect.Client[api.LeaveRoomRequest, api.LeaveRoomResponse]
	closeRoom       *connect.Client[api.CloseRoomRequest, api.CloseRoomResponse]
	listRooms       *connect.Client[api.ListRoomsRequest, api.ListRoomsResponse]
	getRoom         *connect.Client[api.GetRoomRequest, api.GetRoomResponse]
	checkMembership *connect.Client[api.CheckMembershipRequest, api.CheckMembershipResponse]
	updateNickname  *connect.Client[api.UpdateNicknameRequest, api.UpdateNicknameResponse]
}

func (c *roomServiceClient) CreateRoom(ctx context.Context, req *connect.Request[api.CreateRoomRequest]) (*connect.Response[api.CreateRoomResponse], error) {
	return c.createRoom.CallUnary(ctx, req)
}

func (c *roomServiceClient) JoinRoom(ctx context.Context, req *connect.Request[api.JoinRoomRequest]) (*connect.Response[api.JoinRoomResponse], error) {
	return c.joinRoom.CallUnary(ctx, req)
}

func (c *roomServiceClient) LeaveRoom(ctx context.Context, req *connect.Request[api.LeaveRoomRequest]) (*connect.Response[api.LeaveRoomResponse], error) {
	return c.leaveRoom.CallUnary(ctx, req)
}

func (c *roomServiceClient) CloseRoom(ctx context.Context, req *connect.Request[api.CloseRoomRequest]) (*connect.Response[api.CloseRoomResponse], error) {
	return c.closeRoom.CallUnary(ctx, req)
}

func (c *roomServiceClient) ListRooms(ctx context.Context, req *connect.Request[api.ListRoomsRequest]) (*connect.Response[api.ListRoomsResponse], error) {
	return c.listRooms.CallUnary(ctx, req)
}

func (c *roomServiceClient) GetRoom(ctx context.Context, req *connect.Request[api.GetRoomRequest]) (*connect.Response[api.GetRoomResponse], error) {
	return c.getRoom.CallUnary(ctx, req)
}

func (c *roomServiceClient) CheckMembership(ctx context.Context, req *connect.Request[api.CheckMembershipRequest]) (*connect.Response[api.CheckMembershipResponse], error) {
	return c.checkMembership.CallUnary(ctx, req)
}

func (c *roomServiceClient) UpdateNickname(ctx context.Context, req *connect.Request[api.UpdateNicknameRequest]) (*connect.Response[api.UpdateNicknameResponse], error) {
	return c.updateNickname.CallUnary(ctx, req)
}

// RoomServiceHandler is implemented by the splitroom.v1.RoomService server.
type RoomServiceHandler interface {
	CreateRoom(context.Context, *connect.Request[api.CreateRoomRequest]) (*connect.Response[api.CreateRoomResponse], error)
	JoinRoom(context.Context, *connect.Request[api.JoinRoomRequest]) (*connect.Response[api.JoinRoomResponse], error)
	LeaveRoom(context.Context, *connect.Request[api.LeaveRoomRequest]) (*connect.Response[api.LeaveRoomResponse], error)
	CloseRoom(context.Context, *connect.Request[api.CloseRoomRequest]) (*connect.Response[api.CloseRoomResponse], error)
	ListRooms(context.Context, *connect.Request[api.ListRoomsRequest]) (*connect.Response[api.ListRoomsResponse], error)
	GetRoom(context.Context, *connect.Request[api.GetRoomRequest]) (*connect.Response[api.GetRoomResponse], error)
	CheckMembership(context.Context, *connect.Request[api.CheckMembershipRequest]) (*connect.Response[api.CheckMembershipResponse], error)
	UpdateNickname(context.Context, *connect.Request[api.UpdateNicknameRequest]) (*connect.Response[api.UpdateNicknameResponse], error)
}

// NewRoomServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRoomServiceHandler(svc RoomServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + RoomServiceName + "/", router{
		RoomServiceCreateRoomProcedure:      connect.NewUnaryHandler(RoomServiceCreateRoomProcedure, svc.CreateRoom, opts...),
		RoomServiceJoinRoomProcedure:        connect.NewUnaryHandler(RoomServiceJoinRoomProcedure, svc.JoinRoom, opts...),
		RoomServiceLeaveRoomProcedure:       connect.NewUnaryHandler(RoomServiceLeaveRoomProcedure, svc.LeaveRoom, opts...),
		RoomServiceCloseRoomProcedure:       connect.NewUnaryHandler(RoomServiceCloseRoomProcedure, svc.CloseRoom, opts...),
		RoomServiceListRoomsProcedure:       connect.NewUnaryHandler(RoomServiceListRoomsProcedure, svc.ListRooms, opts...),
		RoomServiceGetRoomProcedure:         connect.NewUnaryHandler(RoomServiceGetRoomProcedure, svc.GetRoom, opts...),
		RoomServiceCheckMembershipProcedure: connect.NewUnaryHandler(RoomServiceCheckMembershipProcedure, svc.CheckMembership, opts...),
		RoomServiceUpdateNicknameProcedure:  connect.NewUnaryHandler(RoomServiceUpdateNicknameProcedure, svc.UpdateNickname, opts...),
	}
}

// UnimplementedRoomServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedRoomServiceHandler struct{}

func (UnimplementedRoomServiceHandler) CreateRoom(context.Context, *connect.Request[api.CreateRoomRequest]) (*connect.Response[api.CreateRoomResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.RoomService.CreateRoom is not implemented"))
}

func (UnimplementedRoomServiceHandler) JoinRoom(context.Context, *connect.Request[api.JoinRoomRequest]) (*connect.Response[api.JoinRoomResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.RoomService.JoinRoom is not implemented"))
}

func (UnimplementedRoomServiceHandler) LeaveRoom(context.Context, *connect.Request[api.LeaveRoomRequest]) (*connect.Response[api.LeaveRoomResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.RoomService.LeaveRoom is not implemented"))
}

func (UnimplementedRoomServiceHandler) CloseRoom(context.Context, *connect.Request[api.CloseRoomRequest]) (*connect.Response[api.CloseRoomResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.RoomService.CloseRoom is not implemented"))
}

func (UnimplementedRoomServiceHandler) ListRooms(context.Context, *connect.Request[api.ListRoomsRequest]) (*connect.Response[api.ListRoomsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.RoomService.ListRooms is not implemented"))
}

func (UnimplementedRoomServiceHandler) GetRoom(context.Context, *connect.Request[api.GetRoomRequest]) (*connect.Response[api.GetRoomResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.RoomService.GetRoom is not implemented"))
}

func (UnimplementedRoomServiceHandler) CheckMembership(context.Context, *connect.Request[api.CheckMembershipRequest]) (*connect.Response[api.CheckMembershipResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.RoomService.CheckMembership is not implemented"))
}

func (UnimplementedRoomServiceHandler) UpdateNickname(context.Context, *connect.Request[api.UpdateNicknameRequest]) (*connect.Response[api.UpdateNicknameResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.RoomService.UpdateNickname is not implemented"))
}
