package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitroom/internal/ledger"
	"github.com/mmynk/splitroom/internal/middleware"
	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/pkg/api"
	"github.com/mmynk/splitroom/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService: transfers, balances
// and settlements.
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	engine *ledger.Engine
}

// NewLedgerService creates a LedgerService backed by the ledger engine.
func NewLedgerService(engine *ledger.Engine) *LedgerService {
	return &LedgerService{engine: engine}
}

// CreateTransfer records a payment from the caller to another member.
func (s *LedgerService) CreateTransfer(ctx context.Context, req *connect.Request[api.CreateTransferRequest]) (*connect.Response[api.CreateTransferResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("CreateTransfer request received",
		"user_id", userID,
		"room_id", req.Msg.RoomID,
		"payee_id", req.Msg.PayeeID,
		"amount", req.Msg.Amount,
	)

	amount, err := models.ParseAmount(req.Msg.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if req.Msg.PayeeID == "" {
		return nil, invalidArgument("payee_id is required")
	}

	transfer, err := s.engine.CreateTransfer(ctx, userID, req.Msg.RoomID, req.Msg.PayeeID, amount)
	if err != nil {
		return nil, toConnectError("CreateTransfer", err)
	}
	return connect.NewResponse(&api.CreateTransferResponse{Transfer: toAPITransfer(transfer)}), nil
}

// ListTransfers returns a page of the room's transfers, newest first.
func (s *LedgerService) ListTransfers(ctx context.Context, req *connect.Request[api.ListTransfersRequest]) (*connect.Response[api.ListTransfersResponse], error) {
	userID := middleware.GetUserID(ctx)

	page, err := s.engine.ListTransfers(ctx, userID, req.Msg.RoomID, req.Msg.Page, req.Msg.Limit)
	if err != nil {
		return nil, toConnectError("ListTransfers", err)
	}

	transfers := make([]*api.Transfer, len(page.Transfers))
	for i, t := range page.Transfers {
		transfers[i] = toAPITransfer(t.Transfer)
		transfers[i].PayerName = t.PayerName
		transfers[i].PayeeName = t.PayeeName
	}

	slog.Info("ListTransfers successful", "room_id", req.Msg.RoomID, "count", len(transfers), "total", page.Total)
	return connect.NewResponse(&api.ListTransfersResponse{
		Transfers: transfers,
		Pagination: &api.Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}), nil
}

// GetBalances returns every member's unsettled balance.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID := middleware.GetUserID(ctx)

	balances, err := s.engine.Balances(ctx, userID, req.Msg.RoomID)
	if err != nil {
		return nil, toConnectError("GetBalances", err)
	}
	return connect.NewResponse(&api.GetBalancesResponse{Members: toAPIMemberBalances(balances)}), nil
}

// CreateSettlement freezes the room's unsettled transfers. Owner only.
func (s *LedgerService) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	userID := middleware.GetUserID(ctx)
	slog.Info("CreateSettlement request received", "user_id", userID, "room_id", req.Msg.RoomID)

	result, err := s.engine.CreateSettlement(ctx, userID, req.Msg.RoomID)
	if err != nil {
		return nil, toConnectError("CreateSettlement", err)
	}
	return connect.NewResponse(&api.CreateSettlementResponse{Settlement: toAPISettlement(result)}), nil
}

// ListSettlements returns the room's settlement history.
func (s *LedgerService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	userID := middleware.GetUserID(ctx)

	results, err := s.engine.ListSettlements(ctx, userID, req.Msg.RoomID)
	if err != nil {
		return nil, toConnectError("ListSettlements", err)
	}

	settlements := make([]*api.Settlement, len(results))
	for i, r := range results {
		settlements[i] = toAPISettlement(r)
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: settlements}), nil
}
