package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitroom/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "splitroom.v1.LedgerService"

const (
	LedgerServiceCreateTransferProcedure   = "/splitroom.v1.LedgerService/CreateTransfer"
	LedgerServiceListTransfersProcedure    = "/splitroom.v1.LedgerService/ListTransfers"
	LedgerServiceGetBalancesProcedure      = "/splitroom.v1.LedgerService/GetBalances"
	LedgerServiceCreateSettlementProcedure = "/splitroom.v1.LedgerService/CreateSettlement"
	LedgerServiceListSettlementsProcedure  = "/splitroom.v1.LedgerService/ListSettlements"
)

// LedgerServiceClient is a client for the splitroom.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateTransfer(context.Context, *connect.Request[api.CreateTransferRequest]) (*connect.Response[api.CreateTransferResponse], error)
	ListTransfers(context.Context, *connect.Request[api.ListTransfersRequest]) (*connect.Response[api.ListTransfersResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
}

// NewLedgerServiceClient constructs a client for the splitroom.v1.LedgerService service.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		createTransfer:   connect.NewClient[api.CreateTransferRequest, api.CreateTransferResponse](httpClient, baseURL+LedgerServiceCreateTransferProcedure, opts...),
		listTransfers:    connect.NewClient[api.ListTransfersRequest, api.ListTransfersResponse](httpClient, baseURL+LedgerServiceListTransfersProcedure, opts...),
		getBalances:      connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		createSettlement: connect.NewClient[api.CreateSettlementRequest, api.CreateSettlementResponse](httpClient, baseURL+LedgerServiceCreateSettlementProcedure, opts...),
		listSettlements:  connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](httpClient, baseURL+LedgerServiceListSettlementsProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createTransfer   *connect.Client[api.CreateTransferRequest, api.CreateTransferResponse]
	listTransfers    *connect.Client[api.ListTransfersRequest, api.ListTransfersResponse]
	getBalances      *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	createSettlement *connect.Client[api.CreateSettlementRequest, api.CreateSettlementResponse]
	listSettlements  *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
}

func (c *ledgerServiceClient) CreateTransfer(ctx context.Context, req *connect.Request[api.CreateTransferRequest]) (*connect.Response[api.CreateTransferResponse], error) {
	return c.createTransfer.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListTransfers(ctx context.Context, req *connect.Request[api.ListTransfersRequest]) (*connect.Response[api.ListTransfersResponse], error) {
	return c.listTransfers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return c.createSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by the splitroom.v1.LedgerService server.
type LedgerServiceHandler interface {
	CreateTransfer(context.Context, *connect.Request[api.CreateTransferRequest]) (*connect.Response[api.CreateTransferResponse], error)
	ListTransfers(context.Context, *connect.Request[api.ListTransfersRequest]) (*connect.Response[api.ListTransfersResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + LedgerServiceName + "/", router{
		LedgerServiceCreateTransferProcedure:   connect.NewUnaryHandler(LedgerServiceCreateTransferProcedure, svc.CreateTransfer, opts...),
		LedgerServiceListTransfersProcedure:    connect.NewUnaryHandler(LedgerServiceListTransfersProcedure, svc.ListTransfers, opts...),
		LedgerServiceGetBalancesProcedure:      connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...),
		LedgerServiceCreateSettlementProcedure: connect.NewUnaryHandler(LedgerServiceCreateSettlementProcedure, svc.CreateSettlement, opts...),
		LedgerServiceListSettlementsProcedure:  connect.NewUnaryHandler(LedgerServiceListSettlementsProcedure, svc.ListSettlements, opts...),
	}
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) CreateTransfer(context.Context, *connect.Request[api.CreateTransferRequest]) (*connect.Response[api.CreateTransferResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.LedgerService.CreateTransfer is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListTransfers(context.Context, *connect.Request[api.ListTransfersRequest]) (*connect.Response[api.ListTransfersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.LedgerService.ListTransfers is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.LedgerService.GetBalances is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.LedgerService.CreateSettlement is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitroom.v1.LedgerService.ListSettlements is not implemented"))
}
