package api

type CreateTransferRequest struct {
	RoomID  string `json:"room_id"`
	PayeeID string `json:"payee_id"`
	Amount  string `json:"amount"`
}

type CreateTransferResponse struct {
	Transfer *Transfer `json:"transfer"`
}

type ListTransfersRequest struct {
	RoomID string `json:"room_id"`
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type ListTransfersResponse struct {
	Transfers  []*Transfer `json:"transfers"`
	Pagination *Pagination `json:"pagination"`
}

type GetBalancesRequest struct {
	RoomID string `json:"room_id"`
}

type GetBalancesResponse struct {
	Members []*Member `json:"members"`
}

type CreateSettlementRequest struct {
	RoomID string `json:"room_id"`
}

type CreateSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	RoomID string `json:"room_id"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}
