package service

import (
	"github.com/mmynk/splitroom/internal/ledger"
	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIRoom(r *models.Room) *api.Room {
	return &api.Room{
		ID:         r.ID,
		Name:       r.Name,
		OwnerID:    r.CreatorID,
		InviteCode: r.InviteCode,
		CreatedAt:  r.CreatedAt,
	}
}

func toAPIMember(m *models.Member, ownerID string) *api.Member {
	return &api.Member{
		ID:             m.ID,
		UserID:         m.UserID,
		DisplayName:    m.DisplayName(),
		Nickname:       m.Nickname,
		CustomNickname: m.CustomNickname,
		AvatarURL:      m.AvatarURL,
		JoinedAt:       m.JoinedAt,
		IsOwner:        m.UserID == ownerID,
	}
}

func toAPIMemberBalances(balances []ledger.MemberBalance) []*api.Member {
	out := make([]*api.Member, len(balances))
	for i, b := range balances {
		m := toAPIMember(b.Member, "")
		m.IsOwner = b.IsOwner
		m.Balance = b.Balance.String()
		out[i] = m
	}
	return out
}

func toAPITransfer(t *models.Transfer) *api.Transfer {
	return &api.Transfer{
		ID:           t.ID,
		RoomID:       t.RoomID,
		PayerID:      t.PayerID,
		PayeeID:      t.PayeeID,
		Amount:       t.Amount.String(),
		Settled:      t.Settled(),
		SettlementID: t.SettlementID,
		CreatedAt:    t.CreatedAt,
	}
}

func toAPISettlement(r *ledger.SettlementResult) *api.Settlement {
	s := &api.Settlement{
		ID:        r.Settlement.ID,
		RoomID:    r.Settlement.RoomID,
		CreatorID: r.Settlement.CreatorID,
		CreatedAt: r.Settlement.CreatedAt,
		Items:     make([]api.SettlementItem, len(r.Lines)),
	}
	for i, l := range r.Lines {
		s.Items[i] = api.SettlementItem{
			UserID:      l.UserID,
			DisplayName: l.DisplayName,
			Avatar:      l.AvatarURL,
			NetAmount:   l.NetAmount.String(),
		}
	}
	return s
}
