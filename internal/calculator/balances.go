// Package calculator holds the pure ledger arithmetic shared by balance
// queries and settlements. Nothing here touches storage.
package calculator

import "github.com/mmynk/splitroom/internal/models"

// TransferForBalance is the minimal view of a transfer needed for netting.
type TransferForBalance struct {
	PayerID string
	PayeeID string
	Amount  models.Amount
}

// FromTransfers adapts stored transfers for netting.
func FromTransfers(transfers []*models.Transfer) []TransferForBalance {
	out := make([]TransferForBalance, len(transfers))
	for i, t := range transfers {
		out[i] = TransferForBalance{PayerID: t.PayerID, PayeeID: t.PayeeID, Amount: t.Amount}
	}
	return out
}

// NetOf computes received minus paid for every member over a batch of transfers.
//
// Every member is seeded with zero before accumulating, so members without
// transfers still appear. Amounts owed to or by users outside memberIDs are
// not reported.
func NetOf(transfers []TransferForBalance, memberIDs []string) map[string]models.Amount {
	net := make(map[string]models.Amount, len(memberIDs))
	for _, id := range memberIDs {
		net[id] = 0
	}

	for _, t := range transfers {
		if _, ok := net[t.PayeeID]; ok {
			net[t.PayeeID] += t.Amount
		}
		if _, ok := net[t.PayerID]; ok {
			net[t.PayerID] -= t.Amount
		}
	}
	return net
}

// Total sums a set of net amounts. A consistent batch totals zero.
func Total(net map[string]models.Amount) models.Amount {
	var sum models.Amount
	for _, amount := range net {
		sum += amount
	}
	return sum
}
