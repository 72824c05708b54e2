package ledger

import (
	"math"
	"sort"

	"divvy/internal/models"
)

// TransferSuggestions produces the peer-to-peer transfers that settle the
// given balances, using a greedy single-pass matching of the largest
// creditor against the most negative debtor. It operates on its own
// copies of the balances and never mutates the caller's participants.
//
// Emitted amounts are rounded to the nearest whole currency unit for
// display; the running balances keep the unrounded amount so rounding
// error does not accumulate. The pass produces at most
// len(creditors)+len(debtors)-1 transfers and drives every working
// balance to within epsilon of zero.
func TransferSuggestions(participants []models.Participant) []models.Transfer {
	var creditors, debtors []models.Participant
	for _, p := range participants {
		switch {
		case p.Balance > epsilon:
			creditors = append(creditors, p)
		case p.Balance < -epsilon:
			debtors = append(debtors, p)
		}
	}
	if len(creditors) == 0 || len(debtors) == 0 {
		return nil
	}

	sort.Slice(creditors, func(i, j int) bool {
		return creditors[i].Balance > creditors[j].Balance
	})
	sort.Slice(debtors, func(i, j int) bool {
		return debtors[i].Balance < debtors[j].Balance
	})

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := math.Min(creditor.Balance, -debtor.Balance)
		if amount > epsilon {
			transfers = append(transfers, models.Transfer{
				From:     debtor.ID,
				FromName: debtor.Name,
				To:       creditor.ID,
				ToName:   creditor.Name,
				Amount:   math.Round(amount),
			})
			creditor.Balance -= amount
			debtor.Balance += amount
		}

		if math.Abs(creditor.Balance) < epsilon {
			i++
		}
		if math.Abs(debtor.Balance) < epsilon {
			j++
		}
	}

	return transfers
}
