package ledger

import (
	"context"
	"math"
	"testing"

	"divvy/internal/models"
	"divvy/internal/storage/memory"
)

func TestTransferSuggestions(t *testing.T) {
	ctx := context.Background()

	t.Run("three-way trip scenario", func(t *testing.T) {
		l := New(memory.New(), "test")
		ids := addParticipants(t, l, "Alice", "Bob", "Charlie")
		l.AddExpense(ctx, "Hotel", 300, ids["Alice"], "")
		l.AddExpense(ctx, "Food", 150, ids["Bob"], "")
		l.AddExpense(ctx, "Gas", 200, ids["Charlie"], "")

		transfers := TransferSuggestions(l.Participants())

		// Bob owes the most and is matched first; amounts are rounded to
		// whole units while the running balances keep the exact values.
		if len(transfers) != 2 {
			t.Fatalf("got %d transfers, want 2: %+v", len(transfers), transfers)
		}
		if transfers[0].FromName != "Bob" || transfers[0].ToName != "Alice" || transfers[0].Amount != 67 {
			t.Errorf("first transfer = %s -> %s %v, want Bob -> Alice 67",
				transfers[0].FromName, transfers[0].ToName, transfers[0].Amount)
		}
		if transfers[1].FromName != "Charlie" || transfers[1].ToName != "Alice" || transfers[1].Amount != 17 {
			t.Errorf("second transfer = %s -> %s %v, want Charlie -> Alice 17",
				transfers[1].FromName, transfers[1].ToName, transfers[1].Amount)
		}
	})

	t.Run("never mutates its input", func(t *testing.T) {
		l := New(memory.New(), "test")
		ids := addParticipants(t, l, "Alice", "Bob")
		l.AddExpense(ctx, "Dinner", 100, ids["Alice"], "")

		before := l.Participants()
		TransferSuggestions(before)

		for i, p := range l.Participants() {
			if p != before[i] {
				t.Errorf("participant %s changed: %+v vs %+v", p.Name, before[i], p)
			}
		}
		if math.Abs(before[0].Balance-50) > 0.01 {
			t.Errorf("snapshot balance = %v, want 50 (not consumed)", before[0].Balance)
		}
	})

	t.Run("settled ledger yields no transfers", func(t *testing.T) {
		participants := []models.Participant{
			{ID: "a", Name: "Alice", Balance: 0.005},
			{ID: "b", Name: "Bob", Balance: -0.005},
		}
		if got := TransferSuggestions(participants); len(got) != 0 {
			t.Errorf("got %d transfers, want 0", len(got))
		}
	})

	t.Run("one-sided input yields no transfers", func(t *testing.T) {
		creditorsOnly := []models.Participant{
			{ID: "a", Name: "Alice", Balance: 40},
			{ID: "b", Name: "Bob", Balance: 10},
		}
		if got := TransferSuggestions(creditorsOnly); len(got) != 0 {
			t.Errorf("got %d transfers, want 0", len(got))
		}
	})

	t.Run("drives every balance to zero within the transfer bound", func(t *testing.T) {
		participants := []models.Participant{
			{ID: "a", Name: "A", Balance: 50},
			{ID: "b", Name: "B", Balance: 30},
			{ID: "c", Name: "C", Balance: -40},
			{ID: "d", Name: "D", Balance: -25},
			{ID: "e", Name: "E", Balance: -15},
		}

		transfers := TransferSuggestions(participants)

		// 2 creditors + 3 debtors: at most 4 transfers.
		if len(transfers) > 4 {
			t.Errorf("got %d transfers, want at most 4", len(transfers))
		}

		// Whole-number balances, so rounding is the identity and applying
		// the transfers must settle everyone exactly.
		remaining := make(map[string]float64, len(participants))
		for _, p := range participants {
			remaining[p.ID] = p.Balance
		}
		for _, tr := range transfers {
			remaining[tr.From] += tr.Amount
			remaining[tr.To] -= tr.Amount
		}
		for id, bal := range remaining {
			if math.Abs(bal) > 0.01 {
				t.Errorf("participant %s left with balance %v after settlement", id, bal)
			}
		}
	})
}
