// Package export renders a ledger snapshot as a human-readable text
// report. It consumes only read-only state and the engine's settlement
// suggestions; it never mutates ledger data.
package export

import (
	"fmt"
	"strings"
	"time"

	"divvy/internal/ledger"
	"divvy/internal/models"
)

// symbols maps known currency labels to display symbols. Unknown labels
// render as-is.
var symbols = map[string]string{
	"TWD": "NT$",
	"USD": "$",
	"JPY": "¥",
	"HKD": "HK$",
	"CNY": "¥",
}

// FormatAmount renders an amount as its absolute value with two decimals,
// prefixed by the currency symbol.
func FormatAmount(amount float64, currency string) string {
	symbol, ok := symbols[currency]
	if !ok {
		symbol = currency
	}
	if amount < 0 {
		amount = -amount
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// Text produces the full settlement report: expense details, totals,
// per-participant balances with a settled/owed/owes classification, and
// the transfer suggestions. now stamps the report header.
func Text(state *models.LedgerState, now time.Time) string {
	var b strings.Builder
	currency := state.Currency

	b.WriteString("=== Settlement Report ===\n")
	fmt.Fprintf(&b, "Exported: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Currency: %s\n\n", currency)

	b.WriteString("--- Expenses ---\n")
	totalExpense := 0.0
	for i, e := range state.Expenses {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e.Description)
		fmt.Fprintf(&b, "   Amount: %s\n", FormatAmount(e.Amount, currency))
		fmt.Fprintf(&b, "   Paid by: %s\n", payerName(state.Participants, e.PaidBy))
		if e.Note != "" {
			fmt.Fprintf(&b, "   Note: %s\n", e.Note)
		}
		fmt.Fprintf(&b, "   Time: %s\n\n", e.Timestamp.Format("2006-01-02 15:04:05"))
		totalExpense += e.Amount
	}

	fmt.Fprintf(&b, "Total: %s\n", FormatAmount(totalExpense, currency))
	if n := len(state.Participants); n > 0 {
		fmt.Fprintf(&b, "Per person: %s\n", FormatAmount(totalExpense/float64(n), currency))
	}
	b.WriteString("\n")

	b.WriteString("--- Balances ---\n")
	for _, p := range state.Participants {
		fmt.Fprintf(&b, "%s:\n", p.Name)
		fmt.Fprintf(&b, "  Paid: %s\n", FormatAmount(p.TotalPaid, currency))
		fmt.Fprintf(&b, "  Share: %s\n", FormatAmount(p.ShouldPay, currency))
		fmt.Fprintf(&b, "  Balance: %s %s\n\n", FormatAmount(p.Balance, currency), classify(p.Balance))
	}

	if transfers := ledger.TransferSuggestions(state.Participants); len(transfers) > 0 {
		b.WriteString("--- Suggested Transfers ---\n")
		for i, t := range transfers {
			fmt.Fprintf(&b, "%d. %s -> %s: %s\n", i+1, t.FromName, t.ToName, FormatAmount(t.Amount, currency))
		}
	}

	return b.String()
}

func classify(balance float64) string {
	switch {
	case balance > 0:
		return "(is owed)"
	case balance < 0:
		return "(owes)"
	default:
		return "(settled)"
	}
}

func payerName(participants []models.Participant, id string) string {
	for _, p := range participants {
		if p.ID == id {
			return p.Name
		}
	}
	return "unknown"
}
