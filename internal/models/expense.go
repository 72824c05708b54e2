package models

import "time"

// Expense represents a single shared expense paid by one participant.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is a non-empty, trimmed summary of the expense.
	Description string `json:"description"`

	// Amount is the positive expense amount in the ledger's currency unit.
	Amount float64 `json:"amount"`

	// PaidBy references the ID of the participant who paid.
	PaidBy string `json:"paid_by"`

	// Note is an optional trimmed annotation.
	Note string `json:"note,omitempty"`

	// Timestamp is the creation time, used only for ordering and display.
	Timestamp time.Time `json:"timestamp"`
}
