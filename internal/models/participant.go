package models

// Participant represents one member of the ledger.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// Name is the display name, unique among current participants
	// (case-sensitive exact match).
	Name string `json:"name"`

	// TotalPaid is the sum of amounts of expenses this participant paid.
	// Derived; recomputed by the engine on every relevant mutation.
	TotalPaid float64 `json:"total_paid"`

	// ShouldPay is this participant's equal share of the total expense.
	ShouldPay float64 `json:"should_pay"`

	// Balance is TotalPaid - ShouldPay. Positive means the participant is
	// owed money, negative means they owe money.
	Balance float64 `json:"balance"`
}
