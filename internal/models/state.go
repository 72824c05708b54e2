package models

// LedgerState is the serialized snapshot of a ledger, as persisted by the
// storage layer. Absent fields default to empty slices and the TWD
// currency on load; the engine recomputes balances before the ledger is
// considered ready.
type LedgerState struct {
	Participants []Participant `json:"participants"`
	Expenses     []Expense     `json:"expenses"`
	Currency     string        `json:"currency"`
}
