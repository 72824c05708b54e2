package models

// Transfer represents a suggested payment from a debtor to a creditor.
type Transfer struct {
	From     string `json:"from"`
	FromName string `json:"from_name"`
	To       string `json:"to"`
	ToName   string `json:"to_name"`

	// Amount is rounded to the nearest whole currency unit for display.
	Amount float64 `json:"amount"`
}
