package ledger

import "errors"

// Validation failures surfaced by engine mutations. Validation always
// precedes any state change, so a returned error means nothing mutated.
var (
	ErrCapacityExceeded   = errors.New("participant limit reached")
	ErrEmptyName          = errors.New("participant name required")
	ErrDuplicateName      = errors.New("participant name already exists")
	ErrParticipantInUse   = errors.New("participant has recorded expenses")
	ErrNotFound           = errors.New("participant not found")
	ErrInvalidDescription = errors.New("expense description required")
	ErrInvalidAmount      = errors.New("expense amount must be greater than zero")
	ErrPayerNotFound      = errors.New("payer is not a participant")
)
