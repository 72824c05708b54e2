// Package ledger implements the reconciliation engine: it owns the
// participant and expense collections, validates mutations, recomputes
// balances, and produces settlement transfer suggestions.
//
// The engine is not goroutine-safe; callers serialize access (one logical
// session per ledger). Persistence is a fire-and-forget side effect: a
// store failure is logged and never rolls back the in-memory mutation.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"divvy/internal/models"
	"divvy/internal/storage"
)

const (
	// MaxParticipants is the participant capacity of a single ledger.
	MaxParticipants = 5

	// DefaultCurrency labels new and cleared ledgers.
	DefaultCurrency = "TWD"

	// epsilon bounds floating-point noise in balance comparisons.
	epsilon = 0.01
)

// Ledger is the reconciliation engine for one expense-splitting session.
type Ledger struct {
	store storage.Store
	key   string

	participants []models.Participant
	expenses     []models.Expense
	currency     string
}

// New creates an empty ledger that persists its state under key.
func New(store storage.Store, key string) *Ledger {
	return &Ledger{
		store:    store,
		key:      key,
		currency: DefaultCurrency,
	}
}

// Load replaces the in-memory state with the state persisted under the
// ledger's key, applying defaults for absent fields, and recomputes
// balances. An absent state leaves the ledger empty.
func (l *Ledger) Load(ctx context.Context) error {
	state, err := l.store.Load(ctx, l.key)
	if err != nil {
		return fmt.Errorf("failed to load ledger %q: %w", l.key, err)
	}
	if state == nil {
		return nil
	}

	l.participants = state.Participants
	l.expenses = state.Expenses
	l.currency = state.Currency
	if l.currency == "" {
		l.currency = DefaultCurrency
	}

	l.CalculateBalances()
	return nil
}

// AddParticipant appends a new participant with zeroed derived fields.
// The name is trimmed before validation. Balances are not recomputed
// because the expense set did not change.
func (l *Ledger) AddParticipant(ctx context.Context, name string) (models.Participant, error) {
	name = strings.TrimSpace(name)

	if len(l.participants) >= MaxParticipants {
		return models.Participant{}, ErrCapacityExceeded
	}
	if name == "" {
		return models.Participant{}, ErrEmptyName
	}
	for _, p := range l.participants {
		if p.Name == name {
			return models.Participant{}, ErrDuplicateName
		}
	}

	participant := models.Participant{
		ID:   uuid.New().String(),
		Name: name,
	}
	l.participants = append(l.participants, participant)
	l.persist(ctx)
	return participant, nil
}

// RemoveParticipant removes the participant with the given id, provided no
// expense references it as payer. Removal changes the per-person divisor
// for every remaining expense share, so balances are recomputed.
func (l *Ledger) RemoveParticipant(ctx context.Context, id string) error {
	idx := -1
	for i, p := range l.participants {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	for _, e := range l.expenses {
		if e.PaidBy == id {
			return ErrParticipantInUse
		}
	}

	l.participants = append(l.participants[:idx], l.participants[idx+1:]...)
	l.CalculateBalances()
	l.persist(ctx)
	return nil
}

// AddExpense validates and appends a new expense, then recomputes
// balances. Validation order: description, amount, payer.
func (l *Ledger) AddExpense(ctx context.Context, description string, amount float64, paidBy, note string) (models.Expense, error) {
	description = strings.TrimSpace(description)

	if description == "" {
		return models.Expense{}, ErrInvalidDescription
	}
	if amount <= 0 {
		return models.Expense{}, ErrInvalidAmount
	}
	if !l.hasParticipant(paidBy) {
		return models.Expense{}, ErrPayerNotFound
	}

	expense := models.Expense{
		ID:          uuid.New().String(),
		Description: description,
		Amount:      amount,
		PaidBy:      paidBy,
		Note:        strings.TrimSpace(note),
		Timestamp:   time.Now(),
	}
	l.expenses = append(l.expenses, expense)
	l.CalculateBalances()
	l.persist(ctx)
	return expense, nil
}

// RemoveExpense removes the expense with the given id. Removing an absent
// id is a no-op, so the operation is idempotent and cannot fail.
func (l *Ledger) RemoveExpense(ctx context.Context, id string) {
	kept := l.expenses[:0]
	for _, e := range l.expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	l.expenses = kept
	l.CalculateBalances()
	l.persist(ctx)
}

// CalculateBalances recomputes every participant's derived fields from
// the current participant and expense sets. It is deterministic and
// idempotent. An expense whose payer no longer matches any participant
// still contributes to the total but to nobody's TotalPaid.
func (l *Ledger) CalculateBalances() {
	for i := range l.participants {
		l.participants[i].TotalPaid = 0
		l.participants[i].ShouldPay = 0
		l.participants[i].Balance = 0
	}

	totalExpense := 0.0
	for _, e := range l.expenses {
		totalExpense += e.Amount
	}
	if totalExpense == 0 || len(l.participants) == 0 {
		return
	}

	perPerson := totalExpense / float64(len(l.participants))

	for _, e := range l.expenses {
		for i := range l.participants {
			if l.participants[i].ID == e.PaidBy {
				l.participants[i].TotalPaid += e.Amount
				break
			}
		}
	}

	for i := range l.participants {
		l.participants[i].ShouldPay = perPerson
		l.participants[i].Balance = l.participants[i].TotalPaid - perPerson
	}
}

// SetCurrency sets the cosmetic currency label. No recomputation: the
// label never affects arithmetic.
func (l *Ledger) SetCurrency(ctx context.Context, label string) {
	l.currency = label
	l.persist(ctx)
}

// ClearAllData resets the ledger to its empty state with the default
// currency and clears the persisted state.
func (l *Ledger) ClearAllData(ctx context.Context) {
	l.participants = nil
	l.expenses = nil
	l.currency = DefaultCurrency

	if err := l.store.Clear(ctx, l.key); err != nil {
		slog.Warn("failed to clear persisted ledger", "key", l.key, "error", err)
	}
}

// Participants returns a copy of the participant sequence in insertion order.
func (l *Ledger) Participants() []models.Participant {
	out := make([]models.Participant, len(l.participants))
	copy(out, l.participants)
	return out
}

// Expenses returns a copy of the expense sequence in insertion order.
func (l *Ledger) Expenses() []models.Expense {
	out := make([]models.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Currency returns the ledger's currency label.
func (l *Ledger) Currency() string {
	return l.currency
}

// TotalExpense returns the sum of all expense amounts.
func (l *Ledger) TotalExpense() float64 {
	total := 0.0
	for _, e := range l.expenses {
		total += e.Amount
	}
	return total
}

// PerPersonShare returns the equal share of the total expense, or zero
// when the ledger has no participants.
func (l *Ledger) PerPersonShare() float64 {
	if len(l.participants) == 0 {
		return 0
	}
	return l.TotalExpense() / float64(len(l.participants))
}

// State returns a snapshot of the ledger suitable for persistence or export.
func (l *Ledger) State() *models.LedgerState {
	return &models.LedgerState{
		Participants: l.Participants(),
		Expenses:     l.Expenses(),
		Currency:     l.currency,
	}
}

func (l *Ledger) hasParticipant(id string) bool {
	for _, p := range l.participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (l *Ledger) persist(ctx context.Context) {
	if err := l.store.Save(ctx, l.key, l.State()); err != nil {
		slog.Warn("failed to persist ledger", "key", l.key, "error", err)
	}
}
