// Package service exposes the ledger engine over a small JSON HTTP API.
//
// The engine itself is not goroutine-safe; the service is the engine's
// caller and serializes access with a mutex, one logical session per
// process.
package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"divvy/internal/export"
	"divvy/internal/ledger"
	"divvy/internal/models"
)

// LedgerService handles HTTP requests against a single ledger session.
type LedgerService struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
}

// New creates a LedgerService around the given engine.
func New(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// Register attaches all API routes to the mux.
func (s *LedgerService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/participants", s.handleAddParticipant)
	mux.HandleFunc("DELETE /api/participants/{id}", s.handleRemoveParticipant)
	mux.HandleFunc("POST /api/expenses", s.handleAddExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleRemoveExpense)
	mux.HandleFunc("GET /api/ledger", s.handleGetLedger)
	mux.HandleFunc("DELETE /api/ledger", s.handleClear)
	mux.HandleFunc("GET /api/transfers", s.handleTransfers)
	mux.HandleFunc("PUT /api/currency", s.handleSetCurrency)
	mux.HandleFunc("GET /api/export", s.handleExport)
}

type addParticipantRequest struct {
	Name string `json:"name"`
}

func (s *LedgerService) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	s.mu.Lock()
	participant, err := s.ledger.AddParticipant(r.Context(), req.Name)
	s.mu.Unlock()
	if err != nil {
		slog.Warn("add participant rejected", "name", req.Name, "error", err)
		writeError(w, statusFor(err), err)
		return
	}

	slog.Info("participant added", "id", participant.ID, "name", participant.Name)
	writeJSON(w, http.StatusCreated, participant)
}

func (s *LedgerService) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	err := s.ledger.RemoveParticipant(r.Context(), id)
	s.mu.Unlock()
	if err != nil {
		slog.Warn("remove participant rejected", "id", id, "error", err)
		writeError(w, statusFor(err), err)
		return
	}

	slog.Info("participant removed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

type addExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paid_by"`
	Note        string  `json:"note"`
}

func (s *LedgerService) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	s.mu.Lock()
	expense, err := s.ledger.AddExpense(r.Context(), req.Description, req.Amount, req.PaidBy, req.Note)
	s.mu.Unlock()
	if err != nil {
		slog.Warn("add expense rejected", "description", req.Description, "error", err)
		writeError(w, statusFor(err), err)
		return
	}

	slog.Info("expense added", "id", expense.ID, "amount", expense.Amount, "paid_by", expense.PaidBy)
	writeJSON(w, http.StatusCreated, expense)
}

func (s *LedgerService) handleRemoveExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	s.ledger.RemoveExpense(r.Context(), id)
	s.mu.Unlock()

	slog.Info("expense removed", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

type ledgerResponse struct {
	Participants []models.Participant `json:"participants"`
	Expenses     []models.Expense     `json:"expenses"`
	Currency     string               `json:"currency"`
	Total        float64              `json:"total"`
	PerPerson    float64              `json:"per_person"`
}

func (s *LedgerService) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := ledgerResponse{
		Participants: s.ledger.Participants(),
		Expenses:     s.ledger.Expenses(),
		Currency:     s.ledger.Currency(),
		Total:        s.ledger.TotalExpense(),
		PerPerson:    s.ledger.PerPersonShare(),
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *LedgerService) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.ledger.ClearAllData(r.Context())
	s.mu.Unlock()

	slog.Info("ledger cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *LedgerService) handleTransfers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	participants := s.ledger.Participants()
	s.mu.Unlock()

	transfers := ledger.TransferSuggestions(participants)
	if transfers == nil {
		transfers = []models.Transfer{}
	}
	writeJSON(w, http.StatusOK, transfers)
}

type setCurrencyRequest struct {
	Currency string `json:"currency"`
}

func (s *LedgerService) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	var req setCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.Currency == "" {
		writeError(w, http.StatusUnprocessableEntity, errors.New("currency required"))
		return
	}

	s.mu.Lock()
	s.ledger.SetCurrency(r.Context(), req.Currency)
	s.mu.Unlock()

	slog.Info("currency set", "currency", req.Currency)
	w.WriteHeader(http.StatusNoContent)
}

func (s *LedgerService) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.ledger.State()
	s.mu.Unlock()

	report := export.Text(state, time.Now())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(report))
}

// statusFor maps engine validation failures to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrCapacityExceeded),
		errors.Is(err, ledger.ErrDuplicateName),
		errors.Is(err, ledger.ErrParticipantInUse):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
