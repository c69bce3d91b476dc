package http

import (
	"log/slog"
	"net/http"
	"time"

	"casa/internal/core"
)

type expenseResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	AmountCents int64   `json:"amount_cents"`
	Amount      float64 `json:"amount"`
	CreatedAt   string  `json:"created_at"`
}

type createExpenseRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type deleteByIDsRequest struct {
	IDs []int64 `json:"ids"`
}

type monthTotalResponse struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	TotalCents int64 `json:"total_cents"`
}

type budgetSummaryResponse struct {
	TotalCents int64                `json:"total_cents"`
	Total      float64              `json:"total"`
	Monthly    []monthTotalResponse `json:"monthly"`
}

func expenseToResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Name:        e.Name,
		AmountCents: e.Amount.Cents,
		Amount:      e.Amount.Units(),
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.budget.ListExpenses(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToResponse(e)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	expense, err := s.budget.AddExpense(r.Context(), sanitizeInput(req.Name), req.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Expense created",
		"expense_id", expense.ID,
		"expense_name", expense.Name,
		"amount_cents", expense.Amount.Cents)
	respondJSON(w, http.StatusCreated, expenseToResponse(expense))
}

func (s *Server) handleDeleteExpenses(w http.ResponseWriter, r *http.Request) {
	var req deleteByIDsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := s.budget.DeleteExpenses(r.Context(), req.IDs); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"deleted": len(req.IDs)})
}

func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.budget.Summary(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := budgetSummaryResponse{
		TotalCents: summary.Total.Cents,
		Total:      summary.Total.Units(),
		Monthly:    make([]monthTotalResponse, len(summary.Monthly)),
	}
	for i, m := range summary.Monthly {
		out.Monthly[i] = monthTotalResponse{Year: m.Year, Month: m.Month, TotalCents: m.Total.Cents}
	}
	respondJSON(w, http.StatusOK, out)
}
