package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"casa/internal/core"
	"casa/internal/storage"
)

// BudgetService implements the expense mutation operations and the budget
// summary view. Validation happens here, before anything touches the store.
type BudgetService struct {
	storage *storage.SQLiteRepository
}

// BudgetSummary is the derived budget view: the running total plus the
// per-month breakdown, both recomputed from the full expense list.
type BudgetSummary struct {
	Total   core.Money
	Monthly []core.MonthTotal
}

func NewBudgetService(storage *storage.SQLiteRepository) *BudgetService {
	return &BudgetService{storage: storage}
}

// AddExpense parses and validates the raw form values, then commits.
// The amount accepts dot or comma decimals and must be non-negative.
func (s *BudgetService) AddExpense(ctx context.Context, name, amount string) (core.Expense, error) {
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	expense := core.Expense{
		Name:   strings.TrimSpace(name),
		Amount: core.Money{Cents: cents},
	}
	if err := expense.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	saved, err := s.storage.AddExpense(ctx, expense)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	return saved, nil
}

// ListExpenses returns all expenses in creation order.
func (s *BudgetService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx)
}

// DeleteExpenses removes expenses by stable id, never by view position.
func (s *BudgetService) DeleteExpenses(ctx context.Context, ids []int64) error {
	if err := s.storage.DeleteExpenses(ctx, ids); err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}
	return nil
}

// Summary recomputes the budget totals from the current expense list.
func (s *BudgetService) Summary(ctx context.Context) (BudgetSummary, error) {
	expenses, err := s.storage.ListExpenses(ctx)
	if err != nil {
		return BudgetSummary{}, fmt.Errorf("list expenses for summary: %w", err)
	}
	summary := BudgetSummary{
		Total:   core.Total(expenses),
		Monthly: core.MonthlyTotals(expenses),
	}
	slog.DebugContext(ctx, "Budget summary computed",
		"expenses", len(expenses),
		"total_cents", summary.Total.Cents)
	return summary, nil
}
