package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"casa/internal/core"

	_ "modernc.org/sqlite"
)

const (
	timestampLayout = time.RFC3339
	dateLayout      = "2006-01-02"
)

// ErrNotFound is returned when an id does not resolve to a stored record.
var ErrNotFound = errors.New("record not found")

// SQLiteRepository is the single persistent store for all three modules.
// The categories -> kitchen_items cascade is enforced by the engine, so
// deleting a category atomically removes every item it owns.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// foreign_keys must be set per connection for the cascade to fire
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddExpense inserts a new expense and returns it with its assigned id.
func (r *SQLiteRepository) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	row, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		Name:        e.Name,
		AmountCents: e.Amount.Cents,
		CreatedAt:   e.CreatedAt.UTC().Format(timestampLayout),
	})
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"expense_id", row.ID,
		"expense_name", row.Name,
		"amount_cents", row.AmountCents)

	return expenseFromRow(row)
}

// ListExpenses returns all expenses in creation order.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	expenses := make([]core.Expense, len(rows))
	for i, row := range rows {
		if expenses[i], err = expenseFromRow(row); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// DeleteExpenses removes the referenced expenses by stable id inside one
// transaction. Unknown ids are skipped rather than failing the batch.
func (r *SQLiteRepository) DeleteExpenses(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete expenses: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	for _, id := range ids {
		if err := qtx.DeleteExpense(ctx, id); err != nil {
			return fmt.Errorf("delete expense %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete expenses: %w", err)
	}

	slog.InfoContext(ctx, "Expenses deleted", "count", len(ids))
	return nil
}

// AddCategory inserts a new category.
func (r *SQLiteRepository) AddCategory(ctx context.Context, name string) (core.Category, error) {
	row, err := r.queries.CreateCategory(ctx, CreateCategoryParams{
		Name:      name,
		CreatedAt: time.Now().UTC().Format(timestampLayout),
	})
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	slog.InfoContext(ctx, "Category saved", "category_id", row.ID, "category_name", row.Name)
	return core.Category{ID: row.ID, Name: row.Name}, nil
}

// ListCategories returns all categories with their items attached, items
// already ordered by expiry date from the store.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	catRows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	itemRows, err := r.queries.ListKitchenItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list kitchen items: %w", err)
	}

	byCategory := make(map[int64][]core.Item)
	for _, row := range itemRows {
		item, err := itemFromRow(row)
		if err != nil {
			return nil, err
		}
		byCategory[row.CategoryID] = append(byCategory[row.CategoryID], item)
	}

	categories := make([]core.Category, len(catRows))
	for i, row := range catRows {
		categories[i] = core.Category{
			ID:    row.ID,
			Name:  row.Name,
			Items: byCategory[row.ID],
		}
	}
	return categories, nil
}

// DeleteCategory removes a category; the ON DELETE CASCADE constraint
// removes every owned item in the same implicit transaction.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := r.queries.GetCategory(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get category %d: %w", id, err)
	}
	if err := r.queries.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	slog.InfoContext(ctx, "Category deleted with its items", "category_id", id)
	return nil
}

// SeedCategories inserts the given names that are not already present.
// Matching is exact on name, so running it repeatedly never duplicates.
func (r *SQLiteRepository) SeedCategories(ctx context.Context, names []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed categories: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	existing, err := qtx.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categories for seeding: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[c.Name] = true
	}

	added := 0
	now := time.Now().UTC().Format(timestampLayout)
	for _, name := range names {
		if present[name] {
			continue
		}
		if _, err := qtx.CreateCategory(ctx, CreateCategoryParams{Name: name, CreatedAt: now}); err != nil {
			return 0, fmt.Errorf("seed category %q: %w", name, err)
		}
		added++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed categories: %w", err)
	}

	if added > 0 {
		slog.InfoContext(ctx, "Default categories seeded", "added", added)
	}
	return added, nil
}

// AddItem inserts a kitchen item linked to its category. A missing
// category id fails the foreign key check and nothing is inserted.
func (r *SQLiteRepository) AddItem(ctx context.Context, item core.Item) (core.Item, error) {
	row, err := r.queries.CreateKitchenItem(ctx, CreateKitchenItemParams{
		CategoryID: item.CategoryID,
		Name:       item.Name,
		Quantity:   int64(item.Quantity),
		ExpiresOn:  item.Expiry.Format(dateLayout),
		CreatedAt:  time.Now().UTC().Format(timestampLayout),
	})
	if err != nil {
		return core.Item{}, fmt.Errorf("create kitchen item: %w", err)
	}
	slog.InfoContext(ctx, "Kitchen item saved",
		"item_id", row.ID,
		"item_name", row.Name,
		"category_id", row.CategoryID,
		"quantity", row.Quantity)
	return itemFromRow(row)
}

// AdjustItemQuantity applies delta to the item's quantity inside one
// transaction. Reaching zero deletes the item, so a quantity below one is
// never observable. Reports the remaining quantity and whether the item
// was removed.
func (r *SQLiteRepository) AdjustItemQuantity(ctx context.Context, id int64, delta int) (remaining int, deleted bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("begin adjust quantity: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	row, err := qtx.GetKitchenItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, ErrNotFound
		}
		return 0, false, fmt.Errorf("get kitchen item %d: %w", id, err)
	}

	next := int(row.Quantity) + delta
	if next <= 0 {
		if err := qtx.DeleteKitchenItem(ctx, id); err != nil {
			return 0, false, fmt.Errorf("delete depleted item %d: %w", id, err)
		}
		if err := tx.Commit(); err != nil {
			return 0, false, fmt.Errorf("commit adjust quantity: %w", err)
		}
		slog.InfoContext(ctx, "Kitchen item depleted and removed", "item_id", id)
		return 0, true, nil
	}

	if err := qtx.UpdateKitchenItemQuantity(ctx, UpdateKitchenItemQuantityParams{
		Quantity: int64(next),
		ID:       id,
	}); err != nil {
		return 0, false, fmt.Errorf("update quantity for item %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("commit adjust quantity: %w", err)
	}
	return next, false, nil
}

// DeleteItem removes a kitchen item by id.
func (r *SQLiteRepository) DeleteItem(ctx context.Context, id int64) error {
	if err := r.queries.DeleteKitchenItem(ctx, id); err != nil {
		return fmt.Errorf("delete kitchen item %d: %w", id, err)
	}
	return nil
}

// AddTask inserts a task. Blank titles are stored as-is.
func (r *SQLiteRepository) AddTask(ctx context.Context, t core.Task) (core.Task, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	row, err := r.queries.CreateTask(ctx, CreateTaskParams{
		Title:     t.Title,
		Priority:  string(t.Priority),
		Done:      t.Done,
		CreatedAt: t.CreatedAt.UTC().Format(timestampLayout),
	})
	if err != nil {
		return core.Task{}, fmt.Errorf("create task: %w", err)
	}
	slog.InfoContext(ctx, "Task saved", "task_id", row.ID, "priority", row.Priority)
	return taskFromRow(row)
}

// ListTasks returns all tasks in creation order. Display ordering is the
// derived-view engine's job.
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]core.Task, error) {
	rows, err := r.queries.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]core.Task, len(rows))
	for i, row := range rows {
		if tasks[i], err = taskFromRow(row); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// ToggleTask flips the done flag and returns the updated task.
func (r *SQLiteRepository) ToggleTask(ctx context.Context, id int64) (core.Task, error) {
	row, err := r.queries.ToggleTask(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, ErrNotFound
		}
		return core.Task{}, fmt.Errorf("toggle task %d: %w", id, err)
	}
	return taskFromRow(row)
}

// DeleteTasks removes the referenced tasks by stable id in one transaction.
func (r *SQLiteRepository) DeleteTasks(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tasks: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	for _, id := range ids {
		if err := qtx.DeleteTask(ctx, id); err != nil {
			return fmt.Errorf("delete task %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tasks: %w", err)
	}

	slog.InfoContext(ctx, "Tasks deleted", "count", len(ids))
	return nil
}

func expenseFromRow(row Expense) (core.Expense, error) {
	createdAt, err := time.Parse(timestampLayout, row.CreatedAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense %d created_at: %w", row.ID, err)
	}
	return core.Expense{
		ID:        row.ID,
		Name:      row.Name,
		Amount:    core.Money{Cents: row.AmountCents},
		CreatedAt: createdAt,
	}, nil
}

func itemFromRow(row KitchenItem) (core.Item, error) {
	expiry, err := time.Parse(dateLayout, row.ExpiresOn)
	if err != nil {
		return core.Item{}, fmt.Errorf("parse item %d expires_on: %w", row.ID, err)
	}
	return core.Item{
		ID:         row.ID,
		CategoryID: row.CategoryID,
		Name:       row.Name,
		Quantity:   int(row.Quantity),
		Expiry:     core.Date{Time: expiry},
	}, nil
}

func taskFromRow(row Task) (core.Task, error) {
	createdAt, err := time.Parse(timestampLayout, row.CreatedAt)
	if err != nil {
		return core.Task{}, fmt.Errorf("parse task %d created_at: %w", row.ID, err)
	}
	return core.Task{
		ID:        row.ID,
		Title:     row.Title,
		Priority:  core.Priority(row.Priority),
		Done:      row.Done,
		CreatedAt: createdAt,
	}, nil
}
