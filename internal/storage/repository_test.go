package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"casa/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "casa.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestExpenseRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.AddExpense(ctx, core.Expense{Name: "groceries", Amount: core.Money{Cents: 1234}})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if saved.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	expenses, err := repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Amount.Cents != 1234 {
		t.Fatalf("unexpected expenses: %+v", expenses)
	}

	if err := repo.DeleteExpenses(ctx, []int64{saved.ID}); err != nil {
		t.Fatalf("delete expenses: %v", err)
	}
	expenses, err = repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(expenses) != 0 {
		t.Fatalf("expected empty list, got %+v", expenses)
	}
}

func TestSeedCategoriesIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.SeedCategories(ctx, core.DefaultCategories)
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if added != 4 {
		t.Fatalf("first seed expected 4 inserts, got %d", added)
	}

	added, err = repo.SeedCategories(ctx, core.DefaultCategories)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if added != 0 {
		t.Fatalf("second seed expected 0 inserts, got %d", added)
	}

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 4 {
		t.Fatalf("expected exactly 4 categories, got %d", len(categories))
	}
	names := make(map[string]bool)
	for _, c := range categories {
		names[c.Name] = true
	}
	for _, want := range core.DefaultCategories {
		if !names[want] {
			t.Fatalf("missing seeded category %q", want)
		}
	}
}

func TestDeleteCategoryCascadesToItems(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat, err := repo.AddCategory(ctx, "Refrigerator")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	for _, name := range []string{"Milk", "Eggs", "Butter"} {
		if _, err := repo.AddItem(ctx, core.Item{
			CategoryID: cat.ID,
			Name:       name,
			Quantity:   1,
			Expiry:     core.NewDate(2026, 9, 10),
		}); err != nil {
			t.Fatalf("add item %s: %v", name, err)
		}
	}

	if err := repo.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 0 {
		t.Fatalf("category still present: %+v", categories)
	}
	items, err := repo.queries.ListKitchenItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cascade left %d orphaned items", len(items))
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.DeleteCategory(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddItemRequiresExistingCategory(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.AddItem(context.Background(), core.Item{
		CategoryID: 42,
		Name:       "Milk",
		Quantity:   1,
		Expiry:     core.NewDate(2026, 9, 10),
	})
	if err == nil {
		t.Fatalf("expected foreign key failure for unknown category")
	}
}

func TestAdjustItemQuantity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat, err := repo.AddCategory(ctx, "Pantry")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	item, err := repo.AddItem(ctx, core.Item{
		CategoryID: cat.ID,
		Name:       "Rice",
		Quantity:   2,
		Expiry:     core.NewDate(2027, 1, 1),
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	remaining, deleted, err := repo.AdjustItemQuantity(ctx, item.ID, +1)
	if err != nil || deleted || remaining != 3 {
		t.Fatalf("increment expected 3, got remaining=%d deleted=%v err=%v", remaining, deleted, err)
	}

	for want := 2; want >= 1; want-- {
		remaining, deleted, err = repo.AdjustItemQuantity(ctx, item.ID, -1)
		if err != nil || deleted || remaining != want {
			t.Fatalf("decrement expected %d, got remaining=%d deleted=%v err=%v", want, remaining, deleted, err)
		}
	}

	// Decrementing from one removes the item entirely.
	remaining, deleted, err = repo.AdjustItemQuantity(ctx, item.ID, -1)
	if err != nil || !deleted || remaining != 0 {
		t.Fatalf("final decrement expected deletion, got remaining=%d deleted=%v err=%v", remaining, deleted, err)
	}
	if _, _, err := repo.AdjustItemQuantity(ctx, item.ID, -1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after deletion, got %v", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task, err := repo.AddTask(ctx, core.Task{Title: "buy milk", Priority: core.PriorityHigh})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.Done {
		t.Fatalf("new task must start incomplete")
	}

	toggled, err := repo.ToggleTask(ctx, task.ID)
	if err != nil || !toggled.Done {
		t.Fatalf("first toggle expected done=true, got %+v err=%v", toggled, err)
	}
	toggled, err = repo.ToggleTask(ctx, task.ID)
	if err != nil || toggled.Done {
		t.Fatalf("second toggle expected done=false, got %+v err=%v", toggled, err)
	}

	if err := repo.DeleteTasks(ctx, []int64{task.ID}); err != nil {
		t.Fatalf("delete tasks: %v", err)
	}
	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %+v", tasks)
	}
}

func TestBlankTitleTaskIsStored(t *testing.T) {
	repo := newTestRepo(t)
	task, err := repo.AddTask(context.Background(), core.Task{Title: "", Priority: core.PriorityNone})
	if err != nil {
		t.Fatalf("blank-title task must be storable: %v", err)
	}
	if task.Title != "" || task.Priority != core.PriorityNone {
		t.Fatalf("unexpected task: %+v", task)
	}
}
