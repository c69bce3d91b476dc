package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every query can run
// standalone or inside a transaction.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const createExpense = `
INSERT INTO expenses (name, amount_cents, created_at)
VALUES (?, ?, ?)
RETURNING id, name, amount_cents, created_at
`

type CreateExpenseParams struct {
	Name        string
	AmountCents int64
	CreatedAt   string
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (Expense, error) {
	row := q.db.QueryRowContext(ctx, createExpense, arg.Name, arg.AmountCents, arg.CreatedAt)
	var e Expense
	err := row.Scan(&e.ID, &e.Name, &e.AmountCents, &e.CreatedAt)
	return e, err
}

const listExpenses = `
SELECT id, name, amount_cents, created_at FROM expenses ORDER BY created_at, id
`

func (q *Queries) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.AmountCents, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

const deleteExpense = `
DELETE FROM expenses WHERE id = ?
`

func (q *Queries) DeleteExpense(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteExpense, id)
	return err
}

const createCategory = `
INSERT INTO categories (name, created_at)
VALUES (?, ?)
RETURNING id, name, created_at
`

type CreateCategoryParams struct {
	Name      string
	CreatedAt string
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	row := q.db.QueryRowContext(ctx, createCategory, arg.Name, arg.CreatedAt)
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt)
	return c, err
}

const listCategories = `
SELECT id, name, created_at FROM categories ORDER BY id
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const getCategory = `
SELECT id, name, created_at FROM categories WHERE id = ?
`

func (q *Queries) GetCategory(ctx context.Context, id int64) (Category, error) {
	row := q.db.QueryRowContext(ctx, getCategory, id)
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt)
	return c, err
}

const deleteCategory = `
DELETE FROM categories WHERE id = ?
`

func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteCategory, id)
	return err
}

const createKitchenItem = `
INSERT INTO kitchen_items (category_id, name, quantity, expires_on, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, category_id, name, quantity, expires_on, created_at
`

type CreateKitchenItemParams struct {
	CategoryID int64
	Name       string
	Quantity   int64
	ExpiresOn  string
	CreatedAt  string
}

func (q *Queries) CreateKitchenItem(ctx context.Context, arg CreateKitchenItemParams) (KitchenItem, error) {
	row := q.db.QueryRowContext(ctx, createKitchenItem,
		arg.CategoryID, arg.Name, arg.Quantity, arg.ExpiresOn, arg.CreatedAt)
	var it KitchenItem
	err := row.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Quantity, &it.ExpiresOn, &it.CreatedAt)
	return it, err
}

const getKitchenItem = `
SELECT id, category_id, name, quantity, expires_on, created_at
FROM kitchen_items WHERE id = ?
`

func (q *Queries) GetKitchenItem(ctx context.Context, id int64) (KitchenItem, error) {
	row := q.db.QueryRowContext(ctx, getKitchenItem, id)
	var it KitchenItem
	err := row.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Quantity, &it.ExpiresOn, &it.CreatedAt)
	return it, err
}

const listKitchenItems = `
SELECT id, category_id, name, quantity, expires_on, created_at
FROM kitchen_items ORDER BY expires_on, id
`

func (q *Queries) ListKitchenItems(ctx context.Context) ([]KitchenItem, error) {
	rows, err := q.db.QueryContext(ctx, listKitchenItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []KitchenItem
	for rows.Next() {
		var it KitchenItem
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Quantity, &it.ExpiresOn, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const updateKitchenItemQuantity = `
UPDATE kitchen_items SET quantity = ? WHERE id = ?
`

type UpdateKitchenItemQuantityParams struct {
	Quantity int64
	ID       int64
}

func (q *Queries) UpdateKitchenItemQuantity(ctx context.Context, arg UpdateKitchenItemQuantityParams) error {
	_, err := q.db.ExecContext(ctx, updateKitchenItemQuantity, arg.Quantity, arg.ID)
	return err
}

const deleteKitchenItem = `
DELETE FROM kitchen_items WHERE id = ?
`

func (q *Queries) DeleteKitchenItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteKitchenItem, id)
	return err
}

const countItemsByCategory = `
SELECT COUNT(*) FROM kitchen_items WHERE category_id = ?
`

func (q *Queries) CountItemsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countItemsByCategory, categoryID)
	var n int64
	err := row.Scan(&n)
	return n, err
}

const createTask = `
INSERT INTO tasks (title, priority, done, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, title, priority, done, created_at
`

type CreateTaskParams struct {
	Title     string
	Priority  string
	Done      bool
	CreatedAt string
}

func (q *Queries) CreateTask(ctx context.Context, arg CreateTaskParams) (Task, error) {
	row := q.db.QueryRowContext(ctx, createTask, arg.Title, arg.Priority, arg.Done, arg.CreatedAt)
	var t Task
	err := row.Scan(&t.ID, &t.Title, &t.Priority, &t.Done, &t.CreatedAt)
	return t, err
}

const listTasks = `
SELECT id, title, priority, done, created_at FROM tasks ORDER BY id
`

func (q *Queries) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := q.db.QueryContext(ctx, listTasks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Priority, &t.Done, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

const toggleTask = `
UPDATE tasks SET done = 1 - done WHERE id = ?
RETURNING id, title, priority, done, created_at
`

func (q *Queries) ToggleTask(ctx context.Context, id int64) (Task, error) {
	row := q.db.QueryRowContext(ctx, toggleTask, id)
	var t Task
	err := row.Scan(&t.ID, &t.Title, &t.Priority, &t.Done, &t.CreatedAt)
	return t, err
}

const deleteTask = `
DELETE FROM tasks WHERE id = ?
`

func (q *Queries) DeleteTask(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteTask, id)
	return err
}
