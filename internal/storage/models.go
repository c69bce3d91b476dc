package storage

// Row types mirror the SQLite schema. Timestamps and dates travel as TEXT
// (RFC 3339 for created_at, YYYY-MM-DD for expires_on); the repository
// converts to and from core types.

type Expense struct {
	ID          int64
	Name        string
	AmountCents int64
	CreatedAt   string
}

type Category struct {
	ID        int64
	Name      string
	CreatedAt string
}

type KitchenItem struct {
	ID         int64
	CategoryID int64
	Name       string
	Quantity   int64
	ExpiresOn  string
	CreatedAt  string
}

type Task struct {
	ID        int64
	Title     string
	Priority  string
	Done      bool
	CreatedAt string
}
