package core

import (
	"errors"
	"strings"
	"time"
)

const (
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Priority"
	PriorityNone   Priority = "None"
)

type (
	// Priority is the task priority label as shown to the user.
	Priority string

	// Date is a calendar day. The time-of-day part is ignored by all
	// comparisons; DaysUntilExpiry truncates to start of day.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Expense struct {
		ID        int64
		Name      string
		Amount    Money
		CreatedAt time.Time
	}

	// Category groups kitchen items and owns them: deleting a category
	// removes every item it holds.
	Category struct {
		ID    int64
		Name  string
		Items []Item
	}

	// Item is a perishable kitchen item. Quantity never persists at zero;
	// a decrement that reaches zero deletes the item.
	Item struct {
		ID         int64
		CategoryID int64
		Name       string
		Quantity   int
		Expiry     Date
	}

	Task struct {
		ID        int64
		Title     string
		Priority  Priority
		Done      bool
		CreatedAt time.Time
	}
)

var (
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidExpiry   = errors.New("invalid expiry date")
	ErrNoCategory      = errors.New("no category selected")
	ErrInvalidPriority = errors.New("invalid priority")
)

// DefaultCategories is the fixed seeding list. Seeding only inserts the
// names missing from the store, so invoking it twice never duplicates.
var DefaultCategories = []string{"Refrigerator", "Freezer", "Cupboard", "Pantry"}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// StartOfDay truncates the date to midnight, preserving the location.
func (d Date) StartOfDay() time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidExpiry
	}
	return nil
}

// Rank maps a priority to its sort position: High sorts first, None last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityNormal:
		return 1
	default:
		return 2
	}
}

func (p Priority) Validate() error {
	switch p {
	case PriorityHigh, PriorityNormal, PriorityNone:
		return nil
	}
	return ErrInvalidPriority
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if len(e.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	return e.Amount.Validate()
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	return nil
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.CategoryID == 0 {
		return ErrNoCategory
	}
	if i.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return i.Expiry.Validate()
}

// Validate deliberately accepts a blank title: the upstream behavior allows
// creating a title-less task, and callers rely on that.
func (t Task) Validate() error {
	return t.Priority.Validate()
}
