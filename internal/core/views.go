package core

import (
	"sort"
	"strings"
	"time"
)

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencyWarning Urgency = "warning"
	UrgencyNormal  Urgency = "normal"
)

// Urgency is the derived expiry classification of a kitchen item. It is
// computed at read time against an explicit "now" and never stored, so the
// same item can classify differently between two renders without mutation.
type Urgency string

// MonthTotal is an amount aggregated over one calendar month.
type MonthTotal struct {
	Year  int
	Month int // 1-12
	Total Money
}

// ItemPreviewLimit caps how many items a category view shows before
// collapsing the rest into a remainder count.
const ItemPreviewLimit = 5

// Total sums the amounts of all expenses. Empty input yields zero.
func Total(expenses []Expense) Money {
	var cents int64
	for _, e := range expenses {
		cents += e.Amount.Cents
	}
	return Money{Cents: cents}
}

// MonthlyTotals aggregates expense amounts by calendar month of creation,
// ordered chronologically. The monthly totals partition Total exactly.
func MonthlyTotals(expenses []Expense) []MonthTotal {
	type key struct{ year, month int }
	sums := make(map[key]int64)
	for _, e := range expenses {
		k := key{e.CreatedAt.Year(), int(e.CreatedAt.Month())}
		sums[k] += e.Amount.Cents
	}
	keys := make([]key, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	totals := make([]MonthTotal, len(keys))
	for i, k := range keys {
		totals[i] = MonthTotal{Year: k.year, Month: k.month, Total: Money{Cents: sums[k]}}
	}
	return totals
}

// FilterCategories returns the categories whose name contains the query,
// or that own at least one item whose name contains it. Matching is
// case-insensitive substring, not token-based. An empty (or all-blank)
// query is the identity: the input is returned unchanged.
func FilterCategories(categories []Category, query string) []Category {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return categories
	}
	var matched []Category
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), query) {
			matched = append(matched, c)
			continue
		}
		for _, it := range c.Items {
			if strings.Contains(strings.ToLower(it.Name), query) {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched
}

// SortItemsByExpiry returns a copy of items ordered by ascending expiry
// date. Equal dates keep insertion order.
func SortItemsByExpiry(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Expiry.Before(sorted[j].Expiry.Time)
	})
	return sorted
}

// PreviewItems truncates a sorted item list to at most limit entries and
// reports how many were cut off.
func PreviewItems(items []Item, limit int) (visible []Item, remainder int) {
	if limit < 0 || len(items) <= limit {
		return items, 0
	}
	return items[:limit], len(items) - limit
}

// DaysUntilExpiry computes whole calendar days between now and the expiry
// date, both truncated to start of day. Yesterday is -1, today is 0,
// tomorrow is 1.
func DaysUntilExpiry(now time.Time, expiry Date) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := expiry.StartOfDay().In(time.UTC)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today).Hours() / 24)
}

// ClassifyExpiry maps days-until-expiry to an urgency label: urgent below
// one day, warning up to and including three days, normal beyond.
func ClassifyExpiry(days int) Urgency {
	switch {
	case days < 1:
		return UrgencyUrgent
	case days <= 3:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// ItemUrgency classifies an item's expiry against an explicit instant.
func ItemUrgency(now time.Time, item Item) Urgency {
	return ClassifyExpiry(DaysUntilExpiry(now, item.Expiry))
}

// SortTasks returns a copy of tasks in display order: incomplete before
// complete, then by priority rank (High, Priority, None), then by id
// ascending so equal-rank tasks keep creation order.
func SortTasks(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Done != b.Done {
			return !a.Done
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		return a.ID < b.ID
	})
	return sorted
}
