package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"casa/internal/core"
	"casa/internal/storage"
)

// KitchenService implements the category/item mutation operations and the
// kitchen overview: filtered categories with their items sorted by expiry,
// classified by urgency and truncated to a preview.
type KitchenService struct {
	storage *storage.SQLiteRepository
}

type ItemView struct {
	core.Item
	DaysUntilExpiry int
	Urgency         core.Urgency
}

type CategoryView struct {
	ID    int64
	Name  string
	Items []ItemView
	// MoreItems counts items beyond the preview cut-off.
	MoreItems int
}

func NewKitchenService(storage *storage.SQLiteRepository) *KitchenService {
	return &KitchenService{storage: storage}
}

// SeedDefaults inserts the default category names missing from the store.
func (s *KitchenService) SeedDefaults(ctx context.Context) (int, error) {
	added, err := s.storage.SeedCategories(ctx, core.DefaultCategories)
	if err != nil {
		return 0, fmt.Errorf("seed default categories: %w", err)
	}
	return added, nil
}

// AddCategory inserts a category after trimming and checking the name.
func (s *KitchenService) AddCategory(ctx context.Context, name string) (core.Category, error) {
	category := core.Category{Name: strings.TrimSpace(name)}
	if err := category.Validate(); err != nil {
		return core.Category{}, fmt.Errorf("validate category: %w", err)
	}
	saved, err := s.storage.AddCategory(ctx, category.Name)
	if err != nil {
		return core.Category{}, fmt.Errorf("save category: %w", err)
	}
	return saved, nil
}

// DeleteCategory removes a category and, atomically, every item it owns.
// The confirmation step belongs to the presentation layer; by the time
// this runs the decision is final and there is no undo.
func (s *KitchenService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.storage.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// AddItem validates and inserts an item linked to an existing category.
func (s *KitchenService) AddItem(ctx context.Context, item core.Item) (core.Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if err := item.Validate(); err != nil {
		return core.Item{}, fmt.Errorf("validate item: %w", err)
	}
	saved, err := s.storage.AddItem(ctx, item)
	if err != nil {
		return core.Item{}, fmt.Errorf("save item: %w", err)
	}
	return saved, nil
}

// IncrementItem raises the item quantity by one.
func (s *KitchenService) IncrementItem(ctx context.Context, id int64) (remaining int, deleted bool, err error) {
	return s.adjust(ctx, id, +1)
}

// DecrementItem lowers the item quantity by one; at zero the item is
// removed in the same transaction.
func (s *KitchenService) DecrementItem(ctx context.Context, id int64) (remaining int, deleted bool, err error) {
	return s.adjust(ctx, id, -1)
}

func (s *KitchenService) adjust(ctx context.Context, id int64, delta int) (int, bool, error) {
	remaining, deleted, err := s.storage.AdjustItemQuantity(ctx, id, delta)
	if err != nil {
		return 0, false, fmt.Errorf("adjust item quantity: %w", err)
	}
	slog.DebugContext(ctx, "Item quantity adjusted",
		"item_id", id,
		"delta", delta,
		"quantity", remaining,
		"deleted", deleted)
	return remaining, deleted, nil
}

// DeleteItem removes a single item by id.
func (s *KitchenService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.storage.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Overview builds the kitchen view for the given query and instant: the
// matching categories, each with items sorted by expiry, classified
// against now and truncated to the preview limit. "now" is an explicit
// parameter so the classification is deterministic under test.
func (s *KitchenService) Overview(ctx context.Context, now time.Time, query string) ([]CategoryView, error) {
	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories for overview: %w", err)
	}

	filtered := core.FilterCategories(categories, query)
	views := make([]CategoryView, len(filtered))
	for i, c := range filtered {
		sorted := core.SortItemsByExpiry(c.Items)
		visible, more := core.PreviewItems(sorted, core.ItemPreviewLimit)

		items := make([]ItemView, len(visible))
		for j, it := range visible {
			days := core.DaysUntilExpiry(now, it.Expiry)
			items[j] = ItemView{
				Item:            it,
				DaysUntilExpiry: days,
				Urgency:         core.ClassifyExpiry(days),
			}
		}
		views[i] = CategoryView{
			ID:        c.ID,
			Name:      c.Name,
			Items:     items,
			MoreItems: more,
		}
	}
	return views, nil
}
