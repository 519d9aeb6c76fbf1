package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/msomdec/campus-market/internal/domain"
)

// ItemRepository implements domain.ItemRepository on the kv store. The item
// collection is one JSON array under a single key; the array order is the
// insertion order and doubles as the display order.
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates a new SQLite-backed ItemRepository.
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	raw, ok, err := r.db.getValue(ctx, keyItems)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var items []domain.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Append(ctx context.Context, item *domain.Item) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}
	items = append(items, *item)
	return r.ReplaceAll(ctx, items)
}

func (r *ItemRepository) ReplaceAll(ctx context.Context, items []domain.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return r.db.putValue(ctx, keyItems, string(raw))
}
