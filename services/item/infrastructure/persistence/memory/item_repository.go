// Package memory provides an in-process ItemRepository for tests and
// ITEM_STORE=memory runs. Data does not survive a restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
	"github.com/ghuser/laundry-inventory/services/item/domain/models"
	"github.com/ghuser/laundry-inventory/services/item/domain/repositories"
)

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// ItemRepository stores items in a map guarded by a mutex. Stored values are
// cloned on the way in and out so callers never alias repository state.
type ItemRepository struct {
	mu     sync.RWMutex
	items  map[int64]*models.Item
	lastID int64
}

// NewItemRepository returns an empty repository. IDs start at 1.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[int64]*models.Item)}
}

func (r *ItemRepository) FindAll(_ context.Context) ([]*models.Item, error) {
	return r.filter(func(*models.Item) bool { return true }), nil
}

func (r *ItemRepository) GetByID(_ context.Context, id int64) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	return item.Clone(), nil
}

func (r *ItemRepository) Save(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		r.lastID++
		item.ID = r.lastID
	} else if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("update item %d: %w", item.ID, itemdomain.ErrItemNotFound)
	}
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *ItemRepository) Delete(_ context.Context, id int64, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *ItemRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

func (r *ItemRepository) FindByCategory(_ context.Context, category string) ([]*models.Item, error) {
	return r.filter(func(i *models.Item) bool { return i.Category == category }), nil
}

func (r *ItemRepository) FindByNameContaining(_ context.Context, fragment string) ([]*models.Item, error) {
	needle := strings.ToLower(fragment)
	return r.filter(func(i *models.Item) bool {
		return strings.Contains(strings.ToLower(i.Name.String()), needle)
	}), nil
}

func (r *ItemRepository) FindByQuantityAtMost(_ context.Context, n int) ([]*models.Item, error) {
	return r.filter(func(i *models.Item) bool { return i.Quantity <= n }), nil
}

func (r *ItemRepository) AdjustQuantity(_ context.Context, id int64, delta int, at time.Time) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}

	next := stored.Clone()
	if err := next.ApplyDelta(delta, at); err != nil {
		return nil, err
	}
	r.items[id] = next
	return next.Clone(), nil
}

func (r *ItemRepository) filter(keep func(*models.Item) bool) []*models.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Item, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *models.Item) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out
}
