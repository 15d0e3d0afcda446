package repositories

import (
	"context"
	"time"

	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Lists are ordered by ascending ID.
type ItemRepository interface {
	FindAll(ctx context.Context) ([]*models.Item, error)

	// GetByID returns ErrItemNotFound if no item has the given ID.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// Save inserts item when item.ID is zero, assigning the new ID in place.
	// Otherwise it overwrites the stored row with that ID and returns
	// ErrItemNotFound if the row no longer exists.
	Save(ctx context.Context, item *models.Item) error

	// Delete removes an item by ID, stamping the item.deleted event with at.
	// Deleting a missing ID is not an error; callers check Exists first when
	// absence matters.
	Delete(ctx context.Context, id int64, at time.Time) error

	Exists(ctx context.Context, id int64) (bool, error)

	// FindByCategory matches category exactly (case-sensitive).
	FindByCategory(ctx context.Context, category string) ([]*models.Item, error)

	// FindByNameContaining matches fragment anywhere in the name, ignoring case.
	FindByNameContaining(ctx context.Context, fragment string) ([]*models.Item, error)

	FindByQuantityAtMost(ctx context.Context, n int) ([]*models.Item, error)

	// AdjustQuantity atomically adds delta to the item's quantity and sets
	// UpdatedAt to at. It returns ErrItemNotFound for a missing ID and
	// ErrInsufficientStock, leaving the row unchanged, when the result would be negative.
	AdjustQuantity(ctx context.Context, id int64, delta int, at time.Time) (*models.Item, error)
}
