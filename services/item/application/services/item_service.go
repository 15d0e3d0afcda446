package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	pkgcache "github.com/ghuser/laundry-inventory/pkg/cache"
	"github.com/ghuser/laundry-inventory/pkg/logger"
	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
	"github.com/ghuser/laundry-inventory/services/item/domain/models"
	"github.com/ghuser/laundry-inventory/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/laundry-inventory/services/item/domain/services"
)

const meterName = "github.com/ghuser/laundry-inventory/services/item"

// ItemCache is the read-model cache consulted by GetByID.
// *pkgcache.ItemCache satisfies it.
type ItemCache interface {
	Get(ctx context.Context, itemID int64) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
	Delete(ctx context.Context, itemID int64) error
}

// Option configures an ItemService.
type Option func(*ItemService)

// WithCache enables read-through caching for GetByID.
func WithCache(c ItemCache) Option {
	return func(s *ItemService) { s.cache = c }
}

// WithClock overrides the time source used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *ItemService) { s.now = now }
}

// WithMeter overrides the meter used for stock counters.
func WithMeter(m metric.Meter) Option {
	return func(s *ItemService) { s.meter = m }
}

// ItemService orchestrates the inventory use cases.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads by ID are served from Redis cache when available.
type ItemService struct {
	repo  repositories.ItemRepository
	cache ItemCache
	log   logger.Logger
	now   func() time.Time
	meter metric.Meter

	adjustments metric.Int64Counter
	rejections  metric.Int64Counter
}

// NewItemService returns an ItemService wired with the given repository.
func NewItemService(repo repositories.ItemRepository, log logger.Logger, opts ...Option) *ItemService {
	s := &ItemService{
		repo:  repo,
		log:   log,
		now:   time.Now,
		meter: otel.Meter(meterName),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.adjustments, err = s.meter.Int64Counter("inventory.stock.adjustments",
		metric.WithDescription("Stock adjustments applied"),
	); err != nil {
		s.adjustments = noop.Int64Counter{}
	}
	if s.rejections, err = s.meter.Int64Counter("inventory.stock.rejections",
		metric.WithDescription("Stock adjustments rejected for insufficient stock"),
	); err != nil {
		s.rejections = noop.Int64Counter{}
	}
	return s
}

// List returns every item ordered by ID.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetByID retrieves an Item using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query the repository.
//  3. Warm the cache with the repository result.
func (s *ItemService) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			item, convErr := fromCached(cached)
			if convErr == nil {
				return item, nil
			}
			s.log.WarnContext(ctx, "discarding unreadable cache entry", "item_id", id, "error", convErr)
		} else if !pkgcache.IsMiss(err) {
			s.log.WarnContext(ctx, "cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}

	s.warmCache(ctx, item)
	return item, nil
}

// Create validates d and persists a new Item. Any client-supplied id is ignored;
// the repository assigns one and publishes item.created.
func (s *ItemService) Create(ctx context.Context, d models.Draft) (*models.Item, error) {
	if err := domainsvcs.ValidateDraft(d); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	item, err := models.NewItem(d, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}
	if err := domainsvcs.ValidateItemForSave(item); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.log.InfoContext(ctx, "item created", "item_id", item.ID, "category", item.Category)
	return item, nil
}

// Update replaces every mutable field of item id with d. Optional fields
// omitted from d are cleared.
func (s *ItemService) Update(ctx context.Context, id int64, d models.Draft) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}

	if err := domainsvcs.ValidateDraft(d); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}
	if err := item.Replace(d, s.now()); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}
	if err := domainsvcs.ValidateItemForSave(item); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.EvictCache(ctx, id)
	s.log.InfoContext(ctx, "item updated", "item_id", id)
	return item, nil
}

// Delete removes an item by ID.
// Returns ErrItemNotFound if no matching item exists.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return fmt.Errorf("delete item %d: %w", id, itemdomain.ErrItemNotFound)
	}
	if err := s.repo.Delete(ctx, id, s.now()); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.EvictCache(ctx, id)
	s.log.InfoContext(ctx, "item deleted", "item_id", id)
	return nil
}

// Search returns items whose name contains query, ignoring case.
// An empty query matches every item.
func (s *ItemService) Search(ctx context.Context, query string) ([]*models.Item, error) {
	items, err := s.repo.FindByNameContaining(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// ListByCategory returns items whose category equals category exactly.
func (s *ItemService) ListByCategory(ctx context.Context, category string) ([]*models.Item, error) {
	items, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list items by category: %w", err)
	}
	return items, nil
}

// ListLowStock returns every item with a minimum stock threshold whose
// quantity is at or below it. Items without a threshold are never included.
func (s *ItemService) ListLowStock(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	low := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low, nil
}

// ListByQuantityAtMost returns items holding n or fewer units.
func (s *ItemService) ListByQuantityAtMost(ctx context.Context, n int) ([]*models.Item, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", itemdomain.ErrInvalidItem)
	}
	items, err := s.repo.FindByQuantityAtMost(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("list items by quantity: %w", err)
	}
	return items, nil
}

// AdjustStock adds delta to item id's quantity. A negative delta records
// consumption. Returns ErrInsufficientStock, leaving the item unchanged, when
// the result would be below zero.
func (s *ItemService) AdjustStock(ctx context.Context, id int64, delta int) (*models.Item, error) {
	item, err := s.repo.AdjustQuantity(ctx, id, delta, s.now())
	if err != nil {
		if errors.Is(err, itemdomain.ErrInsufficientStock) {
			s.rejections.Add(ctx, 1)
			s.log.InfoContext(ctx, "stock adjustment rejected", "item_id", id, "delta", delta)
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}

	direction := "receipt"
	if delta < 0 {
		direction = "consumption"
	}
	s.adjustments.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", direction)))

	s.EvictCache(ctx, id)
	s.log.InfoContext(ctx, "stock adjusted", "item_id", id, "delta", delta, "quantity", item.Quantity)
	if item.IsLowStock() {
		s.log.WarnContext(ctx, "item low on stock",
			"item_id", id,
			"quantity", item.Quantity,
			"minimum_stock", item.MinimumStock.V,
		)
	}
	return item, nil
}

// warmCache writes item to the read-model cache. Failures are logged, never returned.
func (s *ItemService) warmCache(ctx context.Context, item *models.Item) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, toCached(item)); err != nil {
		s.log.WarnContext(ctx, "cache warm failed", "item_id", item.ID, "error", err)
	}
}

// EvictCache drops item id from the read-model cache. Failures are logged, never returned.
func (s *ItemService) EvictCache(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "cache evict failed", "item_id", id, "error", err)
	}
}
