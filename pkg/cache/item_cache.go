package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const itemCacheKeyPrefix = "item"

// ErrCacheMiss is returned by Get when the key does not exist or has expired.
var ErrCacheMiss = redis.Nil

// CachedItem is the denormalized read model stored in Redis as a hash.
// Optional fields are nil when unset and are omitted from the hash.
// PricePerUnit keeps the decimal's string form so no precision is lost.
type CachedItem struct {
	ID           int64
	Name         string
	Category     string
	Quantity     int
	Unit         string
	PricePerUnit *string
	MinimumStock *int
	Supplier     *string
	Description  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by ID.
// Returns ErrCacheMiss when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID int64) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, ErrCacheMiss
	}
	return decodeItem(vals)
}

// Set writes item as a Redis hash that expires after the client's ItemTTL.
// The previous hash is dropped first so fields cleared since the last write
// do not linger; the delete, write and expiry run in one MULTI/EXEC.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	k := key(item.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, k)
	pipe.HSet(ctx, k, encodeItem(item))
	pipe.Expire(ctx, k, c.client.ItemTTL())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item. Deleting a missing key is not an error.
func (c *ItemCache) Delete(ctx context.Context, itemID int64) error {
	if err := c.client.Client().Del(ctx, key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// IsMiss reports whether err is a cache miss rather than a Redis failure.
func IsMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

// key builds the Redis key: "item:{itemID}"
func key(itemID int64) string {
	return fmt.Sprintf("%s:%d", itemCacheKeyPrefix, itemID)
}

func encodeItem(item *CachedItem) map[string]any {
	fields := map[string]any{
		"id":         strconv.FormatInt(item.ID, 10),
		"name":       item.Name,
		"category":   item.Category,
		"quantity":   strconv.Itoa(item.Quantity),
		"unit":       item.Unit,
		"created_at": item.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at": item.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if item.PricePerUnit != nil {
		fields["price_per_unit"] = *item.PricePerUnit
	}
	if item.MinimumStock != nil {
		fields["minimum_stock"] = strconv.Itoa(*item.MinimumStock)
	}
	if item.Supplier != nil {
		fields["supplier"] = *item.Supplier
	}
	if item.Description != nil {
		fields["description"] = *item.Description
	}
	return fields
}

func decodeItem(vals map[string]string) (*CachedItem, error) {
	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	qty, err := strconv.Atoi(vals["quantity"])
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	item := &CachedItem{
		ID:          id,
		Name:        vals["name"],
		Category:    vals["category"],
		Quantity:    qty,
		Unit:        vals["unit"],
		Supplier:    optional(vals, "supplier"),
		Description: optional(vals, "description"),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	item.PricePerUnit = optional(vals, "price_per_unit")
	if s, ok := vals["minimum_stock"]; ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("cache parse minimum_stock: %w", err)
		}
		item.MinimumStock = &n
	}
	return item, nil
}

func optional(vals map[string]string, field string) *string {
	s, ok := vals[field]
	if !ok {
		return nil
	}
	return &s
}
