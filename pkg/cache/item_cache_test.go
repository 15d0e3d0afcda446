package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestItemCache_Key(t *testing.T) {
	if got := key(42); got != "item:42" {
		t.Fatalf("expected item:42, got %s", got)
	}
}

func TestEncodeDecodeItem(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 123, time.UTC)
	price := "3.75"
	minStock := 5

	t.Run("optional fields present", func(t *testing.T) {
		in := &CachedItem{
			ID: 7, Name: "Bleach", Category: "Detergent", Quantity: 10, Unit: "liters",
			PricePerUnit: &price, MinimumStock: &minStock,
			CreatedAt: now, UpdatedAt: now,
		}
		out := decodeFields(t, encodeItem(in))
		if out.ID != 7 || out.Quantity != 10 || out.Name != "Bleach" {
			t.Fatalf("unexpected item: %+v", out)
		}
		if out.PricePerUnit == nil || *out.PricePerUnit != "3.75" {
			t.Fatalf("unexpected price: %v", out.PricePerUnit)
		}
		if out.MinimumStock == nil || *out.MinimumStock != 5 {
			t.Fatalf("unexpected minimum stock: %v", out.MinimumStock)
		}
		if !out.CreatedAt.Equal(now) {
			t.Fatalf("timestamp lost precision: %v", out.CreatedAt)
		}
	})

	t.Run("unset optional fields are omitted", func(t *testing.T) {
		in := &CachedItem{ID: 8, Name: "Iron", Category: "Equipment", Unit: "pieces", CreatedAt: now, UpdatedAt: now}
		fields := encodeItem(in)
		for _, f := range []string{"price_per_unit", "minimum_stock", "supplier", "description"} {
			if _, ok := fields[f]; ok {
				t.Fatalf("expected %s to be omitted", f)
			}
		}
		out := decodeFields(t, fields)
		if out.Supplier != nil || out.MinimumStock != nil {
			t.Fatalf("expected nil optionals, got %+v", out)
		}
	})

	t.Run("corrupt quantity", func(t *testing.T) {
		fields := encodeItem(&CachedItem{ID: 1, CreatedAt: now, UpdatedAt: now})
		fields["quantity"] = "many"
		if _, err := decodeItem(stringify(fields)); err == nil {
			t.Fatal("expected parse error, got nil")
		}
	})
}

// Integration tests, skipped unless REDIS_URL is set.
func TestItemCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	c := NewItemCache(rc)
	supplier := "CleanCo"
	item := &CachedItem{
		ID: 900001, Name: "Bleach", Category: "Detergent", Quantity: 3, Unit: "liters",
		Supplier: &supplier, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}

	if err := c.Set(ctx, item); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := c.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Supplier == nil || *got.Supplier != supplier {
		t.Fatalf("unexpected supplier: %v", got.Supplier)
	}

	item.Supplier = nil
	if err := c.Set(ctx, item); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, _ = c.Get(ctx, item.ID)
	if got.Supplier != nil {
		t.Fatal("cleared supplier still cached")
	}

	if err := c.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Get(ctx, item.ID); !IsMiss(err) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func decodeFields(t *testing.T, fields map[string]any) *CachedItem {
	t.Helper()
	out, err := decodeItem(stringify(fields))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return out
}

func stringify(fields map[string]any) map[string]string {
	vals := make(map[string]string, len(fields))
	for k, v := range fields {
		vals[k] = v.(string)
	}
	return vals
}
