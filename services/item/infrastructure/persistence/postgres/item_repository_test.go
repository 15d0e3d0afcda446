package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/laundry-inventory/migrations"
	"github.com/ghuser/laundry-inventory/pkg/database"
	"github.com/ghuser/laundry-inventory/pkg/logger"
	"github.com/ghuser/laundry-inventory/pkg/migrator"
	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"bleach":  "bleach",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`c:\temp`: `c:\\temp`,
	}
	for in, want := range tests {
		assert.Equal(t, want, escapeLike(in), "escapeLike(%q)", in)
	}
}

func TestMapWriteError(t *testing.T) {
	t.Run("check violation maps to invalid item", func(t *testing.T) {
		err := mapWriteError("insert item", &pgconn.PgError{Code: pgCheckViolation, Message: "violates check"})
		assert.ErrorIs(t, err, itemdomain.ErrInvalidItem)
	})

	t.Run("numeric overflow maps to invalid item", func(t *testing.T) {
		err := mapWriteError("adjust quantity", &pgconn.PgError{Code: pgNumericOverflow})
		assert.ErrorIs(t, err, itemdomain.ErrInvalidItem)
	})

	t.Run("other errors are wrapped unchanged", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := mapWriteError("insert item", cause)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, itemdomain.ErrInvalidItem)
	})
}

func TestRowRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	item := &models.Item{
		ID:           3,
		Name:         "Softener",
		Category:     "Detergent",
		Quantity:     12,
		Unit:         "liters",
		PricePerUnit: decimal.NewNullDecimal(decimal.RequireFromString("2.50")),
		MinimumStock: models.Some(4),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	got := rowFromItem(item).toItem()
	assert.Equal(t, item.MinimumStock, got.MinimumStock)
	assert.False(t, got.Supplier.Valid)
	assert.False(t, got.Description.Valid)
	assert.True(t, got.PricePerUnit.Decimal.Equal(item.PricePerUnit.Decimal))
	assert.Equal(t, item.Name, got.Name)
}

// Integration tests, skipped unless DATABASE_URL is set.
func TestItemRepositoryIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	db, err := database.NewPool(ctx, url, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrator.Up(ctx, db.DB().DB, migrations.Item(), logger.Nop()))
	_, err = db.DB().ExecContext(ctx, `TRUNCATE inventory_items RESTART IDENTITY`)
	require.NoError(t, err)

	repo := NewItemRepository(db, nil)
	now := time.Now().UTC().Truncate(time.Microsecond)

	bleach, err := models.NewItem(models.Draft{
		Name: "Bleach", Category: "Detergent", Quantity: 10, Unit: "liters",
		MinimumStock: models.Some(5),
	}, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, bleach))
	require.NotZero(t, bleach.ID)

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, bleach.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bleach", got.Name.String())
		assert.Equal(t, 5, got.MinimumStock.V)
	})

	t.Run("price is stored without rounding", func(t *testing.T) {
		for _, price := range []string{"3.755", "12345678901.125", "0.0001"} {
			item, err := models.NewItem(models.Draft{
				Name: "Starch", Category: "Finishing", Quantity: 1, Unit: "cans",
				PricePerUnit: decimal.NewNullDecimal(decimal.RequireFromString(price)),
			}, now)
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, item))

			got, err := repo.GetByID(ctx, item.ID)
			require.NoError(t, err)
			require.True(t, got.PricePerUnit.Valid)
			assert.True(t, got.PricePerUnit.Decimal.Equal(item.PricePerUnit.Decimal),
				"price %s came back as %s", price, got.PricePerUnit.Decimal)
			require.NoError(t, repo.Delete(ctx, item.ID, now))
		}
	})

	t.Run("GetByID missing", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999_999)
		assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)
	})

	t.Run("search is case-insensitive and literal", func(t *testing.T) {
		got, err := repo.FindByNameContaining(ctx, "BLEA")
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = repo.FindByNameContaining(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("AdjustQuantity", func(t *testing.T) {
		got, err := repo.AdjustQuantity(ctx, bleach.ID, -7, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 3, got.Quantity)

		_, err = repo.AdjustQuantity(ctx, bleach.ID, -5, now.Add(2*time.Minute))
		assert.ErrorIs(t, err, itemdomain.ErrInsufficientStock)

		_, err = repo.AdjustQuantity(ctx, 999_999, 1, now)
		assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)

		_, err = repo.AdjustQuantity(ctx, bleach.ID, 3_000_000_000, now)
		assert.ErrorIs(t, err, itemdomain.ErrInvalidItem)

		low, err := repo.FindByQuantityAtMost(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, low, 1)
	})

	t.Run("Save on deleted row", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, bleach.ID, now.Add(3*time.Minute)))
		err := repo.Save(ctx, bleach)
		assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)

		exists, err := repo.Exists(ctx, bleach.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
