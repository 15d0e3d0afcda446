package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/laundry-inventory/pkg/cache"
	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

func toCached(item *models.Item) *pkgcache.CachedItem {
	c := &pkgcache.CachedItem{
		ID:           item.ID,
		Name:         item.Name.String(),
		Category:     item.Category,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		MinimumStock: models.Ptr(item.MinimumStock),
		Supplier:     models.Ptr(item.Supplier),
		Description:  models.Ptr(item.Description),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
	if item.PricePerUnit.Valid {
		p := item.PricePerUnit.Decimal.String()
		c.PricePerUnit = &p
	}
	return c
}

func fromCached(c *pkgcache.CachedItem) (*models.Item, error) {
	item := &models.Item{
		ID:           c.ID,
		Name:         models.ItemName(c.Name),
		Category:     c.Category,
		Quantity:     c.Quantity,
		Unit:         c.Unit,
		MinimumStock: models.NullOf(c.MinimumStock),
		Supplier:     models.NullOf(c.Supplier),
		Description:  models.NullOf(c.Description),
		CreatedAt:    c.CreatedAt.UTC(),
		UpdatedAt:    c.UpdatedAt.UTC(),
	}
	if c.PricePerUnit != nil {
		d, err := decimal.NewFromString(*c.PricePerUnit)
		if err != nil {
			return nil, fmt.Errorf("cached price: %w", err)
		}
		item.PricePerUnit = decimal.NewNullDecimal(d)
	}
	return item, nil
}
