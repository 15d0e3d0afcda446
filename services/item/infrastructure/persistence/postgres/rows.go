package postgres

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

const itemColumns = `id, name, category, quantity, unit, price_per_unit, minimum_stock,
	supplier, description, created_at, updated_at`

const selectItems = `SELECT ` + itemColumns + ` FROM inventory_items`

const insertItem = `INSERT INTO inventory_items
	(name, category, quantity, unit, price_per_unit, minimum_stock, supplier, description, created_at, updated_at)
VALUES
	(:name, :category, :quantity, :unit, :price_per_unit, :minimum_stock, :supplier, :description, :created_at, :updated_at)
RETURNING id`

const updateItem = `UPDATE inventory_items SET
	name = :name,
	category = :category,
	quantity = :quantity,
	unit = :unit,
	price_per_unit = :price_per_unit,
	minimum_stock = :minimum_stock,
	supplier = :supplier,
	description = :description,
	updated_at = :updated_at
WHERE id = :id`

const adjustQuantity = `UPDATE inventory_items
SET quantity = quantity + $2::bigint, updated_at = $3
WHERE id = $1 AND quantity + $2::bigint >= 0
RETURNING ` + itemColumns

// itemRow is the scan target for inventory_items. It uses driver-compatible
// nullable types; sql.Null[int] does not produce a valid driver.Value.
type itemRow struct {
	ID           int64               `db:"id"`
	Name         string              `db:"name"`
	Category     string              `db:"category"`
	Quantity     int32               `db:"quantity"`
	Unit         string              `db:"unit"`
	PricePerUnit decimal.NullDecimal `db:"price_per_unit"`
	MinimumStock sql.NullInt32       `db:"minimum_stock"`
	Supplier     sql.NullString      `db:"supplier"`
	Description  sql.NullString      `db:"description"`
	CreatedAt    time.Time           `db:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at"`
}

func rowFromItem(item *models.Item) itemRow {
	return itemRow{
		ID:           item.ID,
		Name:         item.Name.String(),
		Category:     item.Category,
		Quantity:     int32(item.Quantity), //nolint:gosec // bounded by MaxQuantity
		Unit:         item.Unit,
		PricePerUnit: item.PricePerUnit,
		MinimumStock: sql.NullInt32{Int32: int32(item.MinimumStock.V), Valid: item.MinimumStock.Valid}, //nolint:gosec // bounded by MaxQuantity
		Supplier:     sql.NullString{String: item.Supplier.V, Valid: item.Supplier.Valid},
		Description:  sql.NullString{String: item.Description.V, Valid: item.Description.Valid},
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (r itemRow) toItem() *models.Item {
	return &models.Item{
		ID:           r.ID,
		Name:         models.ItemName(r.Name),
		Category:     r.Category,
		Quantity:     int(r.Quantity),
		Unit:         r.Unit,
		PricePerUnit: r.PricePerUnit,
		MinimumStock: sql.Null[int]{V: int(r.MinimumStock.Int32), Valid: r.MinimumStock.Valid},
		Supplier:     sql.Null[string]{V: r.Supplier.String, Valid: r.Supplier.Valid},
		Description:  sql.Null[string]{V: r.Description.String, Valid: r.Description.Valid},
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}
