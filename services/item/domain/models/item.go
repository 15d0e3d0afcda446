package models

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
)

// MaxQuantity is the largest on-hand count an item may hold (INTEGER column).
const MaxQuantity = math.MaxInt32

// Item is the inventory aggregate: a stocked consumable or piece of equipment.
// Optional fields use explicit nullable types; an unset MinimumStock disables
// low-stock alerting for the item.
type Item struct {
	ID           int64 // assigned by storage; zero until persisted
	Name         ItemName
	Category     string
	Quantity     int
	Unit         string
	PricePerUnit decimal.NullDecimal
	MinimumStock sql.Null[int]
	Supplier     sql.Null[string]
	Description  sql.Null[string]
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Draft carries every caller-controlled field of an Item. It is the input to
// both creation and full-replace updates.
type Draft struct {
	Name         string
	Category     string
	Quantity     int
	Unit         string
	PricePerUnit decimal.NullDecimal
	MinimumStock sql.Null[int]
	Supplier     sql.Null[string]
	Description  sql.Null[string]
}

// NewItem constructs an unsaved Item from d with both timestamps set to now.
func NewItem(d Draft, now time.Time) (*Item, error) {
	name, err := NewItemName(d.Name)
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	item := &Item{CreatedAt: now}
	item.assign(name, d, now)
	return item, nil
}

// Replace overwrites every mutable field with d's values, including clearing
// optional fields that d leaves unset. ID and CreatedAt are preserved.
func (i *Item) Replace(d Draft, now time.Time) error {
	name, err := NewItemName(d.Name)
	if err != nil {
		return err
	}
	i.assign(name, d, now.UTC())
	return nil
}

func (i *Item) assign(name ItemName, d Draft, now time.Time) {
	i.Name = name
	i.Category = d.Category
	i.Quantity = d.Quantity
	i.Unit = d.Unit
	i.PricePerUnit = d.PricePerUnit
	i.MinimumStock = d.MinimumStock
	i.Supplier = d.Supplier
	i.Description = d.Description
	i.UpdatedAt = now
}

// ApplyDelta adds delta to the on-hand quantity. When the result would be
// negative it returns ErrInsufficientStock and leaves the item untouched.
func (i *Item) ApplyDelta(delta int, now time.Time) error {
	next := int64(i.Quantity) + int64(delta)
	if next < 0 {
		return fmt.Errorf("%w: %d on hand, change of %d", itemdomain.ErrInsufficientStock, i.Quantity, delta)
	}
	if next > MaxQuantity {
		return fmt.Errorf("%w: quantity would exceed %d", itemdomain.ErrInvalidItem, MaxQuantity)
	}
	i.Quantity = int(next)
	i.UpdatedAt = now.UTC()
	return nil
}

// IsLowStock reports whether a minimum stock threshold is set and the
// quantity has fallen to or below it.
func (i *Item) IsLowStock() bool {
	return i.MinimumStock.Valid && i.Quantity <= i.MinimumStock.V
}

// Clone returns a copy that shares no mutable state with i.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// Ptr returns a pointer to n's value, or nil when n is unset.
func Ptr[T any](n sql.Null[T]) *T {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}

// NullOf converts an optional pointer into an explicit nullable value.
func NullOf[T any](p *T) sql.Null[T] {
	if p == nil {
		return sql.Null[T]{}
	}
	return sql.Null[T]{V: *p, Valid: true}
}

// Some returns a set nullable holding v.
func Some[T any](v T) sql.Null[T] {
	return sql.Null[T]{V: v, Valid: true}
}
