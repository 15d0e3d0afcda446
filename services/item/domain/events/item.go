package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

// Watermill topics published by the item repository.
const (
	TopicItemCreated   = "item.created"
	TopicItemUpdated   = "item.updated"
	TopicItemDeleted   = "item.deleted"
	TopicStockAdjusted = "item.stock_adjusted"
)

// SchemaVersion is stamped on every event; increment on breaking payload changes.
const SchemaVersion = 1

// ItemSnapshot is the full state of an Item at the time an event was raised.
type ItemSnapshot struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Quantity     int              `json:"quantity"`
	Unit         string           `json:"unit"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	MinimumStock *int             `json:"minimum_stock"`
	Supplier     *string          `json:"supplier"`
	Description  *string          `json:"description"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// SnapshotOf captures item's current state.
func SnapshotOf(item *models.Item) ItemSnapshot {
	s := ItemSnapshot{
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
		p := item.PricePerUnit.Decimal
		s.PricePerUnit = &p
	}
	return s
}

// Item rebuilds the domain Item captured by the snapshot.
func (s ItemSnapshot) Item() *models.Item {
	item := &models.Item{
		ID:           s.ID,
		Name:         models.ItemName(s.Name),
		Category:     s.Category,
		Quantity:     s.Quantity,
		Unit:         s.Unit,
		MinimumStock: models.NullOf(s.MinimumStock),
		Supplier:     models.NullOf(s.Supplier),
		Description:  models.NullOf(s.Description),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.PricePerUnit != nil {
		item.PricePerUnit = decimal.NewNullDecimal(*s.PricePerUnit)
	}
	return item
}

// ItemChangedEvent is published on TopicItemCreated and TopicItemUpdated.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated).
type ItemChangedEvent struct {
	EventID    uuid.UUID    `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int          `json:"version"`
	Item       ItemSnapshot `json:"item"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewItemChangedEvent builds the event for a freshly saved item.
func NewItemChangedEvent(item *models.Item) ItemChangedEvent {
	return ItemChangedEvent{
		EventID:    uuid.New(),
		Version:    SchemaVersion,
		Item:       SnapshotOf(item),
		OccurredAt: item.UpdatedAt,
	}
}

// ItemDeletedEvent is published on TopicItemDeleted.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     int64     `json:"item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewItemDeletedEvent builds the event for a removed item.
func NewItemDeletedEvent(id int64, at time.Time) ItemDeletedEvent {
	return ItemDeletedEvent{
		EventID:    uuid.New(),
		Version:    SchemaVersion,
		ItemID:     id,
		OccurredAt: at.UTC(),
	}
}

// StockAdjustedEvent is published on TopicStockAdjusted after a successful
// stock delta. LowStock is true when the resulting quantity is at or below
// the item's minimum stock threshold.
type StockAdjustedEvent struct {
	EventID          uuid.UUID    `json:"event_id"`
	Version          int          `json:"version"`
	Item             ItemSnapshot `json:"item"`
	Delta            int          `json:"delta"`
	PreviousQuantity int          `json:"previous_quantity"`
	LowStock         bool         `json:"low_stock"`
	OccurredAt       time.Time    `json:"occurred_at"`
}

// NewStockAdjustedEvent builds the event for item after delta was applied.
func NewStockAdjustedEvent(item *models.Item, delta int) StockAdjustedEvent {
	return StockAdjustedEvent{
		EventID:          uuid.New(),
		Version:          SchemaVersion,
		Item:             SnapshotOf(item),
		Delta:            delta,
		PreviousQuantity: item.Quantity - delta,
		LowStock:         item.IsLowStock(),
		OccurredAt:       item.UpdatedAt,
	}
}
