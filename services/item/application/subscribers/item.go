// Package subscribers consumes item domain events from the event bus: it evicts
// changed items from the Redis read model and raises low-stock alerts.
package subscribers

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/laundry-inventory/pkg/events"
	"github.com/ghuser/laundry-inventory/pkg/logger"
	"github.com/ghuser/laundry-inventory/services/item/application/workflows"
	itemEvents "github.com/ghuser/laundry-inventory/services/item/domain/events"
)

// CacheSync invalidates the item read model. *services.ItemService satisfies it.
// Topics are consumed concurrently, so event snapshots are never written to the
// cache; the next GetByID repopulates it from the repository.
type CacheSync interface {
	EvictCache(ctx context.Context, id int64)
}

// ItemSubscribers holds the handlers for every item topic.
// Handlers are idempotent: the bus redelivers on failure and the outbox may
// deliver an event more than once.
type ItemSubscribers struct {
	cache   CacheSync
	alerter workflows.Alerter
	log     logger.Logger
}

// New returns ItemSubscribers. alerter may be nil to disable low-stock alerts.
func New(cache CacheSync, alerter workflows.Alerter, log logger.Logger) *ItemSubscribers {
	return &ItemSubscribers{cache: cache, alerter: alerter, log: log}
}

// Handlers maps each item topic to its handler.
func (s *ItemSubscribers) Handlers() map[string]events.Handler {
	return map[string]events.Handler{
		itemEvents.TopicItemCreated:   s.HandleItemChanged,
		itemEvents.TopicItemUpdated:   s.HandleItemChanged,
		itemEvents.TopicItemDeleted:   s.HandleItemDeleted,
		itemEvents.TopicStockAdjusted: s.HandleStockAdjusted,
	}
}

// HandleItemChanged evicts the cached copy on item.created and item.updated.
func (s *ItemSubscribers) HandleItemChanged(ctx context.Context, msg *message.Message) error {
	var evt itemEvents.ItemChangedEvent
	if !s.decode(ctx, msg, &evt) {
		return nil
	}
	s.cache.EvictCache(ctx, evt.Item.ID)
	s.log.DebugContext(ctx, "cache evicted", "item_id", evt.Item.ID)
	return nil
}

// HandleItemDeleted evicts the deleted item from the cache.
func (s *ItemSubscribers) HandleItemDeleted(ctx context.Context, msg *message.Message) error {
	var evt itemEvents.ItemDeletedEvent
	if !s.decode(ctx, msg, &evt) {
		return nil
	}
	s.cache.EvictCache(ctx, evt.ItemID)
	return nil
}

// HandleStockAdjusted evicts the cached copy and raises an alert when the
// adjustment left the item low on stock. Alert failures are returned so the
// bus retries the message.
func (s *ItemSubscribers) HandleStockAdjusted(ctx context.Context, msg *message.Message) error {
	var evt itemEvents.StockAdjustedEvent
	if !s.decode(ctx, msg, &evt) {
		return nil
	}
	s.cache.EvictCache(ctx, evt.Item.ID)

	if !evt.LowStock || s.alerter == nil {
		return nil
	}

	alert := workflows.LowStockAlert{
		EventID:    evt.EventID.String(),
		ItemID:     evt.Item.ID,
		Name:       evt.Item.Name,
		Quantity:   evt.Item.Quantity,
		OccurredAt: evt.OccurredAt,
	}
	if evt.Item.MinimumStock != nil {
		alert.MinimumStock = *evt.Item.MinimumStock
	}
	if evt.Item.Supplier != nil {
		alert.Supplier = *evt.Item.Supplier
	}
	return s.alerter.Alert(ctx, alert)
}

// decode unmarshals the payload. Undecodable messages are logged and
// acknowledged; retrying them cannot succeed.
func (s *ItemSubscribers) decode(ctx context.Context, msg *message.Message, v any) bool {
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		s.log.ErrorContext(ctx, "dropping undecodable event",
			"message_uuid", msg.UUID,
			"error", err,
		)
		return false
	}
	return true
}
