package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/laundry-inventory/pkg/logger"
	"github.com/ghuser/laundry-inventory/services/item/application/workflows"
	itemEvents "github.com/ghuser/laundry-inventory/services/item/domain/events"
	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

type recordingCache struct {
	evicted []int64
}

func (c *recordingCache) EvictCache(_ context.Context, id int64) { c.evicted = append(c.evicted, id) }

type recordingAlerter struct {
	alerts []workflows.LowStockAlert
	err    error
}

func (a *recordingAlerter) Alert(_ context.Context, alert workflows.LowStockAlert) error {
	a.alerts = append(a.alerts, alert)
	return a.err
}

func newMsg(t *testing.T, payload any) *message.Message {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), b)
}

func bleach(qty int) *models.Item {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &models.Item{
		ID: 7, Name: "Bleach", Category: "Detergent", Quantity: qty, Unit: "liters",
		MinimumStock: models.Some(5), Supplier: models.Some("CleanCo"),
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestHandlers_CoverEveryTopic(t *testing.T) {
	h := New(&recordingCache{}, nil, logger.Nop()).Handlers()
	for _, topic := range []string{
		itemEvents.TopicItemCreated,
		itemEvents.TopicItemUpdated,
		itemEvents.TopicItemDeleted,
		itemEvents.TopicStockAdjusted,
	} {
		assert.Contains(t, h, topic)
	}
}

func TestHandleItemChanged_EvictsCache(t *testing.T) {
	cache := &recordingCache{}
	s := New(cache, nil, logger.Nop())

	err := s.HandleItemChanged(context.Background(), newMsg(t, itemEvents.NewItemChangedEvent(bleach(10))))
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, cache.evicted)
}

func TestDeleteBeforeCreate_LeavesNothingCached(t *testing.T) {
	ctx := context.Background()
	cache := &recordingCache{}
	s := New(cache, nil, logger.Nop())

	require.NoError(t, s.HandleItemDeleted(ctx, newMsg(t, itemEvents.NewItemDeletedEvent(7, time.Now()))))
	require.NoError(t, s.HandleItemChanged(ctx, newMsg(t, itemEvents.NewItemChangedEvent(bleach(10)))))

	assert.Equal(t, []int64{7, 7}, cache.evicted)
}

func TestHandleItemDeleted_EvictsCache(t *testing.T) {
	cache := &recordingCache{}
	s := New(cache, nil, logger.Nop())

	err := s.HandleItemDeleted(context.Background(), newMsg(t, itemEvents.NewItemDeletedEvent(7, time.Now())))
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, cache.evicted)
}

func TestHandleStockAdjusted(t *testing.T) {
	ctx := context.Background()

	t.Run("low stock raises alert", func(t *testing.T) {
		cache, alerter := &recordingCache{}, &recordingAlerter{}
		s := New(cache, alerter, logger.Nop())

		evt := itemEvents.NewStockAdjustedEvent(bleach(3), -7)
		require.NoError(t, s.HandleStockAdjusted(ctx, newMsg(t, evt)))

		assert.Equal(t, []int64{7}, cache.evicted)
		require.Len(t, alerter.alerts, 1)
		got := alerter.alerts[0]
		assert.Equal(t, evt.EventID.String(), got.EventID)
		assert.Equal(t, 3, got.Quantity)
		assert.Equal(t, 5, got.MinimumStock)
		assert.Equal(t, "CleanCo", got.Supplier)
	})

	t.Run("healthy stock raises nothing", func(t *testing.T) {
		alerter := &recordingAlerter{}
		s := New(&recordingCache{}, alerter, logger.Nop())

		require.NoError(t, s.HandleStockAdjusted(ctx, newMsg(t, itemEvents.NewStockAdjustedEvent(bleach(12), 2))))
		assert.Empty(t, alerter.alerts)
	})

	t.Run("alert failure is returned for retry", func(t *testing.T) {
		alerter := &recordingAlerter{err: errors.New("temporal unavailable")}
		s := New(&recordingCache{}, alerter, logger.Nop())

		err := s.HandleStockAdjusted(ctx, newMsg(t, itemEvents.NewStockAdjustedEvent(bleach(1), -2)))
		assert.Error(t, err)
	})

	t.Run("nil alerter disables alerts", func(t *testing.T) {
		s := New(&recordingCache{}, nil, logger.Nop())
		require.NoError(t, s.HandleStockAdjusted(ctx, newMsg(t, itemEvents.NewStockAdjustedEvent(bleach(1), -2))))
	})
}

func TestUndecodablePayloadIsDropped(t *testing.T) {
	cache := &recordingCache{}
	s := New(cache, nil, logger.Nop())

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	require.NoError(t, s.HandleItemChanged(context.Background(), msg))
	assert.Empty(t, cache.evicted)
}
