package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/laundry-inventory/pkg/logger"
	"github.com/ghuser/laundry-inventory/services/item/application/subscribers"
	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
	itemEvents "github.com/ghuser/laundry-inventory/services/item/domain/events"
)

func eventMsg(t *testing.T, payload any) *message.Message {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), b)
}

// Topics are consumed on separate goroutines, so a delete can be handled
// before the create or adjustment that preceded it.
func TestItemService_OutOfOrderEventsNeverResurrect(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted handled before created", func(t *testing.T) {
		f := newFixture(t)
		subs := subscribers.New(f.svc, nil, logger.Nop())

		created, err := f.svc.Create(ctx, bleach())
		require.NoError(t, err)
		createdEvt := itemEvents.NewItemChangedEvent(created)

		require.NoError(t, f.svc.Delete(ctx, created.ID))
		deletedEvt := itemEvents.NewItemDeletedEvent(created.ID, *f.clock)

		require.NoError(t, subs.HandleItemDeleted(ctx, eventMsg(t, deletedEvt)))
		require.NoError(t, subs.HandleItemChanged(ctx, eventMsg(t, createdEvt)))

		_, err = f.svc.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, itemdomain.ErrItemNotFound)
		assert.NotContains(t, f.cache.items, created.ID)
	})

	t.Run("stale adjustment after update", func(t *testing.T) {
		f := newFixture(t)
		subs := subscribers.New(f.svc, nil, logger.Nop())

		created, err := f.svc.Create(ctx, bleach())
		require.NoError(t, err)
		adjusted, err := f.svc.AdjustStock(ctx, created.ID, -2)
		require.NoError(t, err)
		adjustedEvt := itemEvents.NewStockAdjustedEvent(adjusted, -2)

		f.tick(time.Minute)
		_, err = f.svc.Update(ctx, created.ID, draft("Bleach", "Detergent", 40))
		require.NoError(t, err)

		require.NoError(t, subs.HandleStockAdjusted(ctx, eventMsg(t, adjustedEvt)))

		got, err := f.svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 40, got.Quantity)
	})
}
