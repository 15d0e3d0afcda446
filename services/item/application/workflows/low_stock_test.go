package workflows

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/ghuser/laundry-inventory/pkg/logger"
	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

type stubReader struct {
	item *models.Item
	err  error
}

func (s stubReader) GetByID(context.Context, int64) (*models.Item, error) {
	return s.item, s.err
}

func lowBleach() *models.Item {
	return &models.Item{
		ID:           1,
		Name:         "Bleach",
		Category:     "Detergent",
		Quantity:     3,
		Unit:         "liters",
		MinimumStock: models.Some(5),
		Supplier:     models.Some("CleanCo"),
	}
}

func alertFor(item *models.Item) LowStockAlert {
	return LowStockAlert{
		EventID:      "evt-1",
		ItemID:       item.ID,
		Name:         item.Name.String(),
		Quantity:     item.Quantity,
		MinimumStock: item.MinimumStock.V,
		OccurredAt:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestActivities_NotifyLowStock(t *testing.T) {
	ctx := context.Background()

	t.Run("still low emits reorder notice", func(t *testing.T) {
		var buf bytes.Buffer
		acts := &Activities{Items: stubReader{item: lowBleach()}, Log: logger.NewWithWriter(&buf, "info")}

		notified, err := acts.NotifyLowStock(ctx, alertFor(lowBleach()))
		require.NoError(t, err)
		assert.True(t, notified)
		assert.Contains(t, buf.String(), `"msg":"reorder notice"`)
		assert.Contains(t, buf.String(), `"supplier":"CleanCo"`)
	})

	t.Run("restocked item is skipped", func(t *testing.T) {
		item := lowBleach()
		item.Quantity = 20
		acts := &Activities{Items: stubReader{item: item}, Log: logger.Nop()}

		notified, err := acts.NotifyLowStock(ctx, alertFor(lowBleach()))
		require.NoError(t, err)
		assert.False(t, notified)
	})

	t.Run("deleted item is skipped", func(t *testing.T) {
		acts := &Activities{Items: stubReader{err: itemdomain.ErrItemNotFound}, Log: logger.Nop()}

		notified, err := acts.NotifyLowStock(ctx, alertFor(lowBleach()))
		require.NoError(t, err)
		assert.False(t, notified)
	})

	t.Run("lookup failure is returned for retry", func(t *testing.T) {
		acts := &Activities{Items: stubReader{err: errors.New("db down")}, Log: logger.Nop()}

		_, err := acts.NotifyLowStock(ctx, alertFor(lowBleach()))
		assert.Error(t, err)
	})
}

func TestLowStockAlertWorkflow(t *testing.T) {
	var suite testsuite.WorkflowTestSuite

	t.Run("completes with notice", func(t *testing.T) {
		env := suite.NewTestWorkflowEnvironment()
		env.RegisterActivity(&Activities{Items: stubReader{item: lowBleach()}, Log: logger.Nop()})

		env.ExecuteWorkflow(LowStockAlertWorkflow, alertFor(lowBleach()))

		require.True(t, env.IsWorkflowCompleted())
		require.NoError(t, env.GetWorkflowError())
		var notified bool
		require.NoError(t, env.GetWorkflowResult(&notified))
		assert.True(t, notified)
	})

	t.Run("retries transient failures then fails", func(t *testing.T) {
		env := suite.NewTestWorkflowEnvironment()
		env.RegisterActivity(&Activities{Items: stubReader{err: errors.New("db down")}, Log: logger.Nop()})

		env.ExecuteWorkflow(LowStockAlertWorkflow, alertFor(lowBleach()))

		require.True(t, env.IsWorkflowCompleted())
		assert.Error(t, env.GetWorkflowError())
	})
}

func TestLogAlerter(t *testing.T) {
	var buf bytes.Buffer
	acts := &Activities{Items: stubReader{item: lowBleach()}, Log: logger.NewWithWriter(&buf, "info")}

	require.NoError(t, NewLogAlerter(acts).Alert(context.Background(), alertFor(lowBleach())))
	assert.Equal(t, 1, strings.Count(buf.String(), "reorder notice"))
}

func TestWorkflowID_StablePerEvent(t *testing.T) {
	a := alertFor(lowBleach())
	assert.Equal(t, WorkflowID(a), WorkflowID(a))
	assert.Equal(t, "low-stock-1-evt-1", WorkflowID(a))

	b := a
	b.EventID = "evt-2"
	assert.NotEqual(t, WorkflowID(a), WorkflowID(b))
}
