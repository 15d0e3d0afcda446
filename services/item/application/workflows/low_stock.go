// Package workflows holds the Temporal workflow that raises reorder notices
// for items that fall to or below their minimum stock.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/laundry-inventory/pkg/logger"
	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
	"github.com/ghuser/laundry-inventory/services/item/domain/models"
)

// LowStockAlert is the workflow input, built from an item.stock_adjusted event.
type LowStockAlert struct {
	EventID      string    `json:"event_id"`
	ItemID       int64     `json:"item_id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	MinimumStock int       `json:"minimum_stock"`
	Supplier     string    `json:"supplier,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ItemReader loads the current state of an item.
type ItemReader interface {
	GetByID(ctx context.Context, id int64) (*models.Item, error)
}

// Activities are the side-effecting steps of LowStockAlertWorkflow.
type Activities struct {
	Items ItemReader
	Log   logger.Logger
}

// NotifyLowStock re-reads the item and emits a reorder notice when it is still
// low on stock. It reports whether a notice was emitted; an item deleted or
// restocked since the alert was raised is skipped.
func (a *Activities) NotifyLowStock(ctx context.Context, alert LowStockAlert) (bool, error) {
	item, err := a.Items.GetByID(ctx, alert.ItemID)
	if errors.Is(err, itemdomain.ErrItemNotFound) {
		a.Log.InfoContext(ctx, "low stock alert skipped, item deleted", "item_id", alert.ItemID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load item %d: %w", alert.ItemID, err)
	}
	if !item.IsLowStock() {
		a.Log.InfoContext(ctx, "low stock alert skipped, item restocked",
			"item_id", item.ID, "quantity", item.Quantity)
		return false, nil
	}

	supplier := item.Supplier.V
	if !item.Supplier.Valid {
		supplier = "unknown"
	}
	a.Log.WarnContext(ctx, "reorder notice",
		"item_id", item.ID,
		"name", item.Name.String(),
		"quantity", item.Quantity,
		"minimum_stock", item.MinimumStock.V,
		"unit", item.Unit,
		"supplier", supplier,
	)
	return true, nil
}

// LowStockAlertWorkflow runs NotifyLowStock with retries.
func LowStockAlertWorkflow(ctx workflow.Context, alert LowStockAlert) (bool, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	})

	var a *Activities
	var notified bool
	if err := workflow.ExecuteActivity(ctx, a.NotifyLowStock, alert).Get(ctx, &notified); err != nil {
		return false, err
	}
	return notified, nil
}

// Register adds the workflow and its activities to w.
func Register(w worker.Registry, acts *Activities) {
	w.RegisterWorkflow(LowStockAlertWorkflow)
	w.RegisterActivity(acts)
}

// Alerter raises a low-stock alert.
type Alerter interface {
	Alert(ctx context.Context, alert LowStockAlert) error
}

// TemporalAlerter starts one LowStockAlertWorkflow per alert. The workflow ID
// is derived from the event ID so redelivered events do not start a second run.
type TemporalAlerter struct {
	client    client.Client
	taskQueue string
}

// NewTemporalAlerter returns an Alerter that starts workflows on taskQueue.
func NewTemporalAlerter(c client.Client, taskQueue string) *TemporalAlerter {
	return &TemporalAlerter{client: c, taskQueue: taskQueue}
}

func (t *TemporalAlerter) Alert(ctx context.Context, alert LowStockAlert) error {
	_, err := t.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                    WorkflowID(alert),
		TaskQueue:             t.taskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}, LowStockAlertWorkflow, alert)

	var started *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &started) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("start low stock workflow: %w", err)
	}
	return nil
}

// WorkflowID returns the deterministic workflow ID for alert.
func WorkflowID(alert LowStockAlert) string {
	return fmt.Sprintf("low-stock-%d-%s", alert.ItemID, alert.EventID)
}

// LogAlerter runs the notification inline, for deployments without Temporal.
type LogAlerter struct {
	acts *Activities
}

// NewLogAlerter returns an Alerter that calls NotifyLowStock directly.
func NewLogAlerter(acts *Activities) *LogAlerter {
	return &LogAlerter{acts: acts}
}

func (l *LogAlerter) Alert(ctx context.Context, alert LowStockAlert) error {
	_, err := l.acts.NotifyLowStock(ctx, alert)
	return err
}
