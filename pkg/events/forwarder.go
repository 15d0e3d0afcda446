package events

import (
	"context"
	"errors"
	"fmt"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
)

var (
	errForwarderDisabled = errors.New("events: forwarder not enabled on this bus")
	errForwarderStarted  = errors.New("events: forwarder already started")
)

// StartForwarder runs the daemon that drains the outbox topic into the real
// item topics. It returns once the daemon is running; the daemon stops when
// ctx is cancelled or the bus is closed.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.opts.Forwarder {
		return errForwarderDisabled
	}
	if q.fwd != nil {
		return errForwarderStarted
	}

	wlog := &slogAdapter{log: q.log}

	outbox, err := watermillsql.NewSubscriber(
		q.db,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    "inventory-forwarder",
		},
		wlog,
	)
	if err != nil {
		return fmt.Errorf("events: new outbox subscriber: %w", err)
	}

	fwd, err := forwarder.NewForwarder(outbox, q.publisher, wlog, forwarder.Config{
		ForwarderTopic: forwarderTopic,
	})
	if err != nil {
		_ = outbox.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started", "outbox_topic", forwarderTopic)
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}
