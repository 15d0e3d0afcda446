// Package events carries inventory change notifications from the API process
// to the worker over PostgreSQL, using Watermill's SQL transport.
//
// The item repository publishes inside the transaction that performs the
// write, so an event exists if and only if the change committed. With the
// forwarder enabled those messages land in an outbox topic first and a
// background daemon moves them to their real topic.
//
// Delivery semantics:
//   - Subscribers sharing a ConsumerGroup split the stream: each message is
//     handled by one worker instance.
//   - A failing handler is retried with exponential backoff. Once retries are
//     exhausted the message is parked on the poison topic and acknowledged, so
//     one bad event cannot stall a topic.
//
// Trace context travels in message metadata: NewMessage injects it and
// Subscribe restores it before calling the handler.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/laundry-inventory/pkg/config"
	"github.com/ghuser/laundry-inventory/pkg/logger"
)

// MetadataEventID is the message metadata key holding the domain event ID.
const MetadataEventID = "event_id"

// DefaultPoisonTopic receives messages whose handlers kept failing.
const DefaultPoisonTopic = "inventory.poison"

const (
	shutdownTimeout = 30 * time.Second
	forwarderTopic  = "inventory_outbox"
	errBuffer       = 100
)

// Options tunes delivery. The zero value is usable: three attempts one
// second apart (doubling), no forwarder, no poison topic.
type Options struct {
	// ConsumerGroup shares a subscription between worker instances.
	ConsumerGroup string
	// Forwarder routes publishes through the outbox topic; call StartForwarder.
	Forwarder   bool
	MaxRetries  int
	RetryDelay  time.Duration
	PoisonTopic string
}

// OptionsFromConfig derives bus options for the running service.
func OptionsFromConfig(cfg *config.Config, forwarder bool) Options {
	return Options{
		ConsumerGroup: cfg.ServiceName + "-consumer",
		Forwarder:     forwarder,
		MaxRetries:    cfg.EventMaxRetries,
		RetryDelay:    cfg.EventRetryDelay,
		PoisonTopic:   DefaultPoisonTopic,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = time.Second
	}
	return o
}

// EventBus publishes and consumes inventory events through PostgreSQL.
// It borrows the application's connection pool and never closes it.
type EventBus struct {
	db         *sql.DB
	opts       Options
	log        logger.Logger
	publisher  message.Publisher // plain SQL publisher, used for the poison topic
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	wg         sync.WaitGroup
}

// New builds an EventBus on db. Watermill's message and offset tables are
// created on first use.
func New(db *sql.DB, opts Options, log logger.Logger) (*EventBus, error) {
	opts = opts.withDefaults()
	wlog := &slogAdapter{log: log}

	pub, err := watermillsql.NewPublisher(
		db,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		wlog,
	)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	sub, err := watermillsql.NewSubscriber(
		db,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    opts.ConsumerGroup,
		},
		wlog,
	)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	return &EventBus{
		db:         db,
		opts:       opts,
		log:        log,
		publisher:  pub,
		subscriber: sub,
	}, nil
}

// Ping checks the database the bus reads and writes through.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consuming, waits up to 30s for in-flight handlers and closes
// the publisher. The shared pool stays open.
func (q *EventBus) Close() error {
	var errs []error
	if err := q.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close subscriber: %w", err))
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close forwarder: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := q.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close publisher: %w", err))
	}
	return errors.Join(errs...)
}
