package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/laundry-inventory/pkg/logger"
)

// Metadata keys set on messages parked on the poison topic.
const (
	MetadataPoisonTopic  = "poison_topic"
	MetadataPoisonReason = "poison_reason"
)

// Handler processes one message. Returning an error triggers a retry.
type Handler func(context.Context, *message.Message) error

// Subscribe consumes topic in the background, calling handler for each
// message with the publisher's trace context restored.
//
// Ack/Nack is managed by the bus:
//   - handler returns nil: Ack
//   - handler returns an error: retried with exponential backoff
//   - retries exhausted: the message is copied to the poison topic and Acked,
//     or Nacked for redelivery when no poison topic is configured or the
//     poison publish fails
//
// Final failures are also sent on the returned channel (buffered, capacity
// 100; overflow is logged and dropped). Callers must drain it. The channel is
// closed when ctx is cancelled or the bus is closed.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := extractTrace(ctx, msg)

			err := retryWithBackoff(msgCtx, msg, handler, q.opts.MaxRetries, q.opts.RetryDelay, q.log)
			if err == nil {
				msg.Ack()
				continue
			}

			if q.park(msgCtx, topic, msg, err) {
				msg.Ack()
			} else {
				msg.Nack()
			}
			select {
			case errCh <- fmt.Errorf("%s: message %s: %w", topic, msg.Metadata.Get(MetadataEventID), err):
			default:
				q.log.ErrorContext(msgCtx, "events: error channel full, dropping error",
					"error", err, "topic", topic)
			}
		}
	}()

	return errCh, nil
}

// park copies msg to the poison topic and reports whether it is safe to Ack.
func (q *EventBus) park(ctx context.Context, topic string, msg *message.Message, cause error) bool {
	if q.opts.PoisonTopic == "" {
		return false
	}
	poisoned := msg.Copy()
	poisoned.Metadata.Set(MetadataPoisonTopic, topic)
	poisoned.Metadata.Set(MetadataPoisonReason, cause.Error())
	if err := q.publisher.Publish(q.opts.PoisonTopic, poisoned); err != nil {
		q.log.ErrorContext(ctx, "events: failed to park poison message",
			"topic", topic,
			"event_id", msg.Metadata.Get(MetadataEventID),
			"error", err,
		)
		return false
	}
	q.log.WarnContext(ctx, "events: message parked on poison topic",
		"topic", topic,
		"poison_topic", q.opts.PoisonTopic,
		"event_id", msg.Metadata.Get(MetadataEventID),
		"error", cause,
	)
	return true
}

// retryWithBackoff calls handler up to maxRetries times, doubling the delay
// between attempts. It returns nil on the first success and the last error
// otherwise.
func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler Handler,
	maxRetries int,
	baseDelay time.Duration,
	log logger.Logger,
) error {
	delay := baseDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt < maxRetries {
			log.WarnContext(ctx, "events: handler failed, retrying",
				"attempt", attempt,
				"max_retries", maxRetries,
				"next_delay", delay,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", maxRetries, err)
}
