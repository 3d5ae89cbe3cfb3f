package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	contractsv1 "vidstream/contracts/gen/events/v1"
)

var (
	ErrBusClosed = errors.New("message bus closed")
	// ErrSubscriberBackpressure means at least one subscriber buffer was full
	// and did not receive the event. Callers keep the event for redelivery.
	ErrSubscriberBackpressure = errors.New("message bus subscriber buffer full")
)

// Bus is the in-process event bus the notifier publishes to. Each subscriber
// owns a buffered channel and a goroutine that lives until its context ends
// or the bus is closed.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan contractsv1.Envelope
	closed      bool
	wg          sync.WaitGroup
	bufferSize  int
	logger      *slog.Logger
}

func NewBus(bufferSize int, logger *slog.Logger) *Bus {
	if bufferSize <= 0 {
		bufferSize = 128
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]chan contractsv1.Envelope),
		bufferSize:  bufferSize,
		logger:      logger,
	}
}

// Publish hands the event to every subscriber of topic. A full subscriber
// buffer skips that subscriber and Publish returns ErrSubscriberBackpressure,
// so subscribers must tolerate redelivery of events they already saw.
func (b *Bus) Publish(ctx context.Context, topic string, event contractsv1.Envelope) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	dropped := 0
	for _, sub := range b.subscribers[topic] {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		default:
			dropped++
			b.logger.Warn("dropping event for slow subscriber",
				"event", "bus_publish_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"event_id", event.EventID,
			)
		}
	}
	if dropped > 0 {
		return fmt.Errorf("%w: %d subscriber(s) of %s", ErrSubscriberBackpressure, dropped, topic)
	}

	b.logger.Debug("event published",
		"event", "bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

func (b *Bus) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, contractsv1.Envelope) error,
) error {
	ch := make(chan contractsv1.Envelope, b.bufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-ctx.Done():
				b.removeSubscriber(topic, ch)
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				if err := handler(ctx, event); err != nil {
					b.logger.Error("consumer handler failed",
						"event", "bus_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

// Close stops every subscriber goroutine and waits for them to return.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for topic, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
		delete(b.subscribers, topic)
	}
	b.mu.Unlock()
	b.wg.Wait()
}

func (b *Bus) removeSubscriber(topic string, target chan contractsv1.Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan contractsv1.Envelope, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers[topic] = filtered
}
