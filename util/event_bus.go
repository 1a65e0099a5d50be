// api/util/event_bus.go

package util

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	logger "github.com/cobaltsec/aegis/api/logging"
)

// Event is an in-process notification: grant changes and policy reloads
// flow through here to whoever keeps derived state, like the decision cache.
type Event struct {
	Type    string
	Payload interface{}
}

// EventHandler reacts to one event. A returned error is collected by the
// bus; it never propagates back to the publisher.
type EventHandler func(context.Context, Event) error

// EventBus fans events out to subscribers. Handlers run in their own
// goroutines so a slow cache invalidation cannot delay the publishing
// request.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]EventHandler
	errs        chan error
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventHandler),
		errs:        make(chan error, 100),
	}
}

// Subscribe registers a handler for an event type. Subscriptions happen at
// wiring time and are never removed.
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
}

// Publish delivers the event to every subscriber of its type and returns
// without waiting for the handlers.
func (eb *EventBus) Publish(ctx context.Context, eventType string, payload interface{}) {
	eb.mu.RLock()
	handlers := eb.subscribers[eventType]
	eb.mu.RUnlock()

	event := Event{Type: eventType, Payload: payload}
	for _, handler := range handlers {
		go func(h EventHandler) {
			err := h(ctx, event)
			if err == nil {
				return
			}
			select {
			case eb.errs <- fmt.Errorf("%s handler: %w", eventType, err):
			default:
				logger.Error("Event handler failed with error channel full",
					zap.String("eventType", eventType),
					zap.Error(err))
			}
		}(handler)
	}
}

// Start drains handler errors into the log until ctx ends.
func (eb *EventBus) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case err := <-eb.errs:
				logger.Error("Event handler failed", zap.Error(err))
			case <-ctx.Done():
				return
			}
		}
	}()
}
