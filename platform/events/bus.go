package events

import (
	"context"
	"sync"

	"leadtrack_backend/platform/logger"
)

// InMemoryBus is a process-local Bus implementation. Handlers registered
// for an event name receive every published event of that name. Publish
// detaches from the request context so a slow handler never delays the
// HTTP response.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all handlers asynchronously. Handler
// errors are logged, never propagated: events are best-effort fan-out.
func (b *InMemoryBus) Publish(_ context.Context, event Event) {
	handlers := b.handlersFor(event.EventName())

	for _, handler := range handlers {
		h := handler
		go func() {
			if err := h.Handle(context.Background(), event); err != nil && b.log != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err)
			}
		}()
	}
}

// PublishSync dispatches the event to all handlers in order and returns
// the first error encountered.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	handlers := b.handlersFor(event.EventName())

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (b *InMemoryBus) handlersFor(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	registered := b.handlers[eventName]
	handlers := make([]Handler, len(registered))
	copy(handlers, registered)
	return handlers
}

// Compile-time check that InMemoryBus implements Bus
var _ Bus = (*InMemoryBus)(nil)
