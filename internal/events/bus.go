package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/inkwellapp/inkwell/internal/id"
)

// Subscriber receives events from a Bus.
type Subscriber struct {
	SubscribedAt time.Time
	Events       chan Event
	Done         chan struct{}
	ID           string
	// BookID restricts delivery to events about one book. Empty means all events.
	BookID string
}

// Bus fans emitted events out to subscribers.
type Bus struct {
	subscribers map[string]*Subscriber
	events      chan Event
	logger      *slog.Logger
	wg          sync.WaitGroup
	mu          sync.RWMutex

	// Shutdown state - protected by shutdownMu
	shutdownMu sync.RWMutex
	shutdown   bool
}

// NewBus creates a new Bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[string]*Subscriber),
		events:      make(chan Event, 256),
		logger:      logger,
	}
}

// Start runs the fan-out loop until ctx is canceled.
// This should be called once at startup in a goroutine.
func (b *Bus) Start(ctx context.Context) {
	b.wg.Add(1)
	defer b.wg.Done()

	b.logger.Info("event bus starting")

	for {
		select {
		case event, ok := <-b.events:
			if !ok {
				return
			}
			b.broadcast(event)

		case <-ctx.Done():
			b.logger.Info("event bus stopping")
			b.closeAllSubscribers()
			return
		}
	}
}

// Shutdown stops accepting events, drains what is queued, and closes every subscriber.
func (b *Bus) Shutdown(ctx context.Context) error {
	b.logger.Info("event bus shutdown initiated")

	// Close under the write lock so Emit never sends on a closed channel.
	b.shutdownMu.Lock()
	if b.shutdown {
		b.shutdownMu.Unlock()
		return nil
	}
	b.shutdown = true
	close(b.events)
	b.shutdownMu.Unlock()

	done := make(chan struct{})
	go func() {
		for event := range b.events {
			b.broadcast(event)
		}
		close(done)
	}()

	select {
	case <-done:
		b.logger.Debug("event bus drained")
	case <-ctx.Done():
		b.logger.Warn("event bus drain timeout, some events may be lost")
	}

	b.wg.Wait()
	b.closeAllSubscribers()

	b.logger.Info("event bus shutdown complete")
	return nil
}

func (b *Bus) broadcast(event Event) {
	var delivered, dropped, filtered int

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if sub.BookID != "" && event.BookID != sub.BookID {
			filtered++
			continue
		}

		// Non-blocking send (drop if subscriber is slow).
		select {
		case sub.Events <- event:
			delivered++
		default:
			dropped++
			b.logger.Warn("dropped event for slow subscriber",
				slog.String("subscriber_id", sub.ID),
				slog.String("event_type", string(event.Type)))
		}
	}

	b.logger.Debug("event broadcast",
		slog.String("event_type", string(event.Type)),
		slog.Group("stats",
			slog.Int("delivered", delivered),
			slog.Int("filtered", filtered),
			slog.Int("dropped", dropped)))
}

// Subscribe registers a subscriber. bookID narrows delivery to one book; empty means everything.
func (b *Bus) Subscribe(bookID string) (*Subscriber, error) {
	subID, err := id.Generate("sub")
	if err != nil {
		return nil, err
	}

	sub := &Subscriber{
		ID:           subID,
		BookID:       bookID,
		Events:       make(chan Event, 64),
		Done:         make(chan struct{}),
		SubscribedAt: time.Now(),
	}

	b.mu.Lock()
	b.subscribers[sub.ID] = sub
	total := len(b.subscribers)
	b.mu.Unlock()

	b.logger.Debug("subscriber added",
		slog.String("subscriber_id", subID),
		slog.String("book_id", bookID),
		slog.Int("total_subscribers", total))
	return sub, nil
}

// Unsubscribe removes a subscriber and closes its channels.
func (b *Bus) Unsubscribe(subID string) {
	b.mu.Lock()
	sub, ok := b.subscribers[subID]
	if !ok {
		b.mu.Unlock()
		return
	}
	delete(b.subscribers, subID)
	b.mu.Unlock()

	close(sub.Done)
	close(sub.Events)
}

// Emit queues an event for fan-out. Events emitted after Shutdown are dropped.
func (b *Bus) Emit(event Event) {
	b.shutdownMu.RLock()
	defer b.shutdownMu.RUnlock()

	if b.shutdown {
		return
	}

	select {
	case b.events <- event:
	default:
		b.logger.Error("event queue full, dropping event",
			slog.String("event_type", string(event.Type)))
	}
}

// SubscriberCount returns the number of subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

func (b *Bus) closeAllSubscribers() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subscribers {
		close(sub.Done)
		close(sub.Events)
	}
	b.subscribers = make(map[string]*Subscriber)
}
