package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultBufferSize is the per-listener queue length
const DefaultBufferSize = 64

// Bus is an in-process broadcast channel. Delivery never blocks the sender:
// a listener whose queue is full misses the event, which is safe because
// every board_updated listener reloads wholesale.
type Bus struct {
	mu         sync.Mutex
	listeners  map[int]chan Event
	nextID     int
	bufferSize int
	sequence   int64
	closed     bool
	done       chan struct{}
}

// NewBus creates a bus with the given per-listener buffer size
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Bus{
		listeners:  make(map[int]chan Event),
		bufferSize: bufferSize,
		done:       make(chan struct{}),
	}
}

// SendEvent stamps the event with a timestamp and sequence number and fans
// it out to every listener.
func (b *Bus) SendEvent(event Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBusClosed
	}

	b.sequence++
	event.SequenceID = b.sequence
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	for id, ch := range b.listeners {
		select {
		case ch <- event:
		default:
			slog.Warn("event listener queue full, dropping event",
				"listener", id,
				"event_type", event.Type,
				"sequence", event.SequenceID)
		}
	}
	return nil
}

// Listen registers a listener. The channel closes when ctx is done or the
// bus is closed.
func (b *Bus) Listen(ctx context.Context) (<-chan Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBusClosed
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Event, b.bufferSize)
	b.listeners[id] = ch

	go func() {
		select {
		case <-ctx.Done():
			b.remove(id)
		case <-b.done:
		}
	}()
	return ch, nil
}

// Closed reports whether Close has been called
func (b *Bus) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.listeners[id]; ok {
		delete(b.listeners, id)
		close(ch)
	}
}

// Close stops the bus. Safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	for id, ch := range b.listeners {
		delete(b.listeners, id)
		close(ch)
	}
	return nil
}
