// Package events provides a non-blocking observation bus for transfer
// failures and completion notices. Publishers never block: if a
// subscriber's buffer is full the event is dropped and counted.
package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// EventType defines the types of events that can be emitted.
type EventType string

const (
	EventUnitFailed       EventType = "unit_failed"       // One file operation failed
	EventTransferComplete EventType = "transfer_complete" // A whole call settled
)

// Default and maximum subscriber buffer sizes.
const (
	DefaultBuffer = 1000
	MaxBuffer     = 10000
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// UnitFailedEvent reports one file-level operation that failed.
// The call it belongs to keeps running; this is observation only.
type UnitFailedEvent struct {
	BaseEvent
	Path      string // Source path of the failed unit
	Operation string // "copy", "move" or "delete"
	Err       error
}

// TransferCompleteEvent reports a settled call.
type TransferCompleteEvent struct {
	BaseEvent
	Operation string
	Total     int
	Failed    int
}

// Bus distributes events to subscribers without ever blocking the
// publisher.
type Bus struct {
	subscribers map[EventType][]chan Event
	all         []chan Event
	mu          sync.RWMutex
	bufferSize  int
	closed      bool
	dropped     atomic.Int64
}

// NewBus creates an event bus with the given subscriber buffer size.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBuffer
	}
	if bufferSize > MaxBuffer {
		bufferSize = MaxBuffer
	}
	return &Bus{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type.
func (b *Bus) Subscribe(eventType EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	return ch
}

// SubscribeAll creates a subscription to all events.
func (b *Bus) SubscribeAll() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.all = append(b.all, ch)
	return ch
}

// Publish sends an event to all subscribers. Never blocks: full
// subscriber buffers drop the event.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
	for _, ch := range b.all {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// PublishUnitFailure is a convenience method for reporting a failed unit.
func (b *Bus) PublishUnitFailure(path, operation string, err error) {
	b.Publish(UnitFailedEvent{
		BaseEvent: BaseEvent{EventType: EventUnitFailed, Time: time.Now()},
		Path:      path,
		Operation: operation,
		Err:       err,
	})
}

// PublishTransferComplete is a convenience method for reporting a settled call.
func (b *Bus) PublishTransferComplete(operation string, total, failed int) {
	b.Publish(TransferCompleteEvent{
		BaseEvent: BaseEvent{EventType: EventTransferComplete, Time: time.Now()},
		Operation: operation,
		Total:     total,
		Failed:    failed,
	})
}

// Dropped returns the number of events dropped due to full buffers.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, channels := range b.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
	for _, ch := range b.all {
		close(ch)
	}
	b.subscribers = nil
	b.all = nil
}
