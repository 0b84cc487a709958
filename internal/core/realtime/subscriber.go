package realtime

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrSubscriberClosed is returned by Send once the connection has gone away.
	ErrSubscriberClosed = errors.New("subscriber is closed")

	// ErrSubscriberLagging is returned by Send when the outbound queue is full.
	ErrSubscriberLagging = errors.New("subscriber queue is full")
)

// Subscriber is the handle of one open connection as seen by the registry.
// Send must never block.
type Subscriber interface {
	ID() string
	Send(msg []byte) error
	Closed() bool
}

// Outbox is a Subscriber backed by a bounded queue. The connection's writer
// drains Messages until Done is closed.
type Outbox struct {
	id    string
	queue chan []byte
	done  chan struct{}
	once  sync.Once
}

var _ Subscriber = (*Outbox)(nil)

// NewOutbox creates an open outbox holding up to size pending messages.
func NewOutbox(size int) *Outbox {
	if size <= 0 {
		size = 1
	}
	return &Outbox{
		id:    uuid.NewString(),
		queue: make(chan []byte, size),
		done:  make(chan struct{}),
	}
}

// ID identifies the outbox within a group.
func (o *Outbox) ID() string {
	return o.id
}

// Send enqueues msg without blocking.
func (o *Outbox) Send(msg []byte) error {
	select {
	case <-o.done:
		return ErrSubscriberClosed
	default:
	}

	select {
	case o.queue <- msg:
		return nil
	default:
		return ErrSubscriberLagging
	}
}

// Messages is the queue drained by the connection writer.
func (o *Outbox) Messages() <-chan []byte {
	return o.queue
}

// Done is closed by Close.
func (o *Outbox) Done() <-chan struct{} {
	return o.done
}

// Close marks the outbox closed. Safe to call more than once.
// The queue itself is never closed so a racing Send cannot panic.
func (o *Outbox) Close() {
	o.once.Do(func() { close(o.done) })
}

// Closed reports whether Close has been called.
func (o *Outbox) Closed() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}
