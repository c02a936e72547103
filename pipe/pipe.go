// Package pipe implements the ordered integer channels used to connect
// machines to each other and to their peripherals.
//
// A pipe has any number of Sender endpoints and exactly one Receiver.
// Sending never blocks. Receiving blocks until a value is available or
// every sender has been closed.
package pipe

import (
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by Receive when the pipe is empty and every
	// sender has been closed, or when the receiver itself was closed.
	ErrClosed = errors.New("pipe: closed")

	// ErrNoReceiver is returned by Send when the receiver has been closed.
	ErrNoReceiver = errors.New("pipe: receiver closed")

	// ErrSenderClosed is returned by Send on a sender that was already closed.
	ErrSenderClosed = errors.New("pipe: send on closed sender")
)

// queue is the state shared by all endpoints of one pipe.
type queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	values   []int64
	head     int
	senders  int  // Number of live senders.
	detached bool // Has the receiver been closed?
}

// New creates a new pipe and returns its two endpoints.
func New() (*Sender, *Receiver) {
	q := &queue{senders: 1}
	q.cond = sync.NewCond(&q.mu)
	return &Sender{q: q}, &Receiver{q: q}
}

// FromSlice returns the receiver of a pipe which yields the given values
// and then reports ErrClosed.
func FromSlice(values ...int64) *Receiver {
	tx, rx := New()
	for _, v := range values {
		tx.Send(v)
	}
	tx.Close()
	return rx
}

// len returns the number of queued values. q.mu must be held.
func (q *queue) len() int {
	return len(q.values) - q.head
}

// pop removes the oldest value. q.mu must be held and q.len() > 0.
func (q *queue) pop() int64 {
	v := q.values[q.head]
	q.head++

	// Reclaim the consumed prefix once it dominates the buffer.
	if q.head > 32 && q.head*2 >= len(q.values) {
		n := copy(q.values, q.values[q.head:])
		q.values = q.values[:n]
		q.head = 0
	}

	return v
}
