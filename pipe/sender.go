package pipe

import "sync"

// Sender is the write side of a pipe.
type Sender struct {
	q      *queue
	once   sync.Once
	closed bool
}

// Send appends v to the pipe. It never blocks.
// Returns ErrNoReceiver if the receiver has been closed.
func (s *Sender) Send(v int64) error {
	q := s.q
	q.mu.Lock()
	defer q.mu.Unlock()

	if s.closed {
		return ErrSenderClosed
	}

	if q.detached {
		return ErrNoReceiver
	}

	q.values = append(q.values, v)
	q.cond.Signal()
	return nil
}

// Clone returns a new sender for the same pipe. The pipe stays open
// until every sender has been closed.
func (s *Sender) Clone() *Sender {
	q := s.q
	q.mu.Lock()
	defer q.mu.Unlock()

	q.senders++
	return &Sender{q: q}
}

// Close releases the sender. Closing the last sender wakes a blocked
// receiver, which then drains the remaining values and reports ErrClosed.
// Close is idempotent.
func (s *Sender) Close() {
	s.once.Do(func() {
		q := s.q
		q.mu.Lock()
		defer q.mu.Unlock()

		s.closed = true
		q.senders--
		if q.senders == 0 {
			q.cond.Broadcast()
		}
	})
}
