package pipe

// Receiver is the read side of a pipe. A pipe has exactly one receiver;
// it must not be used from more than one goroutine at a time.
type Receiver struct {
	q *queue
}

// Receive removes and returns the oldest value in the pipe.
//
// If the pipe is empty, Receive blocks until a value is sent. It returns
// ErrClosed if the pipe is empty and all senders have been closed, or if the
// receiver is closed while waiting.
func (r *Receiver) Receive() (int64, error) {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if q.detached {
			return 0, ErrClosed
		}

		if q.len() > 0 {
			return q.pop(), nil
		}

		if q.senders == 0 {
			return 0, ErrClosed
		}

		q.cond.Wait()
	}
}

// TryReceive returns the oldest value without blocking.
// Returns false if no value is queued.
func (r *Receiver) TryReceive() (int64, bool) {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.detached || q.len() == 0 {
		return 0, false
	}

	return q.pop(), true
}

// Drain removes and returns every queued value without blocking.
func (r *Receiver) Drain() []int64 {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.detached {
		return nil
	}

	out := make([]int64, q.len())
	for i := range out {
		out[i] = q.pop()
	}

	return out
}

// Collect receives values until the pipe is closed and returns them in order.
func (r *Receiver) Collect() []int64 {
	var out []int64

	for {
		v, err := r.Receive()
		if err != nil {
			return out
		}
		out = append(out, v)
	}
}

// Len returns the number of values currently queued.
func (r *Receiver) Len() int {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.len()
}

// Closed returns true if all senders have been closed.
// Values may still be queued.
func (r *Receiver) Closed() bool {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.senders == 0
}

// Close releases the receiver. Queued values are discarded, subsequent
// sends fail with ErrNoReceiver and a pending Receive returns ErrClosed.
// Close is idempotent.
func (r *Receiver) Close() {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()

	q.detached = true
	q.values = nil
	q.head = 0
	q.cond.Broadcast()
}
