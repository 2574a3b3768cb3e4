package halmock

import "github.com/eapache/queue"

// fifo is a typed FIFO over a ring buffer. Insertion order is the expected
// execution order; pop only ever yields the oldest remaining element.
//
// fifo is not goroutine-safe on its own; the owning mock serializes access.
type fifo[T any] struct {
	q *queue.Queue
}

func newFIFO[T any]() *fifo[T] {
	return &fifo[T]{q: queue.New()}
}

func (f *fifo[T]) add(v T) {
	f.q.Add(v)
}

// pop removes and returns the oldest element, reporting false when drained.
func (f *fifo[T]) pop() (T, bool) {
	if f.q.Length() == 0 {
		var zero T
		return zero, false
	}
	return f.q.Remove().(T), true
}

func (f *fifo[T]) len() int {
	return f.q.Length()
}

// drain removes and returns all remaining elements in order.
func (f *fifo[T]) drain() []T {
	out := make([]T, 0, f.q.Length())
	for f.q.Length() > 0 {
		out = append(out, f.q.Remove().(T))
	}
	return out
}
