package halmock

import "sync"

// Source is the seam through which peripheral devices consume expectations.
// It is implemented by Generic itself and by the engine package's per-handle
// sources, which validate kind and identity tags before handing a
// transaction back.
type Source[T any] interface {
	// Next removes and returns the oldest remaining expectation.
	Next() (T, bool)

	// Fatalf reports a fatal expectation violation.
	Fatalf(format string, args ...any)
}

// Generic is the shared expectation engine all peripheral mocks build on.
// It holds an ordered queue of transactions that must be consumed strictly
// in FIFO order, and a completion detector that makes sure the queue is
// verified drained exactly once per load cycle.
//
// The state lives behind a shared record guarded by a mutex, so a cloned
// instance observes and mutates the same queue as the original. Typical
// usage clones the mock, moves the original into the driver under test and
// calls Done on the clone.
//
// Mismatches between expectations and actual calls are not recoverable
// runtime conditions; they signal a bug in the driver or in the test itself
// and are reported as fatal through the configured TestReporter.
type Generic[T any] struct {
	shared *sharedState[T]
}

type sharedState[T any] struct {
	mu       sync.Mutex
	queue    *fifo[T]
	detector doneCallDetector

	// name and reporter are immutable after construction and may be read
	// without holding mu.
	name     string
	reporter TestReporter
}

// New creates a mock engine preloaded with the given transactions, in order.
// The completion obligation starts armed: Done must be called before the
// test ends, even if transactions is empty.
//
// When the configured reporter provides a Cleanup hook (any *testing.T
// does) and auto-done is enabled, a forgotten Done call is reported at test
// end automatically.
func New[T any](transactions []T, opts ...Option) *Generic[T] {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Generic[T]{shared: &sharedState[T]{
		queue:    newFIFO[T](),
		name:     cfg.Name,
		reporter: cfg.Reporter,
	}}
	for _, tx := range transactions {
		g.shared.queue.add(tx)
	}

	if cfg.AutoDone {
		if c, ok := cfg.Reporter.(cleanupReporter); ok {
			c.Cleanup(g.verifyAtCleanup)
		}
	}

	return g
}

// Clone returns a handle sharing this mock's queue, completion state and
// reporter. Consuming or checking through either handle is observed by both.
func (g *Generic[T]) Clone() *Generic[T] {
	return &Generic[T]{shared: g.shared}
}

// Expect replaces the loaded expectations with a new list.
//
// Replacing first performs an implicit completion check on the residual
// expectations: if any remain unconsumed, a fatal violation is reported.
// The completion obligation is then re-armed for the new list. Unlike an
// explicit Done call, reloading after a completed check cycle is fine.
func (g *Generic[T]) Expect(transactions ...T) {
	s := g.shared
	s.mu.Lock()
	residual := s.queue.drain()
	if len(residual) > 0 {
		s.mu.Unlock()
		g.Fatalf("%v: %d remaining before reload, next: %+v",
			ErrUnsatisfiedExpectations, len(residual), residual[0])
		return
	}
	for _, tx := range transactions {
		s.queue.add(tx)
	}
	s.detector.reset()
	s.mu.Unlock()
}

// Append adds expectations to the end of the queue, keeping the ones
// already loaded. The engine package uses this to interleave expectations
// from several handles into one shared stream. Appending re-arms the
// completion obligation.
func (g *Generic[T]) Append(transactions ...T) {
	s := g.shared
	s.mu.Lock()
	for _, tx := range transactions {
		s.queue.add(tx)
	}
	s.detector.reset()
	s.mu.Unlock()
}

// Next removes and returns the oldest remaining expectation, reporting
// false once the queue is drained. Next is the only consumption primitive:
// every peripheral operation performs exactly one Next followed by its
// shape and payload assertions.
func (g *Generic[T]) Next() (T, bool) {
	s := g.shared
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.pop()
}

// Remaining returns the number of unconsumed expectations.
func (g *Generic[T]) Remaining() int {
	s := g.shared
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.len()
}

// Done asserts that every loaded expectation was consumed. It reports a
// fatal violation naming the exact remaining count if the queue is not
// empty, and another if Done was already called since the last load.
func (g *Generic[T]) Done() {
	s := g.shared
	s.mu.Lock()
	repeat := s.detector.markCalled()
	remaining := s.queue.drain()
	s.mu.Unlock()

	if repeat != nil {
		g.Fatalf("%v", repeat)
		return
	}
	if len(remaining) > 0 {
		g.Fatalf("%v: %d remaining after call to Done, next: %+v",
			ErrUnsatisfiedExpectations, len(remaining), remaining[0])
	}
}

// Fatalf reports a fatal expectation violation through the configured
// reporter, prefixed with the mock name. Peripheral devices use it for
// their shape and payload assertions.
func (g *Generic[T]) Fatalf(format string, args ...any) {
	s := g.shared
	if h, ok := s.reporter.(helperReporter); ok {
		h.Helper()
	}
	if s.name != "" {
		format = s.name + ": " + format
	}
	s.reporter.Fatalf(format, args...)
}

// verifyAtCleanup runs at test end when auto-done is armed. A still-pending
// completion check is reported through Errorf rather than Fatalf: there is
// nothing left to abort at that point, and a test that already failed is
// left alone since its mock state is not trustworthy.
func (g *Generic[T]) verifyAtCleanup() {
	s := g.shared
	s.mu.Lock()
	pending := s.detector.pending()
	remaining := s.queue.len()
	s.mu.Unlock()

	if !pending {
		return
	}
	if f, ok := s.reporter.(failedReporter); ok && f.Failed() {
		return
	}

	format := "%v (%d expectations remain)"
	if s.name != "" {
		format = s.name + ": " + format
	}
	s.reporter.Errorf(format, ErrDoneNotCalled, remaining)
}
