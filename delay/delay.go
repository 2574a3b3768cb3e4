// Package delay provides a mock delay source for testing drivers.
//
// By default no time is actually spent: the mock only asserts that the
// driver requested the expected delay. A transaction built with
// WithActualDelay makes the call really sleep, for tests that depend on
// wall-clock timing.
package delay

import (
	"time"

	halmock "github.com/dbrgn/embedded-hal-mock"
)

// Transaction is one expected delay call. It is immutable once built.
//
// Delay calls cannot fail, so there is no error-injecting builder.
type Transaction struct {
	d      time.Duration
	actual bool
}

// For creates an expectation for a delay of d.
func For(d time.Duration) Transaction {
	return Transaction{d: d}
}

// WithActualDelay makes the mocked call really sleep for the expected
// duration. The sleep happens after the expectation is consumed and the
// queue lock released.
func (t Transaction) WithActualDelay() Transaction {
	t.actual = true
	return t
}

// Device implements the delay operations over an expectation source.
type Device struct {
	src halmock.Source[Transaction]
}

// NewDevice creates a device consuming expectations from src.
func NewDevice(src halmock.Source[Transaction]) *Device {
	return &Device{src: src}
}

// Delay pauses execution for d.
func (d *Device) Delay(dur time.Duration) {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for Delay call")
		return
	}
	if tx.d != dur {
		d.src.Fatalf("Delay: duration %v does not match expectation %v", dur, tx.d)
		return
	}
	if tx.actual {
		time.Sleep(dur)
	}
}

// DelayMs pauses execution for ms milliseconds.
func (d *Device) DelayMs(ms uint32) {
	d.Delay(time.Duration(ms) * time.Millisecond)
}

// DelayUs pauses execution for us microseconds.
func (d *Device) DelayUs(us uint32) {
	d.Delay(time.Duration(us) * time.Microsecond)
}

// Mock is a self-contained delay mock owning its expectation queue.
type Mock struct {
	*Device
	gen *halmock.Generic[Transaction]
}

// New creates a mock preloaded with transactions, in order.
func New(transactions []Transaction, opts ...halmock.Option) *Mock {
	gen := halmock.New(transactions,
		append([]halmock.Option{halmock.WithName("delay")}, opts...)...)
	return &Mock{Device: NewDevice(gen), gen: gen}
}

// Clone returns a handle sharing this mock's queue and completion state.
func (m *Mock) Clone() *Mock {
	gen := m.gen.Clone()
	return &Mock{Device: NewDevice(gen), gen: gen}
}

// Expect replaces the loaded expectations, implicitly verifying that the
// previous ones were all consumed.
func (m *Mock) Expect(transactions ...Transaction) {
	m.gen.Expect(transactions...)
}

// Append adds expectations to the end of the queue.
func (m *Mock) Append(transactions ...Transaction) {
	m.gen.Append(transactions...)
}

// Done asserts that every expectation was consumed.
func (m *Mock) Done() {
	m.gen.Done()
}
