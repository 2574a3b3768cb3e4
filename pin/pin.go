// Package pin provides a mock digital I/O pin for testing drivers.
package pin

import halmock "github.com/dbrgn/embedded-hal-mock"

// State is a digital pin level.
type State uint8

const (
	// Low is the logical low level.
	Low State = iota
	// High is the logical high level.
	High
)

func (s State) String() string {
	if s == High {
		return "high"
	}
	return "low"
}

// Kind discriminates the pin transaction modes.
type Kind uint8

const (
	// KindSet expects the pin to be driven to a level.
	KindSet Kind = iota
	// KindGet expects the pin level to be read.
	KindGet
	// KindToggle expects the pin level to be toggled.
	KindToggle
)

func (k Kind) String() string {
	switch k {
	case KindSet:
		return "Set"
	case KindGet:
		return "Get"
	case KindToggle:
		return "Toggle"
	default:
		return "unknown"
	}
}

// Transaction is one expected pin interaction. It is immutable once built.
type Transaction struct {
	kind  Kind
	state State
	err   error
}

// Set creates an expectation for the pin being driven to state.
func Set(state State) Transaction {
	return Transaction{kind: KindSet, state: state}
}

// Get creates an expectation for the pin level being read, returning state.
func Get(state State) Transaction {
	return Transaction{kind: KindGet, state: state}
}

// Toggle creates an expectation for the pin level being toggled.
func Toggle() Transaction {
	return Transaction{kind: KindToggle}
}

// WithError attaches an injected error to the transaction. The operation
// kind and level are still validated before the error is returned.
func (t Transaction) WithError(err error) Transaction {
	t.err = err
	return t
}

// Device implements the pin operations over an expectation source.
type Device struct {
	src halmock.Source[Transaction]
}

// NewDevice creates a device consuming expectations from src.
func NewDevice(src halmock.Source[Transaction]) *Device {
	return &Device{src: src}
}

// SetHigh drives the pin high.
func (d *Device) SetHigh() error {
	return d.set("SetHigh", High)
}

// SetLow drives the pin low.
func (d *Device) SetLow() error {
	return d.set("SetLow", Low)
}

func (d *Device) set(op string, state State) error {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for %s call", op)
		return nil
	}
	if tx.kind != KindSet {
		d.src.Fatalf("%s: unexpected mode, next expectation is %v", op, tx.kind)
		return nil
	}
	if tx.state != state {
		d.src.Fatalf("%s: level %v does not match expectation %v", op, state, tx.state)
		return nil
	}
	return tx.err
}

// Toggle flips the pin level.
func (d *Device) Toggle() error {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for Toggle call")
		return nil
	}
	if tx.kind != KindToggle {
		d.src.Fatalf("Toggle: unexpected mode, next expectation is %v", tx.kind)
		return nil
	}
	return tx.err
}

// IsHigh reports whether the pin level is high.
func (d *Device) IsHigh() (bool, error) {
	state, err := d.get("IsHigh")
	return state == High, err
}

// IsLow reports whether the pin level is low.
func (d *Device) IsLow() (bool, error) {
	state, err := d.get("IsLow")
	return state == Low, err
}

func (d *Device) get(op string) (State, error) {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for %s call", op)
		return Low, nil
	}
	if tx.kind != KindGet {
		d.src.Fatalf("%s: unexpected mode, next expectation is %v", op, tx.kind)
		return Low, nil
	}
	if tx.err != nil {
		return Low, tx.err
	}
	return tx.state, nil
}

// Mock is a self-contained pin mock owning its expectation queue.
type Mock struct {
	*Device
	gen *halmock.Generic[Transaction]
}

// New creates a mock preloaded with transactions, in order.
func New(transactions []Transaction, opts ...halmock.Option) *Mock {
	gen := halmock.New(transactions,
		append([]halmock.Option{halmock.WithName("pin")}, opts...)...)
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
