// Package pwm provides a mock PWM channel for testing drivers.
package pwm

import halmock "github.com/dbrgn/embedded-hal-mock"

// Kind discriminates the PWM transaction modes.
type Kind uint8

const (
	// KindSetDutyCycle expects the duty cycle to be set.
	KindSetDutyCycle Kind = iota
	// KindMaxDutyCycle expects the maximum duty cycle to be queried.
	KindMaxDutyCycle
)

func (k Kind) String() string {
	switch k {
	case KindSetDutyCycle:
		return "SetDutyCycle"
	case KindMaxDutyCycle:
		return "MaxDutyCycle"
	default:
		return "unknown"
	}
}

// Transaction is one expected PWM interaction. It is immutable once built.
type Transaction struct {
	kind Kind
	duty uint16
	err  error
}

// SetDutyCycle creates an expectation for the duty cycle being set to duty.
func SetDutyCycle(duty uint16) Transaction {
	return Transaction{kind: KindSetDutyCycle, duty: duty}
}

// MaxDutyCycle creates an expectation for the maximum duty cycle being
// queried, returning duty.
func MaxDutyCycle(duty uint16) Transaction {
	return Transaction{kind: KindMaxDutyCycle, duty: duty}
}

// WithError attaches an injected error to the transaction. The operation
// kind and duty value are still validated before the error is returned.
func (t Transaction) WithError(err error) Transaction {
	t.err = err
	return t
}

// Mock is a mock PWM channel. PWM is not part of the multiplexed engine, so
// the operations sit directly on the mock.
type Mock struct {
	gen *halmock.Generic[Transaction]
}

// New creates a mock preloaded with transactions, in order.
func New(transactions []Transaction, opts ...halmock.Option) *Mock {
	gen := halmock.New(transactions,
		append([]halmock.Option{halmock.WithName("pwm")}, opts...)...)
	return &Mock{gen: gen}
}

// Clone returns a handle sharing this mock's queue and completion state.
func (m *Mock) Clone() *Mock {
	return &Mock{gen: m.gen.Clone()}
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

// SetDutyCycle sets the channel duty cycle.
func (m *Mock) SetDutyCycle(duty uint16) error {
	tx, ok := m.gen.Next()
	if !ok {
		m.gen.Fatalf("no expectation for SetDutyCycle call")
		return nil
	}
	if tx.kind != KindSetDutyCycle {
		m.gen.Fatalf("SetDutyCycle: unexpected mode, next expectation is %v", tx.kind)
		return nil
	}
	if tx.duty != duty {
		m.gen.Fatalf("SetDutyCycle: duty %d does not match expectation %d", duty, tx.duty)
		return nil
	}
	return tx.err
}

// MaxDutyCycle returns the maximum duty cycle value.
func (m *Mock) MaxDutyCycle() (uint16, error) {
	tx, ok := m.gen.Next()
	if !ok {
		m.gen.Fatalf("no expectation for MaxDutyCycle call")
		return 0, nil
	}
	if tx.kind != KindMaxDutyCycle {
		m.gen.Fatalf("MaxDutyCycle: unexpected mode, next expectation is %v", tx.kind)
		return 0, nil
	}
	if tx.err != nil {
		return 0, tx.err
	}
	return tx.duty, nil
}

// Done asserts that every expectation was consumed.
func (m *Mock) Done() {
	m.gen.Done()
}
