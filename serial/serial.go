// Package serial provides a mock word-oriented serial port for testing
// drivers.
//
// Serial differs from the bus mocks in one way: a multi-word transaction
// such as WriteMany is performed by the driver as a sequence of single-word
// calls. Transactions are therefore flattened into per-word steps when they
// are loaded, and each Read, Write or Flush call consumes one step.
package serial

import halmock "github.com/dbrgn/embedded-hal-mock"

type stepKind uint8

const (
	stepRead stepKind = iota
	stepWrite
	stepFlush
)

func (k stepKind) String() string {
	switch k {
	case stepRead:
		return "Read"
	case stepWrite:
		return "Write"
	case stepFlush:
		return "Flush"
	default:
		return "unknown"
	}
}

// step is one atomic expectation on the wire: a single word in or out, or
// a flush.
type step struct {
	kind stepKind
	word byte
	err  error
}

// Transaction is one expected serial interaction. A transaction may expand
// into several steps when it is loaded.
type Transaction struct {
	steps []step
}

// Read creates an expectation for a read returning word.
func Read(word byte) Transaction {
	return Transaction{steps: []step{{kind: stepRead, word: word}}}
}

// ReadMany creates an expectation for consecutive reads returning words.
func ReadMany(words []byte) Transaction {
	t := Transaction{steps: make([]step, len(words))}
	for i, w := range words {
		t.steps[i] = step{kind: stepRead, word: w}
	}
	return t
}

// ReadError creates an expectation for a read returning err.
func ReadError(err error) Transaction {
	return Transaction{steps: []step{{kind: stepRead, err: err}}}
}

// Write creates an expectation for a write of word.
func Write(word byte) Transaction {
	return Transaction{steps: []step{{kind: stepWrite, word: word}}}
}

// WriteMany creates an expectation for consecutive writes of words.
func WriteMany(words []byte) Transaction {
	t := Transaction{steps: make([]step, len(words))}
	for i, w := range words {
		t.steps[i] = step{kind: stepWrite, word: w}
	}
	return t
}

// WriteError creates an expectation for a write of word returning err after
// the word is validated.
func WriteError(word byte, err error) Transaction {
	return Transaction{steps: []step{{kind: stepWrite, word: word, err: err}}}
}

// Flush creates an expectation for a flush of the transmit buffer.
func Flush() Transaction {
	return Transaction{steps: []step{{kind: stepFlush}}}
}

// FlushError creates an expectation for a flush returning err.
func FlushError(err error) Transaction {
	return Transaction{steps: []step{{kind: stepFlush, err: err}}}
}

func flatten(transactions []Transaction) []step {
	var steps []step
	for _, t := range transactions {
		steps = append(steps, t.steps...)
	}
	return steps
}

// Mock is a mock serial port. Unlike the bus mocks it has no separate
// device layer: serial is not part of the multiplexed engine, so the
// operations sit directly on the mock.
type Mock struct {
	gen *halmock.Generic[step]
}

// New creates a mock preloaded with transactions, in order.
func New(transactions []Transaction, opts ...halmock.Option) *Mock {
	gen := halmock.New(flatten(transactions),
		append([]halmock.Option{halmock.WithName("serial")}, opts...)...)
	return &Mock{gen: gen}
}

// Clone returns a handle sharing this mock's queue and completion state.
func (m *Mock) Clone() *Mock {
	return &Mock{gen: m.gen.Clone()}
}

// Expect replaces the loaded expectations, implicitly verifying that the
// previous ones were all consumed.
func (m *Mock) Expect(transactions ...Transaction) {
	m.gen.Expect(flatten(transactions)...)
}

// Append adds expectations to the end of the queue.
func (m *Mock) Append(transactions ...Transaction) {
	m.gen.Append(flatten(transactions)...)
}

// Read receives one word.
func (m *Mock) Read() (byte, error) {
	s, ok := m.gen.Next()
	if !ok {
		m.gen.Fatalf("no expectation for Read call")
		return 0, nil
	}
	if s.kind != stepRead {
		m.gen.Fatalf("Read: unexpected mode, next expectation is %v", s.kind)
		return 0, nil
	}
	if s.err != nil {
		return 0, s.err
	}
	return s.word, nil
}

// Write transmits one word.
func (m *Mock) Write(word byte) error {
	s, ok := m.gen.Next()
	if !ok {
		m.gen.Fatalf("no expectation for Write call")
		return nil
	}
	if s.kind != stepWrite {
		m.gen.Fatalf("Write: unexpected mode, next expectation is %v", s.kind)
		return nil
	}
	if s.word != word {
		m.gen.Fatalf("Write: word 0x%02x does not match expectation 0x%02x", word, s.word)
		return nil
	}
	return s.err
}

// Flush blocks until the transmit buffer is empty.
func (m *Mock) Flush() error {
	s, ok := m.gen.Next()
	if !ok {
		m.gen.Fatalf("no expectation for Flush call")
		return nil
	}
	if s.kind != stepFlush {
		m.gen.Fatalf("Flush: unexpected mode, next expectation is %v", s.kind)
		return nil
	}
	return s.err
}

// Done asserts that every expectation was consumed.
func (m *Mock) Done() {
	m.gen.Done()
}
