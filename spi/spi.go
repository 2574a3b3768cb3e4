// Package spi provides a mock SPI bus for testing drivers.
//
// Expectations are declared in order and consumed by the driver's Write,
// Read and Transfer calls. See the root package docs for the overall
// expect-run-done flow.
package spi

import (
	"bytes"

	halmock "github.com/dbrgn/embedded-hal-mock"
)

// Kind discriminates the SPI transaction modes.
type Kind uint8

const (
	// KindWrite expects an outbound-only transfer.
	KindWrite Kind = iota
	// KindRead expects an inbound-only transfer.
	KindRead
	// KindTransfer expects a full-duplex transfer.
	KindTransfer
)

func (k Kind) String() string {
	switch k {
	case KindWrite:
		return "Write"
	case KindRead:
		return "Read"
	case KindTransfer:
		return "Transfer"
	default:
		return "unknown"
	}
}

// Transaction is one expected SPI interaction. It is immutable once built.
type Transaction struct {
	kind     Kind
	expected []byte
	response []byte
	err      error
}

// Write creates an expectation for an outbound transfer of expected.
func Write(expected []byte) Transaction {
	return Transaction{kind: KindWrite, expected: bytes.Clone(expected)}
}

// Read creates an expectation for an inbound transfer returning response.
func Read(response []byte) Transaction {
	return Transaction{kind: KindRead, response: bytes.Clone(response)}
}

// Transfer creates an expectation for a full-duplex transfer clocking out
// expected while clocking in response. Both must have the same length.
func Transfer(expected, response []byte) Transaction {
	return Transaction{
		kind:     KindTransfer,
		expected: bytes.Clone(expected),
		response: bytes.Clone(response),
	}
}

// WithError attaches an injected error to the transaction. The operation
// kind and outbound data are still validated before the error is returned;
// the canned response is not written.
func (t Transaction) WithError(err error) Transaction {
	t.err = err
	return t
}

// Device implements the SPI operations over an expectation source.
type Device struct {
	src halmock.Source[Transaction]
}

// NewDevice creates a device consuming expectations from src.
func NewDevice(src halmock.Source[Transaction]) *Device {
	return &Device{src: src}
}

// Write clocks out w, discarding the inbound bytes.
func (d *Device) Write(w []byte) error {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for Write call")
		return nil
	}
	if tx.kind != KindWrite {
		d.src.Fatalf("Write: unexpected mode, next expectation is %v", tx.kind)
		return nil
	}
	if !bytes.Equal(tx.expected, w) {
		d.src.Fatalf("Write: data %v does not match expectation %v", w, tx.expected)
		return nil
	}
	return tx.err
}

// Read clocks in len(buf) bytes while sending filler.
func (d *Device) Read(buf []byte) error {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for Read call")
		return nil
	}
	if tx.kind != KindRead {
		d.src.Fatalf("Read: unexpected mode, next expectation is %v", tx.kind)
		return nil
	}
	if len(buf) != len(tx.response) {
		d.src.Fatalf("Read: buffer length %d does not match response length %d",
			len(buf), len(tx.response))
		return nil
	}
	if tx.err != nil {
		return tx.err
	}
	copy(buf, tx.response)
	return nil
}

// Transfer clocks out w and clocks the inbound bytes into buf. Both slices
// must have the expected transaction's length.
func (d *Device) Transfer(w, buf []byte) error {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for Transfer call")
		return nil
	}
	if tx.kind != KindTransfer {
		d.src.Fatalf("Transfer: unexpected mode, next expectation is %v", tx.kind)
		return nil
	}
	if !bytes.Equal(tx.expected, w) {
		d.src.Fatalf("Transfer: data %v does not match expectation %v", w, tx.expected)
		return nil
	}
	if len(buf) != len(tx.response) {
		d.src.Fatalf("Transfer: buffer length %d does not match response length %d",
			len(buf), len(tx.response))
		return nil
	}
	if tx.err != nil {
		return tx.err
	}
	copy(buf, tx.response)
	return nil
}

// Mock is a self-contained SPI mock owning its expectation queue.
type Mock struct {
	*Device
	gen *halmock.Generic[Transaction]
}

// New creates a mock preloaded with transactions, in order.
func New(transactions []Transaction, opts ...halmock.Option) *Mock {
	gen := halmock.New(transactions,
		append([]halmock.Option{halmock.WithName("spi")}, opts...)...)
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
