// Package i2c provides a mock I2C bus for testing drivers.
//
// A test declares the expected transactions in order, hands the mock to the
// driver under test and calls Done at the end:
//
//	bus := i2c.New([]i2c.Transaction{
//		i2c.Write(0xAA, []byte{1, 2}),
//		i2c.Read(0xBB, []byte{3, 4}),
//	}, halmock.WithReporter(t))
//
//	// ... run the driver against bus ...
//
//	bus.Done()
package i2c

import (
	"bytes"

	halmock "github.com/dbrgn/embedded-hal-mock"
)

// Kind discriminates the I2C transaction modes.
type Kind uint8

const (
	// KindWrite expects a bus write.
	KindWrite Kind = iota
	// KindRead expects a bus read.
	KindRead
	// KindWriteRead expects a write followed by a read without releasing
	// the bus.
	KindWriteRead
)

func (k Kind) String() string {
	switch k {
	case KindWrite:
		return "Write"
	case KindRead:
		return "Read"
	case KindWriteRead:
		return "WriteRead"
	default:
		return "unknown"
	}
}

// Transaction is one expected I2C interaction. It is immutable once built.
type Transaction struct {
	kind     Kind
	addr     byte
	expected []byte
	response []byte
	err      error
}

// Write creates an expectation for a write of expected to addr.
func Write(addr byte, expected []byte) Transaction {
	return Transaction{kind: KindWrite, addr: addr, expected: bytes.Clone(expected)}
}

// Read creates an expectation for a read from addr returning response.
func Read(addr byte, response []byte) Transaction {
	return Transaction{kind: KindRead, addr: addr, response: bytes.Clone(response)}
}

// WriteRead creates an expectation for a combined write-then-read on addr.
func WriteRead(addr byte, expected, response []byte) Transaction {
	return Transaction{
		kind:     KindWriteRead,
		addr:     addr,
		expected: bytes.Clone(expected),
		response: bytes.Clone(response),
	}
}

// WithError attaches an injected error to the transaction. The operation
// kind, address and outbound data are still validated before the error is
// returned to the caller; the canned response of a read is not written.
func (t Transaction) WithError(err error) Transaction {
	t.err = err
	return t
}

// Device implements the I2C operations over an expectation source. Mock
// embeds it over its own queue; the engine package embeds it over a handle
// of the shared multiplexed stream.
type Device struct {
	src halmock.Source[Transaction]
}

// NewDevice creates a device consuming expectations from src.
func NewDevice(src halmock.Source[Transaction]) *Device {
	return &Device{src: src}
}

// Write performs a bus write of w to addr.
func (d *Device) Write(addr byte, w []byte) error {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for Write call")
		return nil
	}
	if tx.kind != KindWrite {
		d.src.Fatalf("Write: unexpected mode, next expectation is %v", tx.kind)
		return nil
	}
	if tx.addr != addr {
		d.src.Fatalf("Write: address 0x%02x does not match expectation 0x%02x", addr, tx.addr)
		return nil
	}
	if !bytes.Equal(tx.expected, w) {
		d.src.Fatalf("Write: data %v does not match expectation %v", w, tx.expected)
		return nil
	}
	return tx.err
}

// Read performs a bus read from addr into buf. The buffer length must match
// the canned response length.
func (d *Device) Read(addr byte, buf []byte) error {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for Read call")
		return nil
	}
	if tx.kind != KindRead {
		d.src.Fatalf("Read: unexpected mode, next expectation is %v", tx.kind)
		return nil
	}
	if tx.addr != addr {
		d.src.Fatalf("Read: address 0x%02x does not match expectation 0x%02x", addr, tx.addr)
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

// WriteRead performs a write of w to addr followed by a read into buf,
// without releasing the bus in between.
func (d *Device) WriteRead(addr byte, w, buf []byte) error {
	tx, ok := d.src.Next()
	if !ok {
		d.src.Fatalf("no expectation for WriteRead call")
		return nil
	}
	if tx.kind != KindWriteRead {
		d.src.Fatalf("WriteRead: unexpected mode, next expectation is %v", tx.kind)
		return nil
	}
	if tx.addr != addr {
		d.src.Fatalf("WriteRead: address 0x%02x does not match expectation 0x%02x", addr, tx.addr)
		return nil
	}
	if !bytes.Equal(tx.expected, w) {
		d.src.Fatalf("WriteRead: data %v does not match expectation %v", w, tx.expected)
		return nil
	}
	if len(buf) != len(tx.response) {
		d.src.Fatalf("WriteRead: buffer length %d does not match response length %d",
			len(buf), len(tx.response))
		return nil
	}
	if tx.err != nil {
		return tx.err
	}
	copy(buf, tx.response)
	return nil
}

// Mock is a self-contained I2C mock owning its expectation queue.
type Mock struct {
	*Device
	gen *halmock.Generic[Transaction]
}

// New creates a mock preloaded with transactions, in order.
func New(transactions []Transaction, opts ...halmock.Option) *Mock {
	gen := halmock.New(transactions,
		append([]halmock.Option{halmock.WithName("i2c")}, opts...)...)
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
