// Package engine multiplexes several peripheral mocks over one shared,
// ordered expectation stream.
//
// Independent per-peripheral mocks can only verify per-peripheral ordering.
// The engine tags every expectation with the identity of the handle that
// must consume it, so a single stream can express requirements such as
// "drive the pin high, then write on SPI, then delay":
//
//	eng := engine.New(halmock.WithReporter(t))
//	cs := eng.Pin()
//	bus := eng.SPI()
//	wait := eng.Delay()
//
//	cs.Expect(pin.Set(pin.High))
//	bus.Expect(spi.Write([]byte{1, 2}))
//	wait.Expect(delay.For(100 * time.Millisecond))
//
//	// ... run the driver against cs, bus and wait ...
//
//	eng.Done()
//
// A call through any handle pops the head of the shared stream and fails
// if the tagged expectation belongs to a different peripheral kind or to a
// different handle of the same kind.
package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	halmock "github.com/dbrgn/embedded-hal-mock"
	"github.com/dbrgn/embedded-hal-mock/delay"
	"github.com/dbrgn/embedded-hal-mock/i2c"
	"github.com/dbrgn/embedded-hal-mock/pin"
	"github.com/dbrgn/embedded-hal-mock/spi"
)

// Kind identifies which peripheral type owns a tagged expectation.
type Kind uint8

const (
	// KindI2C tags an I2C transaction.
	KindI2C Kind = iota + 1
	// KindSPI tags an SPI transaction.
	KindSPI
	// KindPin tags a digital pin transaction.
	KindPin
	// KindDelay tags a delay transaction.
	KindDelay
)

func (k Kind) String() string {
	switch k {
	case KindI2C:
		return "i2c"
	case KindSPI:
		return "spi"
	case KindPin:
		return "pin"
	case KindDelay:
		return "delay"
	default:
		return "unknown"
	}
}

// Expectation is one tagged slot in the shared stream: a peripheral
// transaction plus the identity of the handle that must consume it.
type Expectation struct {
	owner uuid.UUID
	label string
	kind  Kind
	tx    any
}

// String names the slot for diagnostics without dumping the payload.
func (e Expectation) String() string {
	return fmt.Sprintf("%s (%+v)", e.label, e.tx)
}

// Engine fans one ordered expectation stream out to many peripheral
// handles. All handles spawned from one engine share the stream and its
// completion obligation.
type Engine struct {
	gen *halmock.Generic[Expectation]

	mu     sync.Mutex
	counts map[Kind]int
}

// New creates an engine with no expectations loaded.
func New(opts ...halmock.Option) *Engine {
	gen := halmock.New[Expectation](nil,
		append([]halmock.Option{halmock.WithName("engine")}, opts...)...)
	return &Engine{gen: gen, counts: make(map[Kind]int)}
}

// I2C spawns a new I2C handle drawing from the shared stream.
func (e *Engine) I2C() *I2C {
	p := e.spawn(KindI2C)
	return &I2C{Device: i2c.NewDevice(i2cSource{p}), p: p}
}

// SPI spawns a new SPI handle drawing from the shared stream.
func (e *Engine) SPI() *SPI {
	p := e.spawn(KindSPI)
	return &SPI{Device: spi.NewDevice(spiSource{p}), p: p}
}

// Pin spawns a new digital pin handle drawing from the shared stream.
func (e *Engine) Pin() *Pin {
	p := e.spawn(KindPin)
	return &Pin{Device: pin.NewDevice(pinSource{p}), p: p}
}

// Delay spawns a new delay handle drawing from the shared stream.
func (e *Engine) Delay() *Delay {
	p := e.spawn(KindDelay)
	return &Delay{Device: delay.NewDevice(delaySource{p}), p: p}
}

// Done asserts that every expectation loaded through any handle was
// consumed, regardless of which handle consumed it.
func (e *Engine) Done() {
	e.gen.Done()
}

// Remaining returns the number of unconsumed expectations on the shared
// stream.
func (e *Engine) Remaining() int {
	return e.gen.Remaining()
}

func (e *Engine) spawn(kind Kind) *peripheral {
	e.mu.Lock()
	n := e.counts[kind]
	e.counts[kind]++
	e.mu.Unlock()

	return &peripheral{
		id:    uuid.New(),
		label: fmt.Sprintf("%s#%d", kind, n),
		kind:  kind,
		gen:   e.gen,
	}
}

// peripheral is the per-handle identity over the shared stream.
type peripheral struct {
	id    uuid.UUID
	label string
	kind  Kind
	gen   *halmock.Generic[Expectation]
}

// next pops the next tagged expectation and validates that it belongs to
// this handle before handing the payload back. Kind is checked before
// identity so that "wrong peripheral type" wins over "wrong instance" when
// both are off.
func (p *peripheral) next() (any, bool) {
	exp, ok := p.gen.Next()
	if !ok {
		return nil, false
	}
	if exp.kind != p.kind {
		p.gen.Fatalf("%s: wrong peripheral type: next expectation is %v", p.label, exp)
		return nil, false
	}
	if exp.owner != p.id {
		p.gen.Fatalf("%s: wrong peripheral instance: next expectation belongs to %s",
			p.label, exp.label)
		return nil, false
	}
	return exp.tx, true
}

// Fatalf reports a violation prefixed with this handle's label.
func (p *peripheral) Fatalf(format string, args ...any) {
	p.gen.Fatalf(p.label+": "+format, args...)
}

// expect appends a tagged expectation for this handle to the shared stream.
func (p *peripheral) expect(tx any) {
	p.gen.Append(Expectation{owner: p.id, label: p.label, kind: p.kind, tx: tx})
}

// Per-kind sources adapting a peripheral to the adapter device seams. The
// payload type assertions are safe: next only returns a payload after the
// kind tag matched.

type i2cSource struct{ *peripheral }

func (s i2cSource) Next() (i2c.Transaction, bool) {
	tx, ok := s.next()
	if !ok {
		return i2c.Transaction{}, false
	}
	return tx.(i2c.Transaction), true
}

type spiSource struct{ *peripheral }

func (s spiSource) Next() (spi.Transaction, bool) {
	tx, ok := s.next()
	if !ok {
		return spi.Transaction{}, false
	}
	return tx.(spi.Transaction), true
}

type pinSource struct{ *peripheral }

func (s pinSource) Next() (pin.Transaction, bool) {
	tx, ok := s.next()
	if !ok {
		return pin.Transaction{}, false
	}
	return tx.(pin.Transaction), true
}

type delaySource struct{ *peripheral }

func (s delaySource) Next() (delay.Transaction, bool) {
	tx, ok := s.next()
	if !ok {
		return delay.Transaction{}, false
	}
	return tx.(delay.Transaction), true
}

// I2C is an I2C handle bound to one identity on the shared stream.
type I2C struct {
	*i2c.Device
	p *peripheral
}

// Expect appends tagged expectations for this handle to the shared stream.
// The append position, relative to Expect calls on other handles, fixes the
// required cross-peripheral ordering.
func (h *I2C) Expect(transactions ...i2c.Transaction) *I2C {
	for _, tx := range transactions {
		h.p.expect(tx)
	}
	return h
}

// SPI is an SPI handle bound to one identity on the shared stream.
type SPI struct {
	*spi.Device
	p *peripheral
}

// Expect appends tagged expectations for this handle to the shared stream.
func (h *SPI) Expect(transactions ...spi.Transaction) *SPI {
	for _, tx := range transactions {
		h.p.expect(tx)
	}
	return h
}

// Pin is a digital pin handle bound to one identity on the shared stream.
type Pin struct {
	*pin.Device
	p *peripheral
}

// Expect appends tagged expectations for this handle to the shared stream.
func (h *Pin) Expect(transactions ...pin.Transaction) *Pin {
	for _, tx := range transactions {
		h.p.expect(tx)
	}
	return h
}

// Delay is a delay handle bound to one identity on the shared stream.
type Delay struct {
	*delay.Device
	p *peripheral
}

// Expect appends tagged expectations for this handle to the shared stream.
func (h *Delay) Expect(transactions ...delay.Transaction) *Delay {
	for _, tx := range transactions {
		h.p.expect(tx)
	}
	return h
}
