package i2c

import (
	"bytes"
	"errors"
	"testing"

	"pgregory.net/rapid"

	halmock "github.com/dbrgn/embedded-hal-mock"
	"github.com/dbrgn/embedded-hal-mock/testutil"
)

func newMock(t *testing.T, rep *testutil.Reporter, txs ...Transaction) *Mock {
	t.Helper()
	return New(txs, halmock.WithReporter(rep))
}

// ============================================================================
// Happy Path Tests
// ============================================================================

func TestMock_WriteThenRead(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep,
		Write(0xAA, []byte{1, 2}),
		Read(0xBB, []byte{3, 4}),
	)

	if err := bus.Write(0xAA, []byte{1, 2}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	buf := make([]byte, 2)
	if err := bus.Read(0xBB, buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(buf, []byte{3, 4}) {
		t.Errorf("Read returned %v, want [3 4]", buf)
	}

	bus.Done()
	if len(rep.Fatals) != 0 {
		t.Errorf("unexpected violations: %v", rep.Fatals)
	}
}

func TestMock_WriteRead(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep, WriteRead(0x42, []byte{0x01}, []byte{0xCA, 0xFE}))

	buf := make([]byte, 2)
	if err := bus.WriteRead(0x42, []byte{0x01}, buf); err != nil {
		t.Fatalf("WriteRead: %v", err)
	}
	if !bytes.Equal(buf, []byte{0xCA, 0xFE}) {
		t.Errorf("WriteRead returned %v, want [202 254]", buf)
	}
	bus.Done()
}

// ============================================================================
// Violation Tests
// Starvation, mode mismatch, payload mismatch, residual expectations.
// ============================================================================

func TestMock_StarvationFails(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep)

	testutil.ExpectFailureContaining(t, "no expectation for Write call", func() {
		bus.Write(0xAA, []byte{1})
	})
}

func TestMock_ModeMismatchFails(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep, Read(0xAA, []byte{1}))

	testutil.ExpectFailureContaining(t, "Write: unexpected mode", func() {
		bus.Write(0xAA, []byte{1})
	})
}

func TestMock_PayloadMismatchNamesBothValues(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep, Write(0xAA, []byte{1, 2}))

	msg := testutil.ExpectFailure(t, func() {
		bus.Write(0xAA, []byte{1, 3})
	})
	if !bytes.Contains([]byte(msg), []byte("[1 3]")) ||
		!bytes.Contains([]byte(msg), []byte("[1 2]")) {
		t.Errorf("diagnostic %q does not name expected and actual data", msg)
	}
}

func TestMock_AddressMismatchFails(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep, Write(0xAA, []byte{1}))

	testutil.ExpectFailureContaining(t, "address 0xab does not match expectation 0xaa", func() {
		bus.Write(0xAB, []byte{1})
	})
}

func TestMock_ReadBufferLengthMismatchFails(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep, Read(0xAA, []byte{1, 2}))

	testutil.ExpectFailureContaining(t, "buffer length 1 does not match response length 2", func() {
		bus.Read(0xAA, make([]byte, 1))
	})
}

func TestMock_UnconsumedExpectationFailsDone(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep, Read(0xAA, []byte{1, 2}))

	testutil.ExpectFailureContaining(t, "1 remaining", func() {
		bus.Done()
	})
}

// ============================================================================
// Error Injection Tests
// ============================================================================

func TestMock_InjectedErrorRoundTrip(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep,
		Write(0xAA, []byte{1}).WithError(halmock.ErrNoAcknowledge),
	)

	err := bus.Write(0xAA, []byte{1})
	if !errors.Is(err, halmock.ErrNoAcknowledge) {
		t.Fatalf("expected injected error, got %v", err)
	}

	// Exactly one transaction was consumed.
	bus.Done()
	if len(rep.Fatals) != 0 {
		t.Errorf("unexpected violations: %v", rep.Fatals)
	}
}

func TestMock_InjectedErrorSkipsResponse(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep,
		Read(0xAA, []byte{3, 4}).WithError(halmock.ErrBus),
	)

	buf := make([]byte, 2)
	if err := bus.Read(0xAA, buf); !errors.Is(err, halmock.ErrBus) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if !bytes.Equal(buf, []byte{0, 0}) {
		t.Errorf("buffer must stay untouched on injected error, got %v", buf)
	}
	bus.Done()
}

func TestMock_InjectedErrorStillValidatesData(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep,
		Write(0xAA, []byte{1}).WithError(halmock.ErrBus),
	)

	testutil.ExpectFailureContaining(t, "data", func() {
		bus.Write(0xAA, []byte{9})
	})
}

// ============================================================================
// Sharing Tests
// ============================================================================

func TestMock_CloneDoneAfterConsumptionViaOriginal(t *testing.T) {
	rep := &testutil.Reporter{}
	bus := newMock(t, rep, Write(0xAA, []byte{1}))
	clone := bus.Clone()

	if err := bus.Write(0xAA, []byte{1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	clone.Done()

	if len(rep.Fatals) != 0 {
		t.Errorf("unexpected violations: %v", rep.Fatals)
	}
}

// ============================================================================
// Property: queued write/read sequences performed in order always succeed
// and return the queued data.
// ============================================================================

func TestProperty_OrderedRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		addr := testutil.Addr().Draw(rt, "busAddr")
		payloads := testutil.Payloads().Draw(rt, "payloads")
		reads := rapid.SliceOfN(rapid.Bool(), len(payloads), len(payloads)).Draw(rt, "reads")

		txs := make([]Transaction, len(payloads))
		for i, p := range payloads {
			if reads[i] {
				txs[i] = Read(addr, p)
			} else {
				txs[i] = Write(addr, p)
			}
		}

		rep := &testutil.Reporter{}
		bus := New(txs, halmock.WithReporter(rep))

		for i, p := range payloads {
			if reads[i] {
				buf := make([]byte, len(p))
				if err := bus.Read(addr, buf); err != nil {
					rt.Fatalf("Read %d: %v", i, err)
				}
				if !bytes.Equal(buf, p) {
					rt.Fatalf("Read %d returned %v, want %v", i, buf, p)
				}
			} else {
				if err := bus.Write(addr, p); err != nil {
					rt.Fatalf("Write %d: %v", i, err)
				}
			}
		}

		bus.Done()
		if len(rep.Fatals) != 0 {
			rt.Fatalf("unexpected violations: %v", rep.Fatals)
		}
	})
}
