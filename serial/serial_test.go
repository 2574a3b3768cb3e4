package serial

import (
	"testing"

	"github.com/stretchr/testify/require"

	halmock "github.com/dbrgn/embedded-hal-mock"
	"github.com/dbrgn/embedded-hal-mock/testutil"
)

func TestMock_ReadWriteFlush(t *testing.T) {
	rep := &testutil.Reporter{}
	port := New([]Transaction{
		Read(0x23),
		WriteMany([]byte{0x55, 0xAA}),
		Flush(),
	}, halmock.WithReporter(rep))

	word, err := port.Read()
	require.NoError(t, err)
	require.Equal(t, byte(0x23), word)

	require.NoError(t, port.Write(0x55))
	require.NoError(t, port.Write(0xAA))
	require.NoError(t, port.Flush())

	port.Done()
	require.Empty(t, rep.Fatals)
}

func TestMock_MultiWordTransactionConsumesStepwise(t *testing.T) {
	rep := &testutil.Reporter{}
	port := New([]Transaction{
		ReadMany([]byte{1, 2, 3}),
	}, halmock.WithReporter(rep))

	for _, want := range []byte{1, 2, 3} {
		word, err := port.Read()
		require.NoError(t, err)
		require.Equal(t, want, word)
	}
	port.Done()
}

func TestMock_PartiallyConsumedTransactionFailsDone(t *testing.T) {
	rep := &testutil.Reporter{}
	port := New([]Transaction{
		WriteMany([]byte{1, 2, 3}),
	}, halmock.WithReporter(rep))

	require.NoError(t, port.Write(1))

	testutil.ExpectFailureContaining(t, "2 remaining", func() {
		port.Done()
	})
}

func TestMock_WordMismatchFails(t *testing.T) {
	rep := &testutil.Reporter{}
	port := New([]Transaction{Write(0x55)}, halmock.WithReporter(rep))

	testutil.ExpectFailureContaining(t, "word 0x56 does not match expectation 0x55", func() {
		port.Write(0x56)
	})
}

func TestMock_ModeMismatchFails(t *testing.T) {
	rep := &testutil.Reporter{}
	port := New([]Transaction{Flush()}, halmock.WithReporter(rep))

	testutil.ExpectFailureContaining(t, "Read: unexpected mode", func() {
		port.Read()
	})
}

func TestMock_StarvationFails(t *testing.T) {
	rep := &testutil.Reporter{}
	port := New(nil, halmock.WithReporter(rep))

	testutil.ExpectFailureContaining(t, "no expectation for Flush call", func() {
		port.Flush()
	})
}

func TestMock_ErrorInjection(t *testing.T) {
	rep := &testutil.Reporter{}
	port := New([]Transaction{
		ReadError(halmock.ErrOverrun),
		WriteError(0x10, halmock.ErrBus),
		FlushError(halmock.ErrOther),
	}, halmock.WithReporter(rep))

	_, err := port.Read()
	require.ErrorIs(t, err, halmock.ErrOverrun)

	require.ErrorIs(t, port.Write(0x10), halmock.ErrBus)
	require.ErrorIs(t, port.Flush(), halmock.ErrOther)

	port.Done()
	require.Empty(t, rep.Fatals)
}

func TestMock_WriteErrorStillValidatesWord(t *testing.T) {
	rep := &testutil.Reporter{}
	port := New([]Transaction{
		WriteError(0x10, halmock.ErrBus),
	}, halmock.WithReporter(rep))

	testutil.ExpectFailureContaining(t, "does not match expectation", func() {
		port.Write(0x99)
	})
}
