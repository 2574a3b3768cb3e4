package pwm

import (
	"errors"
	"testing"

	halmock "github.com/dbrgn/embedded-hal-mock"
	"github.com/dbrgn/embedded-hal-mock/testutil"
)

func TestMock_DutyCycle(t *testing.T) {
	rep := &testutil.Reporter{}
	ch := New([]Transaction{
		MaxDutyCycle(1024),
		SetDutyCycle(512),
	}, halmock.WithReporter(rep))

	max, err := ch.MaxDutyCycle()
	if err != nil {
		t.Fatalf("MaxDutyCycle: %v", err)
	}
	if max != 1024 {
		t.Errorf("MaxDutyCycle = %d, want 1024", max)
	}

	if err := ch.SetDutyCycle(512); err != nil {
		t.Fatalf("SetDutyCycle: %v", err)
	}

	ch.Done()
	if len(rep.Fatals) != 0 {
		t.Errorf("unexpected violations: %v", rep.Fatals)
	}
}

func TestMock_WrongDutyFails(t *testing.T) {
	rep := &testutil.Reporter{}
	ch := New([]Transaction{SetDutyCycle(100)}, halmock.WithReporter(rep))

	testutil.ExpectFailureContaining(t, "duty 200 does not match expectation 100", func() {
		ch.SetDutyCycle(200)
	})
}

func TestMock_InjectedError(t *testing.T) {
	rep := &testutil.Reporter{}
	ch := New([]Transaction{
		SetDutyCycle(100).WithError(halmock.ErrOther),
	}, halmock.WithReporter(rep))

	if err := ch.SetDutyCycle(100); !errors.Is(err, halmock.ErrOther) {
		t.Fatalf("expected injected error, got %v", err)
	}
	ch.Done()
}

func TestMock_StarvationFails(t *testing.T) {
	rep := &testutil.Reporter{}
	ch := New(nil, halmock.WithReporter(rep))

	testutil.ExpectFailureContaining(t, "no expectation for MaxDutyCycle call", func() {
		ch.MaxDutyCycle()
	})
}
