package halmock

import "fmt"

// TestReporter is the surface the mocks use to report expectation violations.
// *testing.T satisfies it. Implementations must not return from Fatalf; like
// testing.T, they are expected to stop the calling goroutine.
type TestReporter interface {
	// Errorf reports a violation and marks the test as failed.
	Errorf(format string, args ...any)

	// Fatalf reports a violation and aborts the calling goroutine.
	Fatalf(format string, args ...any)
}

// Optional reporter capabilities. They are probed with type assertions so
// that *testing.T integrates fully while minimal reporters stay minimal.
type (
	// helperReporter marks the caller as a test helper (testing.T.Helper).
	helperReporter interface{ Helper() }

	// cleanupReporter registers a function to run at test end
	// (testing.T.Cleanup). Used for the automatic completion check.
	cleanupReporter interface{ Cleanup(func()) }

	// failedReporter reports whether the test has already failed
	// (testing.T.Failed). A failing test suppresses the missed-Done
	// diagnostic, since the mock state is unreliable mid-failure.
	failedReporter interface{ Failed() bool }
)

// PanicReporter returns the default TestReporter. It panics with the
// formatted diagnostic, so violations surface loudly even when a mock is
// used outside a test context.
func PanicReporter() TestReporter {
	return panicReporter{}
}

type panicReporter struct{}

func (panicReporter) Errorf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

func (panicReporter) Fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
