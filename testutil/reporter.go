// Package testutil provides shared infrastructure for exercising the mocks'
// failure paths in tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
)

// failure is the sentinel panic payload Reporter.Fatalf aborts with. It is
// unexported so that unrelated panics pass through Catch untouched.
type failure struct {
	msg string
}

// Reporter records expectation violations instead of failing the test, so
// the violation paths themselves can be asserted on.
//
// Fatalf aborts the calling goroutine by panicking with an internal
// sentinel, mirroring how testing.T.Fatalf stops a test. Use ExpectFailure
// to run the violating call and recover the diagnostic.
type Reporter struct {
	Errors []string
	Fatals []string
}

// Errorf records a non-fatal violation.
func (r *Reporter) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Fatalf records the diagnostic and aborts the calling goroutine.
func (r *Reporter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Fatals = append(r.Fatals, msg)
	panic(failure{msg: msg})
}

// ExpectFailure runs fn, which must provoke a fatal expectation violation
// through a Reporter, and returns the diagnostic. The test fails if fn
// completes without a violation.
func ExpectFailure(t *testing.T, fn func()) string {
	t.Helper()
	msg, ok := catch(fn)
	if !ok {
		t.Fatal("expected an expectation violation, got none")
	}
	return msg
}

// ExpectFailureContaining is ExpectFailure plus a substring check on the
// diagnostic.
func ExpectFailureContaining(t *testing.T, want string, fn func()) {
	t.Helper()
	msg := ExpectFailure(t, fn)
	if !strings.Contains(msg, want) {
		t.Fatalf("violation %q does not contain %q", msg, want)
	}
}

// Catch runs fn and recovers the diagnostic of the fatal violation it
// raised through a Reporter, if any. Unrelated panics pass through. Prefer
// ExpectFailure in ordinary tests; Catch exists for property-test bodies
// where failing the outer *testing.T directly is not appropriate.
func Catch(fn func()) (msg string, ok bool) {
	return catch(fn)
}

func catch(fn func()) (msg string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f, isFailure := r.(failure)
			if !isFailure {
				panic(r)
			}
			msg, ok = f.msg, true
		}
	}()
	fn()
	return "", false
}
