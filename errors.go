package halmock

import "errors"

// Completion check errors
//
// These appear inside the fatal diagnostics raised through the configured
// TestReporter; they are exported so tests can match on them.
var (
	// ErrDoneAlreadyCalled indicates Done was called twice without loading
	// new expectations in between.
	ErrDoneAlreadyCalled = errors.New("Done called more than once")

	// ErrDoneNotCalled indicates a mock reached the end of its test without
	// a completion check.
	ErrDoneNotCalled = errors.New("Done was never called")

	// ErrUnsatisfiedExpectations indicates expectations remained in the
	// queue at the time of a completion check.
	ErrUnsatisfiedExpectations = errors.New("unsatisfied expectations")
)

// Injectable peripheral errors
//
// Ready-made error values for use with the transaction WithError builders.
// Any error value works; these cover the common bus failure modes so tests
// do not have to invent their own.
var (
	// ErrBus indicates a generic bus error condition.
	ErrBus = errors.New("bus error")

	// ErrArbitrationLoss indicates the peripheral lost bus arbitration.
	ErrArbitrationLoss = errors.New("arbitration loss")

	// ErrNoAcknowledge indicates the addressed device did not acknowledge.
	ErrNoAcknowledge = errors.New("no acknowledge")

	// ErrOverrun indicates data was lost because it was not read in time.
	ErrOverrun = errors.New("overrun")

	// ErrOther indicates a peripheral error with no further detail.
	ErrOther = errors.New("peripheral error")
)
