package halmock

// doneState tracks whether a completion check happened since the last time
// expectations were loaded.
type doneState uint8

const (
	// donePending means expectations were loaded and Done has not been
	// called since.
	donePending doneState = iota

	// doneChecked means Done was called and no expectations were loaded
	// afterwards.
	doneChecked
)

func (s doneState) String() string {
	switch s {
	case donePending:
		return "pending"
	case doneChecked:
		return "checked"
	default:
		return "unknown"
	}
}

// doneCallDetector enforces that exactly one completion check happens per
// load cycle. The state machine is:
//
//	pending --Done--> checked
//	checked --Done--> ErrDoneAlreadyCalled
//	pending/checked --load--> pending
//
// A mock still pending when its test ends is reported through the reporter's
// Cleanup hook, see Generic.
type doneCallDetector struct {
	state doneState
}

// markCalled records a completion check. It returns ErrDoneAlreadyCalled if
// a check already happened since the last load.
func (d *doneCallDetector) markCalled() error {
	if d.state == doneChecked {
		return ErrDoneAlreadyCalled
	}
	d.state = doneChecked
	return nil
}

// reset re-arms the detector after expectations are loaded.
func (d *doneCallDetector) reset() {
	d.state = donePending
}

// pending reports whether a completion check is still owed.
func (d *doneCallDetector) pending() bool {
	return d.state == donePending
}
