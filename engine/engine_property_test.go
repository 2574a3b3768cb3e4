package engine

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	halmock "github.com/dbrgn/embedded-hal-mock"
	"github.com/dbrgn/embedded-hal-mock/pin"
	"github.com/dbrgn/embedded-hal-mock/testutil"
)

// ============================================================================
// Property: handle identity
// For any interleaving of expectations across several pin handles, replaying
// the calls in declaration order succeeds, and consuming the stream head
// through any other handle raises an identity mismatch.
// ============================================================================

func TestProperty_HandleIdentity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		numHandles := rapid.IntRange(2, 4).Draw(rt, "numHandles")
		owners := rapid.SliceOfN(rapid.IntRange(0, numHandles-1), 1, 16).Draw(rt, "owners")
		misdeliver := rapid.Bool().Draw(rt, "misdeliver")

		rep := &testutil.Reporter{}
		eng := New(halmock.WithReporter(rep))

		handles := make([]*Pin, numHandles)
		for i := range handles {
			handles[i] = eng.Pin()
		}

		for _, owner := range owners {
			handles[owner].Expect(pin.Set(pin.High))
		}

		if misdeliver {
			// Consume the stream head through a handle that does not own it.
			wrong := (owners[0] + 1) % numHandles
			msg, ok := testutil.Catch(func() { handles[wrong].SetHigh() })
			if !ok {
				rt.Fatal("misdelivered call passed silently")
			}
			if !strings.Contains(msg, "wrong peripheral instance") {
				rt.Fatalf("diagnostic %q does not name the identity mismatch", msg)
			}
			return
		}

		for i, owner := range owners {
			if err := handles[owner].SetHigh(); err != nil {
				rt.Fatalf("call %d via handle %d: %v", i, owner, err)
			}
		}

		eng.Done()
		if len(rep.Fatals) != 0 {
			rt.Fatalf("unexpected violations: %v", rep.Fatals)
		}
	})
}
