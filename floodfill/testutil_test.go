package floodfill

import (
	"testing"
	"time"
)

// timeoutCh returns a channel that fires after a short deadline, used to
// bound tests that assert a loop terminates.
func timeoutCh(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}
