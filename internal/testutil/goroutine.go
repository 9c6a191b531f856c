package testutil

import (
	"runtime"
	"testing"
	"time"
)

const settleTimeout = 5 * time.Second

// CheckGoroutines records the goroutine count now and fails the test if it
// has not dropped back to within margin of that count once the test ends.
func CheckGoroutines(t testing.TB, margin int) {
	t.Helper()
	baseline := runtime.NumGoroutine()
	t.Cleanup(func() {
		deadline := time.Now().Add(settleTimeout)
		for time.Now().Before(deadline) {
			if runtime.NumGoroutine() <= baseline+margin {
				return
			}
			time.Sleep(50 * time.Millisecond)
		}
		t.Errorf("goroutine leak: baseline=%d, current=%d, margin=%d", baseline, runtime.NumGoroutine(), margin)
	})
}
