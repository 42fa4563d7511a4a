// Package testkit carries small helpers shared by _test files
package testkit

import "testing"

// Swap sets *target to v for the duration of the test and restores the
// previous value on cleanup
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Must fails the test on err
func Must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
