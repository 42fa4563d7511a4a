// Package time provides a clock seam so services can be tested with a
// pinned "now"
package time

import "time"

// Clock yields the current instant
type Clock interface {
	Now() time.Time
}

// Real is the wall clock
type Real struct{}

// Now implements Clock
func (Real) Now() time.Time { return time.Now().UTC() }

// Fixed is a frozen clock for tests
type Fixed struct{ T time.Time }

// Now implements Clock
func (f Fixed) Now() time.Time { return f.T }
