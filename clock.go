package arbiter

import (
	"sync/atomic"
	"time"
)

// Clock supplies the current time in whole seconds since the Unix epoch.
type Clock interface {
	Now() int64
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() int64

// Now calls f.
func (f ClockFunc) Now() int64 { return f() }

// SystemClock reads the wall clock.
type SystemClock struct{}

var _ Clock = SystemClock{}

// Now returns time.Now() truncated to seconds.
func (SystemClock) Now() int64 { return time.Now().Unix() }

// ManualClock is a clock that only moves when told to.
// It is safe for concurrent use.
type ManualClock struct {
	now atomic.Int64
}

var _ Clock = (*ManualClock)(nil)

// NewManualClock creates a ManualClock reading start.
func NewManualClock(start int64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)
	return c
}

func (c *ManualClock) Now() int64 { return c.now.Load() }

// Set moves the clock to t. Moving backwards is allowed but histories
// recorded after the rewind may trim incorrectly.
func (c *ManualClock) Set(t int64) { c.now.Store(t) }

// Advance moves the clock forward by d seconds and returns the new time.
func (c *ManualClock) Advance(d int64) int64 { return c.now.Add(d) }
