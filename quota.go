package arbiter

import "sync"

// Quota decides how much room a single service currently has.
//
// Evaluate is not a pure read: every call records a request and drops
// history that has fallen out of the quota's interval.
type Quota interface {
	// Evaluate returns the current availability score. Zero means the
	// service must not be dispatched to; any positive value is eligible and
	// higher scores win.
	Evaluate() float64

	// ConsumeOne records that one unit was used at the current time.
	ConsumeOne()
}

// window holds the bookkeeping shared by every strategy: a request history,
// a consumption history and the interval both are trimmed to.
type window struct {
	mu          sync.Mutex
	clock       Clock
	interval    int64
	requests    History
	consumption History
}

func orSystemClock(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}

// observe records a request at now and trims both histories to the interval.
// Must be called with mu held.
func (w *window) observe(now int64) {
	cutoff := now - w.interval
	w.requests = w.requests.Append(now)
	w.consumption = w.consumption.Trim(cutoff)
	w.requests = w.requests.Trim(cutoff)
}

// ConsumeOne records one unit of consumption. History is not trimmed here;
// the next evaluation takes care of it.
func (w *window) ConsumeOne() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.consumption = w.consumption.Append(w.clock.Now())
}

// Requests returns how many evaluations are retained in the request history.
func (w *window) Requests() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.requests.Len()
}

// Consumed returns how many consumptions are retained in the consumption history.
func (w *window) Consumed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.consumption.Len()
}

// Interval returns the window length in seconds.
func (w *window) Interval() int64 { return w.interval }
