package arbiter

// GreedyQuota admits work at full priority until the interval's limit is
// used up, then refuses everything until the oldest consumption ages out.
type GreedyQuota struct {
	window
	limit    int
	priority float64
}

var _ Quota = (*GreedyQuota)(nil)

// NewGreedyQuota creates a greedy quota allowing limit consumptions per
// intervalSeconds. A zero priority means 1. The priority is only compared
// against other quotas registered with the same Manager.
func NewGreedyQuota(clock Clock, intervalSeconds int64, limit int, priority float64) *GreedyQuota {
	if priority == 0 {
		priority = 1
	}
	return &GreedyQuota{
		window:   window{clock: orSystemClock(clock), interval: intervalSeconds},
		limit:    limit,
		priority: priority,
	}
}

// Evaluate returns the priority while the interval has room left, else 0.
func (q *GreedyQuota) Evaluate() float64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.observe(q.clock.Now())

	if q.limit > q.consumption.Len() {
		return q.priority
	}
	return 0
}

// Limit returns the maximum consumptions per interval.
func (q *GreedyQuota) Limit() int { return q.limit }

// Priority returns the score reported while quota remains.
func (q *GreedyQuota) Priority() float64 { return q.priority }
