package arbiter

import (
	"fmt"
	"math"
)

// SmoothQuota spreads consumption over the interval by splitting it into
// buckets of interval/burstiness seconds, each allowed limit/burstiness units.
// Its score is the fraction of the current bucket that is still unused, so a
// Manager prefers whichever service is least utilized relative to its own size.
type SmoothQuota struct {
	window
	limit         int
	burstiness    float64
	bucketSeconds float64
	bucketQuota   float64
}

var _ Quota = (*SmoothQuota)(nil)

// NewSmoothQuota creates a smooth quota allowing limit consumptions per
// intervalSeconds. Higher burstiness means smaller buckets and a more even
// rate; 1 makes the bucket the whole interval.
func NewSmoothQuota(clock Clock, intervalSeconds int64, limit int, burstiness float64) (*SmoothQuota, error) {
	if !(burstiness > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidBurstiness, burstiness)
	}
	return &SmoothQuota{
		window:        window{clock: orSystemClock(clock), interval: intervalSeconds},
		limit:         limit,
		burstiness:    burstiness,
		bucketSeconds: float64(intervalSeconds) / burstiness,
		bucketQuota:   float64(limit) / burstiness,
	}, nil
}

// Evaluate returns the unused fraction of the current bucket, in (0,1], or 0
// once the bucket is full.
func (q *SmoothQuota) Evaluate() float64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.clock.Now()
	q.observe(now)

	if q.bucketQuota <= 0 {
		return 0
	}

	// Timestamps are whole seconds, so t > now-bucket holds exactly when
	// t > floor(now-bucket).
	bucketStart := int64(math.Floor(float64(now) - q.bucketSeconds))
	used := float64(q.consumption.Trim(bucketStart).Len())

	if used < q.bucketQuota {
		return (q.bucketQuota - used) / q.bucketQuota
	}
	return 0
}

// Limit returns the maximum consumptions per interval.
func (q *SmoothQuota) Limit() int { return q.limit }

// Burstiness returns the number of buckets the interval is split into.
func (q *SmoothQuota) Burstiness() float64 { return q.burstiness }

// BucketSeconds returns the bucket length, possibly fractional.
func (q *SmoothQuota) BucketSeconds() float64 { return q.bucketSeconds }

// BucketQuota returns the units allowed per bucket, possibly fractional.
func (q *SmoothQuota) BucketQuota() float64 { return q.bucketQuota }
