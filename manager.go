package arbiter

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Callback receives the payload passed to Manager.Call, untouched.
type Callback func(payload any)

// Manager arbitrates calls across services competing for a shared,
// rate-limited resource.
type Manager struct {
	mu       sync.Mutex
	clock    Clock
	meter    Meter
	services []service
	scores   []float64 // scratch space for Call, guarded by mu
}

type service struct {
	name     string
	callback Callback
	quota    Quota
}

// Decision describes what a single Call did.
type Decision struct {
	CallID     string
	Dispatched bool
	Service    string
	Index      int // -1 when no service was dispatched
	Score      float64
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used by Now and by quotas built through the Manager.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithMeter sets the meter.
func WithMeter(mt Meter) Option {
	return func(m *Manager) { m.meter = mt }
}

// NewManager creates an empty Manager. SystemClock and a no-op meter are
// used unless overridden via options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}

	// Apply defaults after options.
	m.clock = orSystemClock(m.clock)
	if m.meter == nil {
		m.meter = noopMeter{}
	}
	return m
}

// Now returns the current time in seconds according to the Manager's clock.
func (m *Manager) Now() int64 {
	return m.clock.Now()
}

// GreedyQuota builds a greedy quota reading the Manager's clock.
func (m *Manager) GreedyQuota(intervalSeconds int64, limit int, priority float64) *GreedyQuota {
	return NewGreedyQuota(m.clock, intervalSeconds, limit, priority)
}

// SmoothQuota builds a smooth quota reading the Manager's clock.
func (m *Manager) SmoothQuota(intervalSeconds int64, limit int, burstiness float64) (*SmoothQuota, error) {
	return NewSmoothQuota(m.clock, intervalSeconds, limit, burstiness)
}

// Add registers a service under a generated name. See AddNamed.
func (m *Manager) Add(callback Callback, quota Quota) error {
	return m.AddNamed("", callback, quota)
}

// AddNamed registers a service. Registration order breaks ties between equal
// scores: the earlier service wins. A quota must not be shared between
// registrations.
func (m *Manager) AddNamed(name string, callback Callback, quota Quota) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.services)
	if name == "" {
		name = fmt.Sprintf("service-%d", idx)
	}
	if callback == nil {
		return &ServiceError{Err: ErrNilCallback, Service: name, Index: idx}
	}
	if quota == nil {
		return &ServiceError{Err: ErrNilQuota, Service: name, Index: idx}
	}

	m.services = append(m.services, service{name: name, callback: callback, quota: quota})
	return nil
}

// Services returns the registered service names in registration order.
func (m *Manager) Services() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.services))
	for i, s := range m.services {
		names[i] = s.name
	}
	return names
}

// Call evaluates every service's quota, consumes one unit from the service
// with the highest positive score and hands it payload. If no service has
// room, onExhausted (when non-nil) receives payload instead.
//
// The Manager stays locked until the chosen callback returns, so callbacks
// must not call Call or Add on the same Manager.
func (m *Manager) Call(payload any, onExhausted Callback) Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	callID := uuid.New().String()

	m.scores = m.scores[:0]
	for _, s := range m.services {
		m.scores = append(m.scores, s.quota.Evaluate())
	}

	idx, score := selectBest(m.scores)
	if idx < 0 {
		m.meter.OnExhausted(ExhaustedEvent{
			CallID:   callID,
			Time:     m.clock.Now(),
			Services: len(m.services),
			Fallback: onExhausted != nil,
		})
		if onExhausted != nil {
			onExhausted(payload)
		}
		return Decision{CallID: callID, Index: -1}
	}

	winner := m.services[idx]

	// Consume before dispatching so a callback that inspects quotas sees
	// its own consumption.
	winner.quota.ConsumeOne()

	m.meter.OnDispatch(DispatchEvent{
		CallID:   callID,
		Time:     m.clock.Now(),
		Service:  winner.name,
		Index:    idx,
		Score:    score,
		Services: len(m.services),
	})

	winner.callback(payload)

	return Decision{
		CallID:     callID,
		Dispatched: true,
		Service:    winner.name,
		Index:      idx,
		Score:      score,
	}
}
