// Package mock provides a recording service callback for tests and examples.
package mock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ineyio/arbiter"
)

// Service records every payload it is dispatched.
type Service struct {
	name      string
	latency   time.Duration
	callCount atomic.Int64
	onCall    func(payload any)

	mu       sync.Mutex
	payloads []any
}

// Option configures a mock Service.
type Option func(*Service)

// New creates a mock service with the given options.
func New(opts ...Option) *Service {
	s := &Service{name: "mock"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithName sets the service name.
func WithName(name string) Option {
	return func(s *Service) { s.name = name }
}

// WithLatency adds simulated latency to each call.
func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

// WithOnCall runs fn for every payload after it is recorded.
func WithOnCall(fn func(payload any)) Option {
	return func(s *Service) { s.onCall = fn }
}

// Name returns the service name.
func (s *Service) Name() string { return s.name }

// Callback returns the function to register with a Manager.
func (s *Service) Callback() arbiter.Callback {
	return s.Handle
}

// Handle records payload.
func (s *Service) Handle(payload any) {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	s.callCount.Add(1)

	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()

	if s.onCall != nil {
		s.onCall(payload)
	}
}

// CallCount returns the number of payloads dispatched to the service.
func (s *Service) CallCount() int64 { return s.callCount.Load() }

// Payloads returns the recorded payloads in dispatch order.
func (s *Service) Payloads() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]any, len(s.payloads))
	copy(out, s.payloads)
	return out
}

// Last returns the most recent payload, or nil.
func (s *Service) Last() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.payloads) == 0 {
		return nil
	}
	return s.payloads[len(s.payloads)-1]
}
