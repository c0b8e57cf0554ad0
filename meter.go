package arbiter

// Meter observes arbitration outcomes for monitoring/logging.
// Meter methods run while the Manager is locked and must not call back into it.
type Meter interface {
	// OnDispatch is called after the winner's quota was consumed and before
	// its callback runs.
	OnDispatch(event DispatchEvent)

	// OnExhausted is called when no service had a positive score.
	OnExhausted(event ExhaustedEvent)
}

// DispatchEvent describes a call that was routed to a service.
type DispatchEvent struct {
	CallID   string
	Time     int64
	Service  string
	Index    int
	Score    float64
	Services int
}

// ExhaustedEvent describes a call that no service could take.
type ExhaustedEvent struct {
	CallID   string
	Time     int64
	Services int
	Fallback bool
}

// noopMeter is a meter that does nothing.
type noopMeter struct{}

func (noopMeter) OnDispatch(DispatchEvent)   {}
func (noopMeter) OnExhausted(ExhaustedEvent) {}
