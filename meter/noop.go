package meter

import "github.com/ineyio/arbiter"

// NoopMeter is a meter that does nothing.
type NoopMeter struct{}

var _ arbiter.Meter = (*NoopMeter)(nil)

func (m *NoopMeter) OnDispatch(arbiter.DispatchEvent)   {}
func (m *NoopMeter) OnExhausted(arbiter.ExhaustedEvent) {}
