package meter

import "github.com/ineyio/arbiter"

// MultiMeter forwards every event to each of its meters in order.
type MultiMeter []arbiter.Meter

var _ arbiter.Meter = MultiMeter(nil)

// Multi combines meters, skipping nil ones.
func Multi(meters ...arbiter.Meter) MultiMeter {
	out := make(MultiMeter, 0, len(meters))
	for _, m := range meters {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (mm MultiMeter) OnDispatch(e arbiter.DispatchEvent) {
	for _, m := range mm {
		m.OnDispatch(e)
	}
}

func (mm MultiMeter) OnExhausted(e arbiter.ExhaustedEvent) {
	for _, m := range mm {
		m.OnExhausted(e)
	}
}
