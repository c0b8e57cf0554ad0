package meter

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ineyio/arbiter"
)

func TestLogMeter(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMeter(slog.New(slog.NewTextHandler(&buf, nil)))

	m.OnDispatch(arbiter.DispatchEvent{CallID: "c1", Service: "primary", Index: 0, Score: 2, Services: 2, Time: 10})
	m.OnExhausted(arbiter.ExhaustedEvent{CallID: "c2", Services: 2, Fallback: true, Time: 11})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=dispatch call_id=c1 service=primary index=0 score=2")
	assert.Contains(t, out, "level=WARN msg=quota_exhausted call_id=c2 services=2 fallback=true")
}

func TestNewLogMeter_DefaultLogger(t *testing.T) {
	m := NewLogMeter(nil)
	assert.Same(t, slog.Default(), m.Logger)
}

func TestPrometheusMeter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMeter(reg, "arbiter_test")

	m.OnDispatch(arbiter.DispatchEvent{Service: "a", Score: 1})
	m.OnDispatch(arbiter.DispatchEvent{Service: "a", Score: 0.5})
	m.OnDispatch(arbiter.DispatchEvent{Service: "b", Score: 3})
	m.OnExhausted(arbiter.ExhaustedEvent{Fallback: true})
	m.OnExhausted(arbiter.ExhaustedEvent{})
	m.OnExhausted(arbiter.ExhaustedEvent{})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.dispatched.WithLabelValues("a")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatched.WithLabelValues("b")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exhausted.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.exhausted.WithLabelValues("false")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.score))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"arbiter_test_dispatch_total",
		"arbiter_test_exhausted_total",
		"arbiter_test_dispatch_score",
	}, names)
}

func TestPrometheusMeter_NilRegisterer(t *testing.T) {
	m := NewPrometheusMeter(nil, "unregistered")
	m.OnDispatch(arbiter.DispatchEvent{Service: "a", Score: 1})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatched.WithLabelValues("a")))
}

type countingMeter struct{ dispatch, exhausted int }

func (c *countingMeter) OnDispatch(arbiter.DispatchEvent)   { c.dispatch++ }
func (c *countingMeter) OnExhausted(arbiter.ExhaustedEvent) { c.exhausted++ }

func TestMulti(t *testing.T) {
	a, b := &countingMeter{}, &countingMeter{}
	mm := Multi(a, nil, b, &NoopMeter{})
	assert.Len(t, mm, 3)

	mm.OnDispatch(arbiter.DispatchEvent{})
	mm.OnExhausted(arbiter.ExhaustedEvent{})
	mm.OnExhausted(arbiter.ExhaustedEvent{})

	assert.Equal(t, 1, a.dispatch)
	assert.Equal(t, 2, b.exhausted)
}

func TestMeters_WithManager(t *testing.T) {
	var buf bytes.Buffer
	prom := NewPrometheusMeter(prometheus.NewRegistry(), "wired")
	m := arbiter.NewManager(
		arbiter.WithClock(arbiter.NewManualClock(0)),
		arbiter.WithMeter(Multi(NewLogMeter(slog.New(slog.NewTextHandler(&buf, nil))), prom)),
	)
	require.NoError(t, m.AddNamed("solo", func(any) {}, m.GreedyQuota(60, 1, 1)))

	m.Call(nil, nil)
	m.Call(nil, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(prom.dispatched.WithLabelValues("solo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(prom.exhausted.WithLabelValues("false")))
	assert.Contains(t, buf.String(), "service=solo")
	assert.Contains(t, buf.String(), "msg=quota_exhausted")
}
