package meter

import (
	"log/slog"

	"github.com/ineyio/arbiter"
)

// LogMeter logs arbitration events using slog.
type LogMeter struct {
	Logger *slog.Logger
}

var _ arbiter.Meter = (*LogMeter)(nil)

// NewLogMeter creates a LogMeter with the given logger.
// If logger is nil, slog.Default() is used.
func NewLogMeter(logger *slog.Logger) *LogMeter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMeter{Logger: logger}
}

func (m *LogMeter) OnDispatch(e arbiter.DispatchEvent) {
	m.Logger.Info("dispatch",
		"call_id", e.CallID,
		"service", e.Service,
		"index", e.Index,
		"score", e.Score,
		"services", e.Services,
		"time", e.Time,
	)
}

func (m *LogMeter) OnExhausted(e arbiter.ExhaustedEvent) {
	m.Logger.Warn("quota_exhausted",
		"call_id", e.CallID,
		"services", e.Services,
		"fallback", e.Fallback,
		"time", e.Time,
	)
}
