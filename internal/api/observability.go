package api

import "log/slog"

// CallEvent records metadata about a single backend call.
type CallEvent struct {
	Call       Call
	Method     string
	Path       string
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	attrs := []any{
		"call", e.Call,
		"method", e.Method,
		"path", e.Path,
		"status", e.StatusCode,
		"latency_ms", e.LatencyMs,
	}
	if e.Success {
		o.logger.Debug("backend_call", attrs...)
		return
	}
	o.logger.Warn("backend_call", append(attrs, "error_code", e.ErrorCode)...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
