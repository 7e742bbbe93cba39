package core

import "go.uber.org/zap"

// DefaultCacheSize is the number of group views kept when no size is set.
const DefaultCacheSize = 256

// ServiceOption customises a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	logger    *zap.Logger
	metrics   MetricsRecorder
	tracer    Tracer
	clock     Clock
	cacheSize int
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		logger:    zap.NewNop(),
		metrics:   noopMetrics{},
		tracer:    noopTracer{},
		clock:     systemClock{},
		cacheSize: DefaultCacheSize,
	}
}

// WithLogger sets the structured logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsRecorder sets the metrics sink.
func WithMetricsRecorder(m MetricsRecorder) ServiceOption {
	return func(o *serviceOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(t Tracer) ServiceOption {
	return func(o *serviceOptions) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithClock overrides the clock used for timing.
func WithClock(c Clock) ServiceOption {
	return func(o *serviceOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithCacheSize bounds the number of cached group views.
func WithCacheSize(n int) ServiceOption {
	return func(o *serviceOptions) { o.cacheSize = n }
}
