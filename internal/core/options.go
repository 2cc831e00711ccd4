package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Logger is the structured logging surface the stores write to. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards every message. It is the default Logger.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// Clock supplies timestamps for created records.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// MetricsRecorder receives one observation per store operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer opens a span per store operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is closed with the operation's error, nil on success.
type TraceSpan interface {
	End(err error)
}

// IDGenerator returns a new unique record identifier.
type IDGenerator func() string

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

// Option configures a store.
type Option func(*options)

type options struct {
	clock     Clock
	logger    Logger
	metrics   MetricsRecorder
	tracer    Tracer
	newID     IDGenerator
	namespace string
	currency  string
}

func newOptions(opts []Option) options {
	o := options{
		clock:     ClockFunc(func() time.Time { return time.Now().UTC() }),
		logger:    NopLogger{},
		metrics:   noopMetrics{},
		tracer:    noopTracer{},
		newID:     uuid.NewString,
		namespace: DefaultNamespace,
		currency:  DefaultCurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithClock overrides the time source.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger routes store diagnostics to logger.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsRecorder installs a recorder observing every load and mutation.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(o *options) {
		if recorder != nil {
			o.metrics = recorder
		}
	}
}

// WithTracer installs a tracer wrapping every load and mutation.
func WithTracer(tracer Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithIDGenerator overrides uuid based identifiers.
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}

// WithNamespace sets the key prefix shared by every persisted collection.
func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

// WithDefaultCurrency sets the currency assigned to profiles created at sign-in.
func WithDefaultCurrency(currency string) Option {
	return func(o *options) {
		if currency != "" {
			o.currency = currency
		}
	}
}

// run wraps fn with tracing and metrics under the operation name.
func (o *options) run(ctx context.Context, operation string, fn func(context.Context) error) error {
	started := time.Now()
	ctx, span := o.tracer.Start(ctx, operation)
	err := fn(ctx)
	span.End(err)
	o.metrics.Observe(ctx, operation, err == nil, time.Since(started))
	return err
}
