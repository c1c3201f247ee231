package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/randalmurphal/delegate/pkg/delegate"
	"github.com/randalmurphal/delegate/pkg/delegate/config"
)

// ErrCallbackPanicked marks notify spans that ended in a callback panic.
var ErrCallbackPanicked = errors.New("delegate callback panicked")

// observeConfig holds the instrumentation used by Observed.
type observeConfig struct {
	logger  *slog.Logger
	metrics MetricsRecorder
	spans   SpanManager
}

// Option configures Observe.
type Option func(*observeConfig)

// WithLogger enables structured logging. Registrations, removals and the
// start of a notification are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *observeConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: NoopMetrics{}
func WithMetrics(m MetricsRecorder) Option {
	return func(c *observeConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpans sets the span manager.
// Default: NoopSpanManager{}
func WithSpans(s SpanManager) Option {
	return func(c *observeConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// Observed wraps a delegate.Notifier with logging, metrics and tracing.
// Every operation is forwarded to the wrapped notifier unchanged.
//
// A panicking callback is recorded as a failed notification and the panic
// continues to the caller; Observed never recovers it.
type Observed[A any] struct {
	name    string
	inner   delegate.Notifier[A]
	logger  *slog.Logger
	metrics MetricsRecorder
	spans   SpanManager
}

// Compile-time interface check.
var _ delegate.Notifier[struct{}] = (*Observed[struct{}])(nil)

// Observe wraps inner. name labels logs, metrics and spans.
//
// Example:
//
//	orders := observability.Observe[Order]("orders", delegate.NewSync[Order](),
//	    observability.WithLogger(logger),
//	    observability.WithMetrics(observability.NewMetricsRecorder()),
//	)
func Observe[A any](name string, inner delegate.Notifier[A], opts ...Option) *Observed[A] {
	cfg := observeConfig{
		metrics: NoopMetrics{},
		spans:   NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Observed[A]{
		name:    name,
		inner:   inner,
		logger:  EnrichLogger(cfg.logger, name),
		metrics: cfg.metrics,
		spans:   cfg.spans,
	}
}

// ObserveConfig wraps inner using settings loaded by the config package.
// Logging goes to stderr as JSON at cfg.Level(). opts are applied after
// the config, so WithLogger can redirect output.
func ObserveConfig[A any](cfg config.Config, inner delegate.Notifier[A], opts ...Option) *Observed[A] {
	var fromCfg []Option
	if cfg.Logging {
		fromCfg = append(fromCfg, WithLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.Level(),
		}))))
	}
	if cfg.Metrics {
		fromCfg = append(fromCfg, WithMetrics(NewMetricsRecorder()))
	}
	if cfg.Tracing {
		fromCfg = append(fromCfg, WithSpans(NewSpanManager()))
	}
	return Observe(cfg.Name, inner, append(fromCfg, opts...)...)
}

// Name returns the label given to Observe.
func (o *Observed[A]) Name() string {
	return o.name
}

// Unwrap returns the wrapped notifier.
func (o *Observed[A]) Unwrap() delegate.Notifier[A] {
	return o.inner
}

// Add appends e to the wrapped notifier.
func (o *Observed[A]) Add(e delegate.Entry[A]) {
	o.inner.Add(e)
	o.recordRegister(e.Handle())
}

// Register appends fn to the wrapped notifier.
func (o *Observed[A]) Register(fn func(A), handle ...delegate.Handle) {
	o.inner.Register(fn, handle...)

	var h delegate.Handle
	if len(handle) > 0 {
		h = handle[0]
	}
	o.recordRegister(h)
}

func (o *Observed[A]) recordRegister(h delegate.Handle) {
	o.metrics.RecordRegister(context.Background(), o.name)
	LogRegister(o.logger, h, o.inner.Len())
}

// NotifyAll notifies the wrapped notifier with a background context.
func (o *Observed[A]) NotifyAll(args A) {
	o.NotifyAllContext(context.Background(), args)
}

// NotifyAllContext notifies the wrapped notifier. ctx only carries the
// parent span; callbacks do not receive it and it cannot cancel the fan-out.
//
// The entry count in logs, spans and metrics is read before the wrapped
// notifier takes its lock, so concurrent registrations may not be reflected.
func (o *Observed[A]) NotifyAllContext(ctx context.Context, args A) {
	entries := o.inner.Len()
	ctx, span := o.spans.StartNotifySpan(ctx, o.name, entries)
	LogNotifyStart(o.logger, entries)

	done := TimedOperation()
	start := time.Now()
	completed := false
	defer func() {
		o.metrics.RecordNotify(ctx, o.name, entries, time.Since(start), !completed)
		if completed {
			LogNotifyComplete(o.logger, entries, done())
			o.spans.EndSpanWithError(span, nil)
			return
		}
		LogNotifyPanic(o.logger, entries, done())
		o.spans.EndSpanWithError(span, ErrCallbackPanicked)
	}()

	o.inner.NotifyAll(args)
	completed = true
}

// RemoveDelegates removes every entry registered under h from the wrapped
// notifier.
func (o *Observed[A]) RemoveDelegates(h delegate.Handle) {
	before := o.inner.Len()
	o.inner.RemoveDelegates(h)
	after := o.inner.Len()

	removed := max(before-after, 0)
	o.metrics.RecordRemove(context.Background(), o.name, removed)
	LogRemove(o.logger, h, removed, after)
}

// Len returns the number of entries in the wrapped notifier.
func (o *Observed[A]) Len() int {
	return o.inner.Len()
}

// Reset removes all entries from the wrapped notifier.
func (o *Observed[A]) Reset() {
	removed := o.inner.Len()
	o.inner.Reset()
	o.metrics.RecordRemove(context.Background(), o.name, removed)
	if o.logger != nil {
		o.logger.Debug("delegates reset", slog.Int("removed", removed))
	}
}
