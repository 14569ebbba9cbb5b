package listing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/ghusers/errors"
	"github.com/kbukum/ghusers/logger"
	"github.com/kbukum/ghusers/observability"
	"github.com/kbukum/ghusers/pipeline"
)

// Sink receives Records in order.
type Sink interface {
	Write(ctx context.Context, r Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, r Record) error

// Write calls f.
func (f SinkFunc) Write(ctx context.Context, r Record) error { return f(ctx, r) }

// Stats summarises a finished run.
type Stats struct {
	RunID string
	Mode  ModeKind
	Pages int
	// Records counts Records handed to the sink, including one whose write
	// failed.
	Records  int
	Duration time.Duration
}

// Runner drives one listing run from parameters to sink.
type Runner struct {
	api     API
	log     *logger.Logger
	metrics *observability.Metrics
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger. Defaults to the "listing" component logger.
func WithLogger(l *logger.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// WithMetrics sets the metric instruments. Nil disables metrics.
func WithMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a runner reading from api.
func NewRunner(api API, opts ...RunnerOption) *Runner {
	r := &Runner{api: api}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("listing")
	}
	return r
}

// Run validates params, then streams every selected Record to sink. Records
// written before an error stay written; nothing is retried.
func (r *Runner) Run(ctx context.Context, params Params, sink Sink) (Stats, error) {
	if err := params.Validate(); err != nil {
		return Stats{}, err
	}

	mode := params.Mode()
	stats := Stats{RunID: uuid.NewString(), Mode: mode.Kind()}
	ctx = logger.ContextWithCorrelationID(ctx, stats.RunID)
	log := r.log.WithContext(ctx)

	ctx, span := observability.StartSpan(ctx, observability.SpanRun, trace.WithAttributes(
		attribute.String(observability.AttrMode, mode.Kind().String()),
	))
	defer span.End()

	log.Debug("run started", logger.Fields(
		"mode", mode.String(),
		"max_count", params.MaxCount,
		"stop_id", params.StopID,
	))

	start := time.Now()
	src := NewPageSource(r.api)
	records := Flatten(src, mode)
	records = LimitCount(records, params.MaxCount)
	records = TakeThroughID(records, params.StopID)
	records = pipeline.Tap(records, func(_ context.Context, _ Record) error {
		stats.Records++
		return nil
	})

	err := pipeline.ForEach(ctx, records, sink.Write)

	stats.Pages = src.Pages()
	stats.Duration = time.Since(start)
	r.metrics.RecordRecords(ctx, mode.Kind().String(), stats.Records)
	span.SetAttributes(
		attribute.Int(observability.AttrPage, stats.Pages),
		attribute.Int(observability.AttrRecords, stats.Records),
	)

	if err != nil {
		kind := errors.KindOf(err)
		r.metrics.RecordError(ctx, string(kind))
		observability.SetSpanError(span, err)
		log.WithError(err).Debug("run failed", logger.Fields(
			observability.AttrErrorKind, string(kind),
			"pages", stats.Pages,
			"records", stats.Records,
		))
		return stats, err
	}

	log.Debug("run finished", logger.Fields(
		"pages", stats.Pages,
		"records", stats.Records,
		logger.FieldDuration, stats.Duration.Milliseconds(),
	))
	return stats, nil
}
