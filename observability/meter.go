package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/ghusers/logger"
)

// InitMeter installs an OTLP/HTTP exporting meter provider as the global
// provider. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(config.Interval))),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by a listing run.
type Metrics struct {
	pagesTotal   metric.Int64Counter
	pageDuration metric.Float64Histogram
	recordsTotal metric.Int64Counter
	errorTotal   metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	pagesTotal, err := meter.Int64Counter("listing.pages",
		metric.WithDescription("Pages fetched from the remote listing API"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating listing.pages counter: %w", err)
	}

	pageDuration, err := meter.Float64Histogram("listing.page.duration",
		metric.WithDescription("Duration of page fetches in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating listing.page.duration histogram: %w", err)
	}

	recordsTotal, err := meter.Int64Counter("listing.records",
		metric.WithDescription("Records delivered to the output sink"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating listing.records counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("listing.errors",
		metric.WithDescription("Failed runs by error kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating listing.errors counter: %w", err)
	}

	return &Metrics{
		pagesTotal:   pagesTotal,
		pageDuration: pageDuration,
		recordsTotal: recordsTotal,
		errorTotal:   errorTotal,
	}, nil
}

// DefaultMetrics returns instruments on the global meter. Instrument
// creation never fails on the no-op provider; if an exporting provider
// rejects them, nil is returned and all Record methods become no-ops.
func DefaultMetrics() *Metrics {
	m, err := NewMetrics(Meter(defaultTracerName))
	if err != nil {
		logger.Warn("metrics disabled", logger.ErrorFields("create_instruments", err))
		return nil
	}
	return m
}

// RecordPage records one fetched page.
func (m *Metrics) RecordPage(ctx context.Context, mode string, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrMode, mode))
	m.pagesTotal.Add(ctx, 1, attrs)
	m.pageDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordRecords records records delivered to the sink.
func (m *Metrics) RecordRecords(ctx context.Context, mode string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.recordsTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String(AttrMode, mode)))
}

// RecordError records a failed run by error kind.
func (m *Metrics) RecordError(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrErrorKind, kind)))
}
