package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != defaultEndpoint {
		t.Errorf("expected endpoint %q, got %q", defaultEndpoint, cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %v", cfg.SampleRate)
	}
	if cfg.Interval != defaultInterval {
		t.Errorf("expected interval %v, got %v", defaultInterval, cfg.Interval)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{SampleRate: 1}, false},
		{"enabled with endpoint", Config{Enabled: true, Endpoint: "collector:4318", SampleRate: 0.5}, false},
		{"enabled without endpoint", Config{Enabled: true, SampleRate: 1}, true},
		{"sample rate too high", Config{SampleRate: 2}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown returned %v", err)
	}
}

func TestStartSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	_, span := StartSpan(context.Background(), SpanFetchPage)
	SetSpanError(span, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Name() != SpanFetchPage {
		t.Errorf("expected span %q, got %q", SpanFetchPage, ended[0].Name())
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", ended[0].Status().Code)
	}
}

func TestSetSpanError_NilSafe(t *testing.T) {
	SetSpanError(nil, errors.New("x"))
	_, span := StartSpan(context.Background(), SpanRun)
	SetSpanError(span, nil)
	span.End()
}

func TestMetrics_RecordPageAndRecords(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordPage(ctx, "enumerate", 20*time.Millisecond)
	m.RecordPage(ctx, "enumerate", 30*time.Millisecond)
	m.RecordRecords(ctx, "enumerate", 7)
	m.RecordError(ctx, "AUTH_ERROR")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if data, ok := md.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[md.Name] += dp.Value
				}
			}
		}
	}
	if sums["listing.pages"] != 2 {
		t.Errorf("expected 2 pages, got %d", sums["listing.pages"])
	}
	if sums["listing.records"] != 7 {
		t.Errorf("expected 7 records, got %d", sums["listing.records"])
	}
	if sums["listing.errors"] != 1 {
		t.Errorf("expected 1 error, got %d", sums["listing.errors"])
	}
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordPage(ctx, "search", time.Second)
	m.RecordRecords(ctx, "search", 1)
	m.RecordError(ctx, "TRANSPORT_ERROR")
}

func TestDefaultMetrics(t *testing.T) {
	if DefaultMetrics() == nil {
		t.Error("expected instruments on the global provider")
	}
}
