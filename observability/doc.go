// Package observability provides OpenTelemetry tracing and metrics for page
// fetches and listing runs.
//
// Instruments always go through the global otel providers, so they are
// no-ops until Setup installs exporting providers.
//
// Tracing:
//
//	shutdown, err := observability.Setup(ctx, cfg)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanFetchPage)
//	defer span.End()
//
// Metrics:
//
//	m := observability.DefaultMetrics()
//	m.RecordPage(ctx, "search", elapsed)
package observability
