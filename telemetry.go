package l10n

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/goliatone/go-l10n"

// telemetry bundles the tracer and cache counters. Providers default to noop
// so nothing is recorded unless the integrator wires real ones.
type telemetry struct {
	tracer     trace.Tracer
	hits       metric.Int64Counter
	misses     metric.Int64Counter
	loads      metric.Int64Counter
	loadErrors metric.Int64Counter
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) *telemetry {
	if tp == nil {
		tp = tracenoop.NewTracerProvider()
	}
	if mp == nil {
		mp = metricnoop.NewMeterProvider()
	}

	meter := mp.Meter(instrumentationName)
	return &telemetry{
		tracer:     tp.Tracer(instrumentationName),
		hits:       int64Counter(meter, "l10n.resource_cache.hits", "Resolved-resource cache hits"),
		misses:     int64Counter(meter, "l10n.resource_cache.misses", "Resolved-resource cache misses"),
		loads:      int64Counter(meter, "l10n.resource_cache.loads", "Locale resource resolutions"),
		loadErrors: int64Counter(meter, "l10n.resource_cache.load_errors", "Failed locale resource resolutions"),
	}
}

func defaultTelemetry() *telemetry {
	return newTelemetry(nil, nil)
}

func int64Counter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return metricnoop.Int64Counter{}
	}
	return counter
}

func localeAttr(locale Locale) attribute.KeyValue {
	return attribute.String("l10n.locale", locale.String())
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
