// Package observability installs the OpenTelemetry meter and tracer providers.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	turnCounter    otelmetric.Int64Counter
	turnDuration   otelmetric.Float64Histogram
}

// New installs a Prometheus-backed meter provider and, when jaegerEndpoint is
// set, a Jaeger span exporter. Failures leave the corresponding half as no-op.
func New(serviceName, jaegerEndpoint string, log Logger) *Observability {
	o := &Observability{tracer: otel.Tracer(serviceName)}

	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
	} else {
		o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter))
		otel.SetMeterProvider(o.meterProvider)
		meter := o.meterProvider.Meter(serviceName)

		o.turnCounter, _ = meter.Int64Counter(
			"chat.turns",
			otelmetric.WithDescription("Number of chat turns processed"),
		)
		o.turnDuration, _ = meter.Float64Histogram(
			"chat.turn.duration",
			otelmetric.WithDescription("Chat turn processing duration"),
			otelmetric.WithUnit("ms"),
		)
	}

	if jaegerEndpoint != "" {
		exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(jaegerEndpoint)))
		if err != nil {
			log.Warn("failed to create jaeger exporter", map[string]interface{}{"error": err.Error()})
		} else {
			o.tracerProvider = sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
			otel.SetTracerProvider(o.tracerProvider)
			o.tracer = o.tracerProvider.Tracer(serviceName)
			log.Info("tracing enabled", map[string]interface{}{"endpoint": jaegerEndpoint})
		}
	}

	return o
}

// NewNoop returns an Observability whose recordings go nowhere.
func NewNoop() *Observability {
	return &Observability{tracer: noop.NewTracerProvider().Tracer("noop")}
}

// StartTurnSpan opens the span that wraps one dialogue turn.
func (o *Observability) StartTurnSpan(ctx context.Context, userID string) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, "dialogue.turn", trace.WithAttributes(
		attribute.Bool("chat.anonymous", userID == ""),
	))
}

func (o *Observability) RecordTurn(ctx context.Context, duration time.Duration, intent, status string) {
	attrs := otelmetric.WithAttributes(
		attribute.String("intent", intent),
		attribute.String("status", status),
	)
	if o.turnCounter != nil {
		o.turnCounter.Add(ctx, 1, attrs)
	}
	if o.turnDuration != nil {
		o.turnDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}
