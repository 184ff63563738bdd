// Package tracing exports fetch cycles and HTTP calls as OpenTelemetry spans.
//
// [Hooks] implements both observability hook interfaces on top of any
// [oteltrace.Tracer]. [Setup] builds an OTLP/HTTP exporter when
// OTEL_EXPORTER_OTLP_ENDPOINT is set and registers the hooks; without the
// variable it does nothing.
package tracing

import (
	"context"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/pawfetch/pkg/observability"
)

const (
	// EndpointEnv enables export when set.
	EndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

	serviceNameEnv     = "OTEL_SERVICE_NAME"
	defaultServiceName = "pawfetch"
	tracerName         = "pawfetch/card"
)

// Hooks records cycle and HTTP events as spans.
//
// Hooks only see events after the fact, so each span is created with
// explicit start and end timestamps derived from the reported duration.
type Hooks struct {
	tracer oteltrace.Tracer
}

var (
	_ observability.CycleHooks = (*Hooks)(nil)
	_ observability.HTTPHooks  = (*Hooks)(nil)
)

// NewHooks creates Hooks that record spans with tracer.
func NewHooks(tracer oteltrace.Tracer) *Hooks {
	return &Hooks{tracer: tracer}
}

// OnCycleStart is a no-op; the cycle span is emitted on completion.
func (h *Hooks) OnCycleStart(context.Context, uint64) {}

// OnCycleComplete emits a "fetch_cycle" span covering the cycle.
func (h *Hooks) OnCycleComplete(ctx context.Context, seq uint64, duration time.Duration, err error) {
	end := time.Now()
	_, span := h.tracer.Start(ctx, "fetch_cycle",
		oteltrace.WithTimestamp(end.Add(-duration)),
		oteltrace.WithAttributes(attribute.Int64("pawfetch.cycle.seq", int64(seq))),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch cycle failed")
		span.SetAttributes(attribute.Bool("pawfetch.cycle.fallback", true))
	}
	span.End(oteltrace.WithTimestamp(end))
}

// OnCycleDiscarded emits a zero-length "fetch_cycle.discarded" span.
func (h *Hooks) OnCycleDiscarded(ctx context.Context, seq, latest uint64) {
	_, span := h.tracer.Start(ctx, "fetch_cycle.discarded",
		oteltrace.WithAttributes(
			attribute.Int64("pawfetch.cycle.seq", int64(seq)),
			attribute.Int64("pawfetch.cycle.latest", int64(latest)),
		),
	)
	span.End()
}

// OnRequest is a no-op; the request span is emitted with its response or error.
func (h *Hooks) OnRequest(context.Context, string, string, string) {}

// OnResponse emits an "http.request" span covering the call.
func (h *Hooks) OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration) {
	end := time.Now()
	_, span := h.tracer.Start(ctx, "http.request",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithTimestamp(end.Add(-duration)),
		oteltrace.WithAttributes(httpAttrs(method, host, path)...),
	)
	span.SetAttributes(semconv.HTTPStatusCodeKey.Int(statusCode))
	if statusCode >= 400 {
		span.SetStatus(codes.Error, "")
	}
	span.End(oteltrace.WithTimestamp(end))
}

// OnError emits an "http.request" span marked as failed.
func (h *Hooks) OnError(ctx context.Context, method, host, path string, err error) {
	_, span := h.tracer.Start(ctx, "http.request",
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(httpAttrs(method, host, path)...),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

func httpAttrs(method, host, path string) []attribute.KeyValue {
	return []attribute.KeyValue{
		semconv.HTTPMethodKey.String(method),
		semconv.HTTPHostKey.String(host),
		semconv.HTTPTargetKey.String(path),
	}
}

// Setup installs OTLP-backed hooks if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// The returned shutdown flushes pending spans; it is never nil.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	endpoint := os.Getenv(EndpointEnv)
	if endpoint == "" {
		return noop, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure()}
	if strings.Contains(endpoint, "://") {
		opts = []otlptracehttp.Option{otlptracehttp.WithEndpointURL(endpoint)}
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return noop, err
	}

	serviceName := os.Getenv(serviceNameEnv)
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)

	hooks := NewHooks(provider.Tracer(tracerName))
	observability.SetCycleHooks(hooks)
	observability.SetHTTPHooks(hooks)
	return provider.Shutdown, nil
}
