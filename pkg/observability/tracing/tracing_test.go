package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/matzehuels/pawfetch/pkg/observability"
)

func newRecorder(t *testing.T) (*Hooks, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return NewHooks(provider.Tracer("test")), rec
}

func attrValue(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestCycleCompleteSpan(t *testing.T) {
	hooks, rec := newRecorder(t)

	hooks.OnCycleStart(context.Background(), 7)
	hooks.OnCycleComplete(context.Background(), 7, 250*time.Millisecond, nil)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "fetch_cycle", span.Name())
	assert.InDelta(t, float64(250*time.Millisecond), float64(span.EndTime().Sub(span.StartTime())), float64(time.Millisecond))

	seq, ok := attrValue(span.Attributes(), "pawfetch.cycle.seq")
	require.True(t, ok)
	assert.Equal(t, int64(7), seq.AsInt64())
	assert.Equal(t, codes.Unset, span.Status().Code)
}

func TestCycleFailureSpan(t *testing.T) {
	hooks, rec := newRecorder(t)

	hooks.OnCycleComplete(context.Background(), 2, time.Second, errors.New("name service down"))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.NotEmpty(t, spans[0].Events(), "error should be recorded as an event")

	fallback, ok := attrValue(spans[0].Attributes(), "pawfetch.cycle.fallback")
	require.True(t, ok)
	assert.True(t, fallback.AsBool())
}

func TestCycleDiscardedSpan(t *testing.T) {
	hooks, rec := newRecorder(t)

	hooks.OnCycleDiscarded(context.Background(), 1, 3)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "fetch_cycle.discarded", spans[0].Name())
	latest, ok := attrValue(spans[0].Attributes(), "pawfetch.cycle.latest")
	require.True(t, ok)
	assert.Equal(t, int64(3), latest.AsInt64())
}

func TestHTTPSpans(t *testing.T) {
	hooks, rec := newRecorder(t)
	ctx := context.Background()

	hooks.OnRequest(ctx, "GET", "dog.ceo", "/api/breeds/image/random")
	hooks.OnResponse(ctx, "GET", "dog.ceo", "/api/breeds/image/random", 200, 80*time.Millisecond)
	hooks.OnResponse(ctx, "GET", "randomuser.me", "/api/", 503, 10*time.Millisecond)
	hooks.OnError(ctx, "GET", "randomuser.me", "/api/", errors.New("connection refused"))

	spans := rec.Ended()
	require.Len(t, spans, 3)

	ok := spans[0]
	assert.Equal(t, "http.request", ok.Name())
	host, found := attrValue(ok.Attributes(), "http.host")
	require.True(t, found)
	assert.Equal(t, "dog.ceo", host.AsString())
	status, found := attrValue(ok.Attributes(), "http.status_code")
	require.True(t, found)
	assert.Equal(t, int64(200), status.AsInt64())
	assert.Equal(t, codes.Unset, ok.Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code, "5xx should mark the span failed")
	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.Equal(t, "connection refused", spans[2].Status().Description)
}

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv(EndpointEnv, "")
	observability.Reset()
	defer observability.Reset()

	shutdown, err := Setup(context.Background())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	_, isNoop := observability.Cycle().(observability.NoopCycleHooks)
	assert.True(t, isNoop, "hooks should stay no-op when export is disabled")
}

func TestSetupInstallsHooks(t *testing.T) {
	t.Setenv(EndpointEnv, "http://127.0.0.1:4318")
	observability.Reset()
	defer observability.Reset()

	shutdown, err := Setup(context.Background())
	require.NoError(t, err)

	_, isHooks := observability.Cycle().(*Hooks)
	assert.True(t, isHooks)
	_, isHooks = observability.HTTP().(*Hooks)
	assert.True(t, isHooks)

	// Nothing was recorded, so shutdown has nothing to flush.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx))
}
