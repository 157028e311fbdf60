package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability/logctx"
)

func TestWithActionContextAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := zaplogger.New(zap.New(core))

	tp := trace.NewTracerProvider(trace.WithSpanProcessor(tracetest.NewSpanRecorder()))
	ctx, span := tp.Tracer("test").Start(context.Background(), "menu")
	defer span.End()

	first := WithActionContext(ctx, base, "list_products")
	second := WithActionContext(ctx, base, "list_products")
	logctx.From(first).Info("one")
	logctx.From(second).Info("two")

	entries := logs.All()
	require.Len(t, entries, 2)
	a, b := entries[0].ContextMap(), entries[1].ContextMap()
	assert.Equal(t, "list_products", a["action"])
	assert.Equal(t, span.SpanContext().TraceID().String(), a["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), a["span_id"])
	assert.NotEqual(t, a["action_id"], b["action_id"])
}

func TestWithActionContextWithoutSpan(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := WithActionContext(context.Background(), zaplogger.New(zap.New(core)), "create_order")
	logctx.From(ctx).Info("hello")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "create_order", fields["action"])
	assert.NotContains(t, fields, "trace_id")
}

func TestWithActionContextNilBase(t *testing.T) {
	ctx := WithActionContext(context.Background(), nil, "exit")
	assert.NotPanics(t, func() { logctx.From(ctx).Info("ignored") })
}

func TestWithActionContextBuildsOnContextLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	session := zaplogger.New(zap.New(core)).With(observability.F("session_id", "s1"))

	ctx := WithActionContext(logctx.With(context.Background(), session), nil, "list_orders")
	logctx.From(ctx).Info("hello")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "s1", fields["session_id"])
	assert.Equal(t, "list_orders", fields["action"])
}
