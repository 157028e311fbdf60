package oteltrace

import (
	"context"

	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New returns a tracer from the global OpenTelemetry provider. Until a
// provider is installed with otel.SetTracerProvider the spans are no-ops.
func New(name string) observability.Tracer {
	if name == "" {
		name = "minishop-cli"
	}
	return &tracer{t: otel.Tracer(name)}
}

// FromProvider returns a tracer bound to an explicit provider.
func FromProvider(tp trace.TracerProvider, name string) observability.Tracer {
	if tp == nil {
		return New(name)
	}
	return &tracer{t: tp.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
