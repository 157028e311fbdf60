package console

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability/logctx"
)

// WithActionContext injects a logger scoped to one menu action, built on the
// logger ctx already carries or else on base. Each action gets a fresh
// action_id; trace identifiers are added only when ctx carries a valid span.
func WithActionContext(ctx context.Context, base observability.Logger, action string) context.Context {
	fields := make([]observability.Field, 0, 4)
	fields = append(fields,
		observability.F("action", action),
		observability.F("action_id", uuid.NewString()),
	)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}

	return logctx.Enrich(ctx, base, fields...)
}
