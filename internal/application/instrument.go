package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability/logctx"
)

const spanPrefix = "UC."

// Instrument bundles the RED metrics, tracer and base logger shared by a
// service's use cases.
type Instrument struct {
	log          observability.Logger
	tracer       observability.Tracer
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

func NewInstrument(service string, tel observability.Observability) *Instrument {
	if tel == nil {
		tel = observability.Nop()
	}
	metricsProvider := tel.Metrics()
	return &Instrument{
		log:          tel.Logger().With(observability.F("service", service)),
		tracer:       tel.Tracer(),
		reqCounter:   metricsProvider.Counter(observability.MUsecaseRequests),
		durHistogram: metricsProvider.Histogram(observability.MUsecaseDuration),
	}
}

// Logger is the service's base logger.
func (in *Instrument) Logger() observability.Logger { return in.log }

// Call tracks one use-case execution from Start to End.
type Call struct {
	in      *Instrument
	useCase string
	ctx     context.Context
	span    trace.Span
	start   time.Time
	logger  observability.Logger
	fields  []observability.Field
	status  string
}

// Start opens a span named UC.<spanName> and derives a scoped logger. The
// returned context carries both.
func (in *Instrument) Start(ctx context.Context, useCase, spanName string, attrs ...attribute.KeyValue) (context.Context, *Call) {
	logger := logctx.FromOr(ctx, in.log).With(observability.F("use_case", useCase))
	attrs = append([]attribute.KeyValue{attribute.String("use_case", useCase)}, attrs...)
	ctx, span := in.tracer.Start(ctx, spanPrefix+spanName, attrs...)
	ctx = logctx.With(ctx, logger)
	return ctx, &Call{
		in:      in,
		useCase: useCase,
		ctx:     ctx,
		span:    span,
		start:   time.Now(),
		logger:  logger,
	}
}

// Logger is the call-scoped logger.
func (c *Call) Logger() observability.Logger { return c.logger }

// Span is the call's span.
func (c *Call) Span() trace.Span { return c.span }

// Annotate adds fields to the closing use_case_done entry.
func (c *Call) Annotate(fields ...observability.Field) {
	c.fields = append(c.fields, fields...)
}

// SetStatus overrides the status text recorded on the span and the log entry.
func (c *Call) SetStatus(status string) {
	c.status = status
}

// End records metrics, closes the span and logs the outcome of err.
func (c *Call) End(err error) {
	lat := time.Since(c.start).Seconds()
	outcome := Outcome(err)
	status := c.status
	if status == "" {
		status = statusFor(err)
	}

	if c.span != nil {
		if err != nil {
			c.span.RecordError(err)
			c.span.SetStatus(codes.Error, status)
		} else {
			c.span.SetStatus(codes.Ok, status)
		}
		c.span.End()
	}

	if c.in.reqCounter != nil {
		c.in.reqCounter.Add(1,
			observability.L("use_case", c.useCase),
			observability.L("outcome", outcome),
		)
	}
	if c.in.durHistogram != nil {
		c.in.durHistogram.Observe(lat,
			observability.L("use_case", c.useCase),
		)
	}

	fields := []observability.Field{
		observability.F("outcome", outcome),
		observability.F("status", status),
		observability.F("latency_seconds", lat),
	}
	if sc := trace.SpanContextFromContext(c.ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}
	fields = append(fields, c.fields...)
	if err != nil {
		fields = append(fields, observability.F("error", err.Error()))
	}

	c.logger.Info("use_case_done", fields...)
}

func statusFor(err error) string {
	switch KindOf(err) {
	case KindNone:
		return "OK"
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInsufficientStock:
		return "INSUFFICIENT_STOCK"
	default:
		return "INTERNAL"
	}
}
