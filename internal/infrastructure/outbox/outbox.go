package outbox

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	domoutbox "github.com/Zhima-Mochi/minishop-cli/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability/logctx"
)

const componentOutbox = "outbox"

// Bus is an in-process event bus. Publish runs every subscribed handler on
// the caller's goroutine, in subscription order, before returning, so the
// session stays a single logical actor.
type Bus struct {
	subs      map[string][]domoutbox.Handler
	log       observability.Logger
	published observability.Counter // events_published_total{event,outcome}
}

func NewBus(logger observability.Logger, tel observability.Observability) *Bus {
	if logger == nil {
		logger = observability.NopLogger()
	}
	metricsProvider := observability.NopMetrics()
	if tel != nil {
		metricsProvider = tel.Metrics()
	}
	return &Bus{
		subs:      make(map[string][]domoutbox.Handler),
		log:       logger.With(observability.F("component", componentOutbox)),
		published: metricsProvider.Counter(observability.MEventsPublished),
	}
}

func (b *Bus) Subscribe(eventName string, h domoutbox.Handler) {
	if h == nil {
		return
	}
	b.subs[eventName] = append(b.subs[eventName], h)
}

// Publish delivers e to its subscribers. Handler failures do not stop the
// remaining handlers; they are logged and returned joined.
func (b *Bus) Publish(ctx context.Context, e domoutbox.Event) error {
	if e == nil {
		return nil
	}
	name := e.EventName()
	logger := logctx.FromOr(ctx, b.log).With(observability.F("event", name))

	if err := ctx.Err(); err != nil {
		logger.Warn("event_publish_aborted", observability.F("error", err))
		b.count(name, "canceled")
		return err
	}

	handlers := b.subs[name]
	if len(handlers) == 0 {
		logger.Debug("event_dropped_no_subscriber")
		b.count(name, "dropped")
		return nil
	}

	hctx := logctx.With(ctx, logger)
	var errs []error
	for _, h := range handlers {
		if err := b.dispatch(hctx, logger, h, e); err != nil {
			logger.Warn("event_handler_error", observability.F("error", err))
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	b.count(name, outcome)
	logger.Debug("event_fanned_out", observability.F("handlers", len(handlers)))
	return err
}

func (b *Bus) dispatch(ctx context.Context, logger observability.Logger, h domoutbox.Handler, e domoutbox.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event_handler_panic",
				observability.F("panic", r),
				observability.F("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("outbox: handler panic: %v", r)
		}
	}()
	return h(ctx, e)
}

func (b *Bus) count(event, outcome string) {
	if b.published != nil {
		b.published.Add(1,
			observability.L("event", event),
			observability.L("outcome", outcome),
		)
	}
}
