package inventory

import (
	"context"
	"strconv"

	domcatalog "github.com/Zhima-Mochi/minishop-cli/internal/domain/catalog"
	domorder "github.com/Zhima-Mochi/minishop-cli/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-cli/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability/logctx"
)

const workerService = "stock_monitor"

// StockMonitor follows catalog and order events to keep the product_stock
// gauge current and to warn when a product runs low.
type StockMonitor struct {
	subscriber domoutbox.Subscriber
	threshold  int

	log     observability.Logger
	stock   observability.Gauge   // product_stock{product_id}
	refused observability.Counter // order_lines_refused_total{reason}
}

func NewStockMonitor(subscriber domoutbox.Subscriber, threshold int, tel observability.Observability) *StockMonitor {
	if tel == nil {
		tel = observability.Nop()
	}
	metricsProvider := tel.Metrics()
	return &StockMonitor{
		subscriber: subscriber,
		threshold:  threshold,
		log:        tel.Logger().With(observability.F("service", workerService)),
		stock:      metricsProvider.Gauge(observability.MProductStock),
		refused:    metricsProvider.Counter(observability.MOrderLinesRefused),
	}
}

func (m *StockMonitor) Start() {
	if m.subscriber == nil {
		return
	}
	m.subscriber.Subscribe(domcatalog.ProductAddedEvent{}.EventName(), m.handleProductAdded)
	m.subscriber.Subscribe(domcatalog.ProductUpdatedEvent{}.EventName(), m.handleProductUpdated)
	m.subscriber.Subscribe(domcatalog.ProductRemovedEvent{}.EventName(), m.handleProductRemoved)
	m.subscriber.Subscribe(domorder.OrderLineAddedEvent{}.EventName(), m.handleLineAdded)
	m.subscriber.Subscribe(domorder.OrderLineRefusedEvent{}.EventName(), m.handleLineRefused)
}

func (m *StockMonitor) handleProductAdded(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domcatalog.ProductAddedEvent)
	if !ok {
		return nil
	}
	m.observe(ctx, evt.ProductID, evt.Name, evt.Stock)
	return nil
}

func (m *StockMonitor) handleProductUpdated(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domcatalog.ProductUpdatedEvent)
	if !ok || evt.Field != domcatalog.FieldStock {
		return nil
	}
	m.observe(ctx, evt.ProductID, evt.Name, evt.Stock)
	return nil
}

func (m *StockMonitor) handleProductRemoved(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domcatalog.ProductRemovedEvent)
	if !ok {
		return nil
	}
	m.stock.Delete(observability.L("product_id", productLabel(evt.ProductID)))
	logctx.FromOr(ctx, m.log).Debug("stock_untracked", observability.F("product_id", evt.ProductID))
	return nil
}

func (m *StockMonitor) handleLineAdded(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domorder.OrderLineAddedEvent)
	if !ok {
		return nil
	}
	m.observe(ctx, evt.ProductID, "", evt.RemainingStock)
	return nil
}

func (m *StockMonitor) handleLineRefused(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domorder.OrderLineRefusedEvent)
	if !ok {
		return nil
	}
	m.refused.Add(1, observability.L("reason", evt.Reason))
	logctx.FromOr(ctx, m.log).Info("order_line_refused",
		observability.F("order_id", evt.OrderID),
		observability.F("product_id", evt.ProductID),
		observability.F("quantity", evt.Quantity),
		observability.F("reason", evt.Reason),
	)
	return nil
}

func (m *StockMonitor) observe(ctx context.Context, productID int64, name string, stock int) {
	m.stock.Set(float64(stock), observability.L("product_id", productLabel(productID)))
	if stock > m.threshold {
		return
	}
	fields := []observability.Field{
		observability.F("product_id", productID),
		observability.F("stock", stock),
		observability.F("threshold", m.threshold),
	}
	if name != "" {
		fields = append(fields, observability.F("product_name", name))
	}
	logctx.FromOr(ctx, m.log).Warn("stock_low", fields...)
}

func productLabel(id int64) string {
	return strconv.FormatInt(id, 10)
}
