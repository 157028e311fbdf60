package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domcatalog "github.com/Zhima-Mochi/minishop-cli/internal/domain/catalog"
	domain "github.com/Zhima-Mochi/minishop-cli/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-cli/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/outbox"
)

type fixture struct {
	catalog *memory.CatalogRepository
	book    *memory.OrderRepository
	svc     *Service
	events  []domoutbox.Event
}

func newFixture() *fixture {
	f := &fixture{
		catalog: memory.NewCatalogRepository(),
		book:    memory.NewOrderRepository(),
	}
	bus := outbox.NewBus(nil, nil)
	record := func(_ context.Context, e domoutbox.Event) error {
		f.events = append(f.events, e)
		return nil
	}
	bus.Subscribe(domain.OrderLineAddedEvent{}.EventName(), record)
	bus.Subscribe(domain.OrderLineRefusedEvent{}.EventName(), record)
	bus.Subscribe(domain.OrderPlacedEvent{}.EventName(), record)
	f.svc = NewService(f.book, f.catalog, bus, nil)
	return f
}

func (f *fixture) add(t *testing.T, name, price string, stock int) *domcatalog.Product {
	t.Helper()
	p, err := f.catalog.Add(context.Background(), name, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return p
}

func TestWidgetGadgetScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	widget := f.add(t, "Widget", "10.00", 5)
	gadget := f.add(t, "Gadget", "3.50", 0)

	o, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), o.ID)

	require.NoError(t, f.svc.AddLine(ctx, o, widget.ID, 2))
	assert.Equal(t, 3, widget.Stock)
	assert.Equal(t, "20.00", f.svc.Total(o).StringFixed(2))

	err = f.svc.AddLine(ctx, o, gadget.ID, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Gadget")
	assert.Equal(t, 0, gadget.Stock)
	assert.Equal(t, "20.00", f.svc.Total(o).StringFixed(2))

	total, err := f.svc.PlaceOrder(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, "20.00", total.StringFixed(2))

	orders, err := f.svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "20.00", f.svc.Total(orders[0]).StringFixed(2))

	names := make([]string, 0, len(f.events))
	for _, e := range f.events {
		names = append(names, e.EventName())
	}
	assert.Equal(t, []string{"order.line_added", "order.line_refused", "order.placed"}, names)
}

func TestAddLineUnknownProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)

	err = f.svc.AddLine(ctx, o, 42, 1)
	assert.ErrorIs(t, err, domcatalog.ErrNotFound)
	assert.Empty(t, o.Lines)
}

func TestAddLineRemovedProductIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.add(t, "Widget", "1", 5)
	_, err := f.catalog.RemoveByID(ctx, p.ID)
	require.NoError(t, err)

	o, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.AddLine(ctx, o, p.ID, 1), domcatalog.ErrNotFound)
	assert.Equal(t, 5, p.Stock)
}

func TestAddLineNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.add(t, "Widget", "1", 5)
	o, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.AddLine(ctx, o, p.ID, 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, f.svc.AddLine(ctx, o, p.ID, -3), domain.ErrInvalidQuantity)
	assert.Equal(t, 5, p.Stock)
	assert.Empty(t, o.Lines)
}

func TestTotalFollowsPriceChangesAndRemovals(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.add(t, "Widget", "10.00", 5)
	o, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)
	require.NoError(t, f.svc.AddLine(ctx, o, p.ID, 2))
	_, err = f.svc.PlaceOrder(ctx, o)
	require.NoError(t, err)

	require.NoError(t, p.SetPrice(decimal.RequireFromString("12.50")))
	assert.Equal(t, "25.00", f.svc.Total(o).StringFixed(2))

	_, err = f.catalog.RemoveByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "25.00", f.svc.Total(o).StringFixed(2))

	lines := f.svc.Lines(o)
	require.Len(t, lines, 1)
	assert.Equal(t, "Widget", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestEmptyOrderCanBePlaced(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)

	total, err := f.svc.PlaceOrder(ctx, o)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	orders, err := f.svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestPlacedOrderRejectsChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.add(t, "Widget", "1", 5)
	o, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)
	_, err = f.svc.PlaceOrder(ctx, o)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.AddLine(ctx, o, p.ID, 1), domain.ErrOrderPlaced)
	_, err = f.svc.PlaceOrder(ctx, o)
	assert.ErrorIs(t, err, domain.ErrOrderPlaced)
	assert.Equal(t, 5, p.Stock)

	orders, _ := f.svc.ListOrders(ctx)
	assert.Len(t, orders, 1)
}

func TestOrderIDsIndependentOfProductIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.add(t, "a", "1", 1)
	f.add(t, "b", "1", 1)
	f.add(t, "c", "1", 1)

	first, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)
	second, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestPlaceOrderIDClashLeavesOrderOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.add(t, "Widget", "10.00", 5)

	taken := domain.New(1, time.Now())
	require.NoError(t, taken.Place(time.Now()))
	require.NoError(t, f.book.Insert(ctx, taken))

	o, err := f.svc.StartOrder(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), o.ID)

	_, err = f.svc.PlaceOrder(ctx, o)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.NotEqual(t, domain.StatusPlaced, o.Status())
	assert.NoError(t, f.svc.AddLine(ctx, o, p.ID, 1))

	orders, err := f.svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Order{taken}, orders)
}
