package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zhima-Mochi/minishop-cli/internal/application"
	domcatalog "github.com/Zhima-Mochi/minishop-cli/internal/domain/catalog"
	domain "github.com/Zhima-Mochi/minishop-cli/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-cli/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
)

const orderService = "order-service"

const (
	useCaseStart   = "order.start"
	useCaseAddLine = "order.add_line"
	useCasePlace   = "order.place"
	useCaseList    = "order.list"
)

// ProductLookup is the slice of the catalog the order use cases need.
type ProductLookup interface {
	FindByID(ctx context.Context, id int64) (*domcatalog.Product, error)
	Resolve(id int64) (*domcatalog.Product, bool)
}

// LineDetail is a line joined with its product for display.
type LineDetail struct {
	ProductID int64
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

type Service struct {
	repo      domain.Repository
	products  ProductLookup
	publisher domoutbox.Publisher
	inst      *application.Instrument
	now       func() time.Time
}

func NewService(repo domain.Repository, products ProductLookup, publisher domoutbox.Publisher, tel observability.Observability) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		publisher: publisher,
		inst:      application.NewInstrument(orderService, tel),
		now:       time.Now,
	}
}

// StartOrder opens an empty order under the next order id. It is not in the
// order book until PlaceOrder.
func (s *Service) StartOrder(ctx context.Context) (_ *domain.Order, err error) {
	ctx, call := s.inst.Start(ctx, useCaseStart, "StartOrder")
	defer func() { call.End(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := domain.New(s.repo.NextID(ctx), s.now())
	call.Annotate(observability.F("order_id", o.ID))
	call.Span().SetAttributes(attribute.Int64("order.id", o.ID))
	return o, nil
}

// AddLine reserves quantity units of a listed product on o.
func (s *Service) AddLine(ctx context.Context, o *domain.Order, productID int64, quantity int) (err error) {
	if o == nil {
		return errors.New("order: order is required")
	}
	ctx, call := s.inst.Start(ctx, useCaseAddLine, "AddLine",
		attribute.Int64("order.id", o.ID),
		attribute.Int64("product.id", productID),
		attribute.Int("order.quantity", quantity),
	)
	call.Annotate(
		observability.F("order_id", o.ID),
		observability.F("product_id", productID),
		observability.F("quantity", quantity),
	)
	defer func() { call.End(err) }()

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		s.publish(ctx, call, domain.NewOrderLineRefusedEvent(o, productID, quantity, domain.RefusedReasonNotFound))
		return fmt.Errorf("order: add line: %w", err)
	}

	if err := o.AddLine(p, quantity); err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			s.publish(ctx, call, domain.NewOrderLineRefusedEvent(o, productID, quantity, domain.RefusedReasonInsufficientStock))
		case errors.Is(err, domain.ErrInvalidQuantity):
			s.publish(ctx, call, domain.NewOrderLineRefusedEvent(o, productID, quantity, domain.RefusedReasonInvalidQuantity))
		}
		return fmt.Errorf("order: add line: %w", err)
	}

	call.Annotate(observability.F("remaining_stock", p.Stock))
	call.Span().AddEvent("order.line_added",
		trace.WithAttributes(attribute.Int("product.remaining_stock", p.Stock)),
	)
	s.publish(ctx, call, domain.NewOrderLineAddedEvent(o, p.ID, quantity, p.Stock))
	return nil
}

// Total prices o at current catalog prices.
func (s *Service) Total(o *domain.Order) decimal.Decimal {
	return o.Total(s.products)
}

// Lines joins o's lines with their products, in insertion order.
func (s *Service) Lines(o *domain.Order) []LineDetail {
	out := make([]LineDetail, 0, len(o.Lines))
	for _, l := range o.Lines {
		d := LineDetail{ProductID: l.ProductID, Quantity: l.Quantity}
		if p, ok := s.products.Resolve(l.ProductID); ok {
			d.Name = p.Name
			d.Price = p.Price
		}
		out = append(out, d)
	}
	return out
}

// PlaceOrder seals o and stores it in the order book. It returns the total
// at placement time.
func (s *Service) PlaceOrder(ctx context.Context, o *domain.Order) (_ decimal.Decimal, err error) {
	if o == nil {
		return decimal.Zero, errors.New("order: order is required")
	}
	ctx, call := s.inst.Start(ctx, useCasePlace, "PlaceOrder",
		attribute.Int64("order.id", o.ID),
		attribute.Int("order.lines", len(o.Lines)),
	)
	call.Annotate(observability.F("order_id", o.ID))
	defer func() { call.End(err) }()

	// Reject an id clash before sealing so a failed placement leaves o open.
	existing, err := s.repo.FindByID(ctx, o.ID)
	switch {
	case err == nil && existing != o:
		return decimal.Zero, fmt.Errorf("order: place %d: %w", o.ID, domain.ErrConflict)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return decimal.Zero, fmt.Errorf("order: place %d: %w", o.ID, err)
	}

	if err := o.Place(s.now()); err != nil {
		return decimal.Zero, fmt.Errorf("order: place %d: %w", o.ID, err)
	}
	if err := s.repo.Insert(ctx, o); err != nil {
		return decimal.Zero, fmt.Errorf("order: place %d: %w", o.ID, err)
	}

	total := s.Total(o)
	call.Annotate(
		observability.F("lines", len(o.Lines)),
		observability.F("total", total.StringFixed(2)),
	)
	call.Span().SetAttributes(attribute.String("order.status", string(o.Status())))
	s.publish(ctx, call, domain.NewOrderPlacedEvent(o, total))
	return total, nil
}

func (s *Service) ListOrders(ctx context.Context) (_ []*domain.Order, err error) {
	ctx, call := s.inst.Start(ctx, useCaseList, "ListOrders")
	defer func() { call.End(err) }()

	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("order: list: %w", err)
	}
	call.Annotate(observability.F("count", len(orders)))
	return orders, nil
}

func (s *Service) publish(ctx context.Context, call *application.Call, e domoutbox.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		call.Annotate(observability.F("event_publish_error", err.Error()))
		call.Logger().Warn("event_publish_failed",
			observability.F("event", e.EventName()),
			observability.F("error", err),
		)
	}
}
