package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Zhima-Mochi/minishop-cli/internal/application"
	domain "github.com/Zhima-Mochi/minishop-cli/internal/domain/catalog"
	domoutbox "github.com/Zhima-Mochi/minishop-cli/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
)

const catalogService = "catalog-service"

const (
	useCaseAdd        = "catalog.add"
	useCaseList       = "catalog.list"
	useCaseFindByID   = "catalog.find_by_id"
	useCaseFindByName = "catalog.find_by_name"
	useCaseProductAt  = "catalog.product_at"
	useCaseRename     = "catalog.rename"
	useCasePrice      = "catalog.update_price"
	useCaseStock      = "catalog.update_stock"
	useCaseRemoveByID = "catalog.remove_by_id"
	useCaseRemoveAt   = "catalog.remove_at"
)

// Service runs the catalog use cases against a Repository and announces
// changes on the publisher.
type Service struct {
	repo      domain.Repository
	publisher domoutbox.Publisher
	inst      *application.Instrument
}

func NewService(repo domain.Repository, publisher domoutbox.Publisher, tel observability.Observability) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		inst:      application.NewInstrument(catalogService, tel),
	}
}

func (s *Service) AddProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (_ *domain.Product, err error) {
	ctx, call := s.inst.Start(ctx, useCaseAdd, "AddProduct",
		attribute.String("product.name", name),
		attribute.Int("product.stock", stock),
	)
	defer func() { call.End(err) }()

	p, err := s.repo.Add(ctx, name, price, stock)
	if err != nil {
		return nil, fmt.Errorf("catalog: add: %w", err)
	}
	call.Annotate(observability.F("product_id", p.ID))
	call.Span().SetAttributes(attribute.Int64("product.id", p.ID))
	s.publish(ctx, call, domain.NewProductAddedEvent(p))
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context) (_ []*domain.Product, err error) {
	ctx, call := s.inst.Start(ctx, useCaseList, "ListProducts")
	defer func() { call.End(err) }()

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	call.Annotate(observability.F("count", len(products)))
	return products, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (_ *domain.Product, err error) {
	ctx, call := s.inst.Start(ctx, useCaseFindByID, "FindProductByID", attribute.Int64("product.id", id))
	defer func() { call.End(err) }()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: find %d: %w", id, err)
	}
	return p, nil
}

func (s *Service) FindByName(ctx context.Context, name string) (_ *domain.Product, err error) {
	ctx, call := s.inst.Start(ctx, useCaseFindByName, "FindProductByName", attribute.String("product.name", name))
	defer func() { call.End(err) }()

	p, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: find %q: %w", name, err)
	}
	call.Annotate(observability.F("product_id", p.ID))
	return p, nil
}

// ProductAt resolves a zero-based listing position.
func (s *Service) ProductAt(ctx context.Context, position int) (_ *domain.Product, err error) {
	ctx, call := s.inst.Start(ctx, useCaseProductAt, "ProductAt", attribute.Int("catalog.position", position))
	defer func() { call.End(err) }()

	p, err := s.repo.At(ctx, position)
	if err != nil {
		return nil, fmt.Errorf("catalog: position %d: %w", position, err)
	}
	return p, nil
}

func (s *Service) Rename(ctx context.Context, id int64, name string) (_ *domain.Product, err error) {
	ctx, call := s.inst.Start(ctx, useCaseRename, "RenameProduct", attribute.Int64("product.id", id))
	defer func() { call.End(err) }()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: rename %d: %w", id, err)
	}
	p.Rename(name)
	s.publish(ctx, call, domain.NewProductUpdatedEvent(p, domain.FieldName))
	return p, nil
}

// UpdatePrice overwrites the price. A negative price is refused and the
// stored price kept.
func (s *Service) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (_ *domain.Product, err error) {
	ctx, call := s.inst.Start(ctx, useCasePrice, "UpdatePrice",
		attribute.Int64("product.id", id),
		attribute.String("product.price", price.String()),
	)
	defer func() { call.End(err) }()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: update price %d: %w", id, err)
	}
	if err := p.SetPrice(price); err != nil {
		return nil, fmt.Errorf("catalog: update price %d: %w", id, err)
	}
	s.publish(ctx, call, domain.NewProductUpdatedEvent(p, domain.FieldPrice))
	return p, nil
}

// UpdateStock overwrites the stock. A negative stock is refused and the
// stored stock kept.
func (s *Service) UpdateStock(ctx context.Context, id int64, stock int) (_ *domain.Product, err error) {
	ctx, call := s.inst.Start(ctx, useCaseStock, "UpdateStock",
		attribute.Int64("product.id", id),
		attribute.Int("product.stock", stock),
	)
	defer func() { call.End(err) }()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: update stock %d: %w", id, err)
	}
	if err := p.SetStock(stock); err != nil {
		return nil, fmt.Errorf("catalog: update stock %d: %w", id, err)
	}
	s.publish(ctx, call, domain.NewProductUpdatedEvent(p, domain.FieldStock))
	return p, nil
}

// RemoveByID removes the product once confirmed. Unconfirmed calls still
// report NotFound for unknown ids but change nothing.
func (s *Service) RemoveByID(ctx context.Context, id int64, confirmed bool) (removed bool, err error) {
	ctx, call := s.inst.Start(ctx, useCaseRemoveByID, "RemoveProductByID",
		attribute.Int64("product.id", id),
		attribute.Bool("confirmed", confirmed),
	)
	defer func() {
		call.Annotate(observability.F("removed", removed))
		call.End(err)
	}()

	if !confirmed {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return false, fmt.Errorf("catalog: remove %d: %w", id, err)
		}
		call.SetStatus("NOT_CONFIRMED")
		return false, nil
	}
	p, err := s.repo.RemoveByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("catalog: remove %d: %w", id, err)
	}
	s.publish(ctx, call, domain.NewProductRemovedEvent(p))
	return true, nil
}

// RemoveAt removes the product at a zero-based position once confirmed.
// Positions outside [0, count) fail with ErrInvalidPosition either way.
func (s *Service) RemoveAt(ctx context.Context, position int, confirmed bool) (removed bool, err error) {
	ctx, call := s.inst.Start(ctx, useCaseRemoveAt, "RemoveProductAt",
		attribute.Int("catalog.position", position),
		attribute.Bool("confirmed", confirmed),
	)
	defer func() {
		call.Annotate(observability.F("removed", removed))
		call.End(err)
	}()

	if !confirmed {
		if _, err := s.repo.At(ctx, position); err != nil {
			return false, fmt.Errorf("catalog: remove at %d: %w", position, err)
		}
		call.SetStatus("NOT_CONFIRMED")
		return false, nil
	}
	p, err := s.repo.RemoveAt(ctx, position)
	if err != nil {
		return false, fmt.Errorf("catalog: remove at %d: %w", position, err)
	}
	s.publish(ctx, call, domain.NewProductRemovedEvent(p))
	return true, nil
}

// Resolve exposes the repository's arena lookup for pricing order lines.
func (s *Service) Resolve(id int64) (*domain.Product, bool) {
	return s.repo.Resolve(id)
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
