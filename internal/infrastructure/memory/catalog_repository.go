package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domain "github.com/Zhima-Mochi/minishop-cli/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/id"
)

// CatalogRepository keeps every product ever created in an arena keyed by
// id, plus the ordered list of ids still listed. Lookups are linear scans
// over the listing. It is not safe for concurrent use.
type CatalogRepository struct {
	ids    *id.Sequence
	arena  map[int64]*domain.Product
	listed []int64
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		ids:   id.NewSequence(),
		arena: make(map[int64]*domain.Product),
	}
}

func (r *CatalogRepository) Add(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	_ = ctx

	// Validate before consuming an id, so a rejected add leaves no gap.
	if price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	if stock < 0 {
		return nil, domain.ErrInvalidStock
	}

	p, err := domain.NewProduct(r.ids.Next(), name, price, stock)
	if err != nil {
		return nil, fmt.Errorf("catalog repository: %w", err)
	}
	r.arena[p.ID] = p
	r.listed = append(r.listed, p.ID)
	return p, nil
}

func (r *CatalogRepository) List(ctx context.Context) ([]*domain.Product, error) {
	_ = ctx

	out := make([]*domain.Product, 0, len(r.listed))
	for _, pid := range r.listed {
		out = append(out, r.arena[pid])
	}
	return out, nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, productID int64) (*domain.Product, error) {
	_ = ctx

	for _, pid := range r.listed {
		if pid == productID {
			return r.arena[pid], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *CatalogRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	_ = ctx

	for _, pid := range r.listed {
		if p := r.arena[pid]; strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *CatalogRepository) At(ctx context.Context, position int) (*domain.Product, error) {
	_ = ctx

	if position < 0 || position >= len(r.listed) {
		return nil, domain.ErrInvalidPosition
	}
	return r.arena[r.listed[position]], nil
}

func (r *CatalogRepository) RemoveByID(ctx context.Context, productID int64) (*domain.Product, error) {
	_ = ctx

	for pos, pid := range r.listed {
		if pid == productID {
			return r.unlist(pos), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *CatalogRepository) RemoveAt(ctx context.Context, position int) (*domain.Product, error) {
	_ = ctx

	if position < 0 || position >= len(r.listed) {
		return nil, domain.ErrInvalidPosition
	}
	return r.unlist(position), nil
}

func (r *CatalogRepository) Resolve(productID int64) (*domain.Product, bool) {
	p, ok := r.arena[productID]
	return p, ok
}

func (r *CatalogRepository) unlist(position int) *domain.Product {
	p := r.arena[r.listed[position]]
	r.listed = append(r.listed[:position], r.listed[position+1:]...)
	return p
}
