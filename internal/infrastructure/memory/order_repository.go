package memory

import (
	"context"
	"fmt"

	domain "github.com/Zhima-Mochi/minishop-cli/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-cli/internal/infrastructure/id"
)

// OrderRepository is the in-memory order book. Orders are kept in insertion
// order and never removed. It is not safe for concurrent use.
type OrderRepository struct {
	ids    *id.Sequence
	orders []*domain.Order
	byID   map[int64]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		ids:  id.NewSequence(),
		byID: make(map[int64]*domain.Order),
	}
}

func (r *OrderRepository) NextID(ctx context.Context) int64 {
	_ = ctx
	return r.ids.Next()
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	_ = ctx
	if order == nil || order.ID == 0 {
		return fmt.Errorf("order repository: id is required")
	}
	if order.Status() != domain.StatusPlaced {
		return fmt.Errorf("order repository: order %d is %s, not placed", order.ID, order.Status())
	}
	if _, exists := r.byID[order.ID]; exists {
		return domain.ErrConflict
	}

	r.orders = append(r.orders, order)
	r.byID[order.ID] = order
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	_ = ctx

	order, ok := r.byID[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	_ = ctx
	return append([]*domain.Order(nil), r.orders...), nil
}
