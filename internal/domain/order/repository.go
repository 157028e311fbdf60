package order

import "context"

// Repository is the order book: placed orders in creation order.
type Repository interface {
	// NextID advances the order-id counter. Ids are never reused.
	NextID(ctx context.Context) int64
	Insert(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
}
