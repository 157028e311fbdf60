package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RefusedReasonInsufficientStock = "insufficient_stock"
	RefusedReasonInvalidQuantity   = "invalid_quantity"
	RefusedReasonNotFound          = "not_found"
)

// OrderLineAddedEvent is emitted after a line reserved stock for an order.
type OrderLineAddedEvent struct {
	OrderID        int64
	ProductID      int64
	Quantity       int
	RemainingStock int
	OccurredAt     time.Time
}

func (OrderLineAddedEvent) EventName() string { return "order.line_added" }

func NewOrderLineAddedEvent(o *Order, productID int64, quantity, remaining int) OrderLineAddedEvent {
	return OrderLineAddedEvent{
		OrderID:        o.ID,
		ProductID:      productID,
		Quantity:       quantity,
		RemainingStock: remaining,
		OccurredAt:     time.Now().UTC(),
	}
}

// OrderLineRefusedEvent is emitted when a line could not be added.
type OrderLineRefusedEvent struct {
	OrderID    int64
	ProductID  int64
	Quantity   int
	Reason     string
	OccurredAt time.Time
}

func (OrderLineRefusedEvent) EventName() string { return "order.line_refused" }

func NewOrderLineRefusedEvent(o *Order, productID int64, quantity int, reason string) OrderLineRefusedEvent {
	return OrderLineRefusedEvent{
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}

// OrderPlacedEvent is emitted once an order enters the order book.
type OrderPlacedEvent struct {
	OrderID    int64
	LineCount  int
	Total      decimal.Decimal
	OccurredAt time.Time
}

func (OrderPlacedEvent) EventName() string { return "order.placed" }

func NewOrderPlacedEvent(o *Order, total decimal.Decimal) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:    o.ID,
		LineCount:  len(o.Lines),
		Total:      total,
		OccurredAt: time.Now().UTC(),
	}
}
