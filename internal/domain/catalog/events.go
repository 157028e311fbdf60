package catalog

import "time"

const (
	FieldName  = "name"
	FieldPrice = "price"
	FieldStock = "stock"
)

// ProductAddedEvent is emitted once a product enters the catalog.
type ProductAddedEvent struct {
	ProductID  int64
	Name       string
	Stock      int
	OccurredAt time.Time
}

func (ProductAddedEvent) EventName() string { return "catalog.product_added" }

func NewProductAddedEvent(p *Product) ProductAddedEvent {
	return ProductAddedEvent{
		ProductID:  p.ID,
		Name:       p.Name,
		Stock:      p.Stock,
		OccurredAt: time.Now().UTC(),
	}
}

// ProductUpdatedEvent is emitted after a single field of a product changes.
type ProductUpdatedEvent struct {
	ProductID  int64
	Name       string
	Field      string
	Stock      int
	OccurredAt time.Time
}

func (ProductUpdatedEvent) EventName() string { return "catalog.product_updated" }

func NewProductUpdatedEvent(p *Product, field string) ProductUpdatedEvent {
	return ProductUpdatedEvent{
		ProductID:  p.ID,
		Name:       p.Name,
		Field:      field,
		Stock:      p.Stock,
		OccurredAt: time.Now().UTC(),
	}
}

// ProductRemovedEvent is emitted when a product leaves the live listing.
type ProductRemovedEvent struct {
	ProductID  int64
	Name       string
	OccurredAt time.Time
}

func (ProductRemovedEvent) EventName() string { return "catalog.product_removed" }

func NewProductRemovedEvent(p *Product) ProductRemovedEvent {
	return ProductRemovedEvent{
		ProductID:  p.ID,
		Name:       p.Name,
		OccurredAt: time.Now().UTC(),
	}
}
