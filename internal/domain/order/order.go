package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Zhima-Mochi/minishop-cli/internal/domain/catalog"
)

var (
	ErrNotFound          = errors.New("order: not found")
	ErrConflict          = errors.New("order: already exists")
	ErrInvalidQuantity   = errors.New("order: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("order: insufficient stock")
	ErrOrderPlaced       = errors.New("order: already placed")
	ErrNilProduct        = errors.New("order: product is required")
)

// InsufficientStockError reports a line refused because the product could
// not cover the requested quantity. It matches ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s", e.ProductName)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type Status string

const (
	StatusEmpty    Status = "empty"
	StatusBuilding Status = "building"
	StatusPlaced   Status = "placed"
)

// Line is one product/quantity entry. The product is referenced by id and
// resolved through the catalog whenever the order is priced.
type Line struct {
	ProductID int64
	Quantity  int
}

// ProductResolver finds a product by id, including products no longer listed.
type ProductResolver interface {
	Resolve(id int64) (*catalog.Product, bool)
}

type Order struct {
	ID        int64
	Lines     []Line
	CreatedAt time.Time
	PlacedAt  time.Time

	state OrderState
}

func New(id int64, createdAt time.Time) *Order {
	return &Order{
		ID:        id,
		CreatedAt: createdAt.UTC(),
		state:     emptyState{},
	}
}

func (o *Order) Status() Status {
	return o.currentState().Status()
}

// AddLine reserves quantity units of p for this order. On success the line
// is appended and p's stock reduced; on failure neither happens.
func (o *Order) AddLine(p *catalog.Product, quantity int) error {
	if p == nil {
		return ErrNilProduct
	}
	next, err := o.currentState().OnLineAdded(o)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := p.Deduct(quantity); err != nil {
		if errors.Is(err, catalog.ErrInsufficientStock) {
			return &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   quantity,
				Available:   p.Stock,
			}
		}
		return fmt.Errorf("order: deduct stock: %w", err)
	}
	o.Lines = append(o.Lines, Line{ProductID: p.ID, Quantity: quantity})
	o.state = next
	return nil
}

// Place seals the order. Placed orders accept no further lines.
func (o *Order) Place(at time.Time) error {
	next, err := o.currentState().OnPlaced(o)
	if err != nil {
		return err
	}
	o.PlacedAt = at.UTC()
	o.state = next
	return nil
}

// Total prices every line at the product's current price.
func (o *Order) Total(products ProductResolver) decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		p, ok := products.Resolve(line.ProductID)
		if !ok {
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func (o *Order) currentState() OrderState {
	if o.state == nil {
		if len(o.Lines) > 0 {
			return buildingState{}
		}
		return emptyState{}
	}
	return o.state
}
