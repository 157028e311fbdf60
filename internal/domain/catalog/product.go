package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("catalog: product not found")
	ErrInvalidPrice      = errors.New("catalog: price must be zero or greater")
	ErrInvalidStock      = errors.New("catalog: stock must be zero or greater")
	ErrInvalidQuantity   = errors.New("catalog: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
	ErrInvalidPosition   = errors.New("catalog: position out of range")
)

// Product is a catalog entry. ID is fixed at creation; Name, Price and Stock
// change only through the methods below, which keep Price and Stock
// non-negative.
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProduct(id int64, name string, price decimal.Decimal, stock int) (*Product, error) {
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	now := time.Now().UTC()
	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p *Product) Rename(name string) {
	p.Name = name
	p.touch()
}

func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	p.Price = price
	p.touch()
	return nil
}

func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return ErrInvalidStock
	}
	p.Stock = stock
	p.touch()
	return nil
}

// Deduct removes quantity units from stock, or nothing at all.
func (p *Product) Deduct(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	p.touch()
	return nil
}

// String renders the product the way the console lists it.
func (p *Product) String() string {
	return fmt.Sprintf("ID: %d | Name: %s | Price: %s | Stock: %d", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}
