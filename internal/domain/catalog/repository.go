package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository owns every Product. Returned products are the stored instances,
// so mutations through their methods are visible to later lookups.
type Repository interface {
	// Add creates a product under the next identifier and appends it to the listing.
	Add(ctx context.Context, name string, price decimal.Decimal, stock int) (*Product, error)
	// List returns live products in insertion order.
	List(ctx context.Context) ([]*Product, error)
	FindByID(ctx context.Context, id int64) (*Product, error)
	// FindByName returns the first product, in insertion order, whose name
	// matches case-insensitively.
	FindByName(ctx context.Context, name string) (*Product, error)
	// At returns the product at a zero-based listing position.
	At(ctx context.Context, position int) (*Product, error)
	RemoveByID(ctx context.Context, id int64) (*Product, error)
	RemoveAt(ctx context.Context, position int) (*Product, error)
	// Resolve looks a product up by id, including removed ones, so that
	// existing order lines keep pricing.
	Resolve(id int64) (*Product, bool)
}
