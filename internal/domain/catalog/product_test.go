package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductRejectsNegatives(t *testing.T) {
	_, err := NewProduct(1, "Widget", decimal.RequireFromString("-0.01"), 1)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewProduct(1, "Widget", decimal.Zero, -1)
	assert.ErrorIs(t, err, ErrInvalidStock)

	p, err := NewProduct(1, "", decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, "", p.Name)
}

func TestSetPrice(t *testing.T) {
	p, err := NewProduct(1, "Widget", decimal.RequireFromString("10.00"), 5)
	require.NoError(t, err)

	assert.ErrorIs(t, p.SetPrice(decimal.RequireFromString("-1")), ErrInvalidPrice)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("10.00")))

	require.NoError(t, p.SetPrice(decimal.RequireFromString("12.345")))
	assert.True(t, p.Price.Equal(decimal.RequireFromString("12.345")))

	require.NoError(t, p.SetPrice(decimal.Zero))
	assert.True(t, p.Price.IsZero())
}

func TestSetStock(t *testing.T) {
	p, err := NewProduct(1, "Widget", decimal.Zero, 5)
	require.NoError(t, err)

	assert.ErrorIs(t, p.SetStock(-3), ErrInvalidStock)
	assert.Equal(t, 5, p.Stock)

	require.NoError(t, p.SetStock(0))
	assert.Equal(t, 0, p.Stock)
}

func TestDeduct(t *testing.T) {
	p, err := NewProduct(1, "Widget", decimal.NewFromInt(1), 3)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Deduct(4), ErrInsufficientStock)
	assert.Equal(t, 3, p.Stock)

	assert.ErrorIs(t, p.Deduct(0), ErrInvalidQuantity)
	assert.ErrorIs(t, p.Deduct(-2), ErrInvalidQuantity)
	assert.Equal(t, 3, p.Stock)

	require.NoError(t, p.Deduct(3))
	assert.Equal(t, 0, p.Stock)
}

func TestString(t *testing.T) {
	p, err := NewProduct(7, "Gadget", decimal.RequireFromString("3.5"), 0)
	require.NoError(t, err)

	assert.Equal(t, "ID: 7 | Name: Gadget | Price: 3.50 | Stock: 0", p.String())
}
