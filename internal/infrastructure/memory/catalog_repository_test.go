package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Zhima-Mochi/minishop-cli/internal/domain/catalog"
)

func seed(t *testing.T, r *CatalogRepository, names ...string) []*domain.Product {
	t.Helper()
	out := make([]*domain.Product, 0, len(names))
	for i, n := range names {
		p, err := r.Add(context.Background(), n, decimal.NewFromInt(int64(i+1)), i)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestAddAssignsIncreasingIDsFromOne(t *testing.T) {
	r := NewCatalogRepository()
	products := seed(t, r, "a", "b", "c", "d")

	for i, p := range products {
		assert.Equal(t, int64(i+1), p.ID)
	}
}

func TestListPreservesInsertionOrderAndFields(t *testing.T) {
	ctx := context.Background()
	r := NewCatalogRepository()
	_, err := r.Add(ctx, "Widget", decimal.RequireFromString("10.00"), 5)
	require.NoError(t, err)
	_, err = r.Add(ctx, "Gadget", decimal.RequireFromString("3.50"), 0)
	require.NoError(t, err)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ID: 1 | Name: Widget | Price: 10.00 | Stock: 5", list[0].String())
	assert.Equal(t, "ID: 2 | Name: Gadget | Price: 3.50 | Stock: 0", list[1].String())
}

func TestListEmpty(t *testing.T) {
	list, err := NewCatalogRepository().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestAddRejectsNegativesWithoutConsumingID(t *testing.T) {
	ctx := context.Background()
	r := NewCatalogRepository()

	_, err := r.Add(ctx, "neg", decimal.NewFromInt(-1), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	_, err = r.Add(ctx, "neg", decimal.NewFromInt(1), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	p, err := r.Add(ctx, "ok", decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
}

func TestFindByNameIsCaseInsensitiveFirstMatch(t *testing.T) {
	ctx := context.Background()
	r := NewCatalogRepository()
	products := seed(t, r, "Widget", "widget", "Other")

	got, err := r.FindByName(ctx, "WIDGET")
	require.NoError(t, err)
	assert.Same(t, products[0], got)

	_, err = r.FindByName(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByIDReturnsStoredInstance(t *testing.T) {
	ctx := context.Background()
	r := NewCatalogRepository()
	products := seed(t, r, "a", "b")

	got, err := r.FindByID(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, got.SetStock(42))

	again, err := r.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 42, again.Stock)
	assert.Same(t, products[1], again)

	_, err = r.FindByID(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveByIDKeepsOtherIDsAndNeverReuses(t *testing.T) {
	ctx := context.Background()
	r := NewCatalogRepository()
	seed(t, r, "a", "b", "c")

	removed, err := r.RemoveByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Name)

	_, err = r.FindByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.RemoveByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)

	next, err := r.Add(ctx, "d", decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), next.ID)
}

func TestRemoveAtBounds(t *testing.T) {
	ctx := context.Background()
	r := NewCatalogRepository()
	seed(t, r, "a", "b", "c")

	for _, pos := range []int{-1, 3, 100} {
		_, err := r.RemoveAt(ctx, pos)
		assert.ErrorIs(t, err, domain.ErrInvalidPosition)
		_, err = r.At(ctx, pos)
		assert.ErrorIs(t, err, domain.ErrInvalidPosition)
	}
	list, _ := r.List(ctx)
	assert.Len(t, list, 3)

	removed, err := r.RemoveAt(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "a", removed.Name)

	first, err := r.At(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "b", first.Name)
}

func TestResolveSeesRemovedProducts(t *testing.T) {
	ctx := context.Background()
	r := NewCatalogRepository()
	seed(t, r, "a")

	_, err := r.RemoveByID(ctx, 1)
	require.NoError(t, err)

	p, ok := r.Resolve(1)
	require.True(t, ok)
	assert.Equal(t, "a", p.Name)

	_, ok = r.Resolve(99)
	assert.False(t, ok)
}
