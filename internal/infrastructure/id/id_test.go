package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceIsMonotonicFromOne(t *testing.T) {
	s := NewSequence()
	for want := int64(1); want <= 5; want++ {
		assert.Equal(t, want, s.Next())
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	products, orders := NewSequence(), NewSequence()
	products.Next()
	products.Next()

	assert.Equal(t, int64(1), orders.Next())
	assert.Equal(t, int64(3), products.Next())
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.NewID(), g.NewID()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
