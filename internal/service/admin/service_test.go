package admin

import (
	"context"
	"testing"

	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct{ n int }

func (c *countingCache) InvalidateTables(context.Context) error {
	c.n++
	return nil
}

func TestCreateTable(t *testing.T) {
	store := memory.NewStore()
	cache := &countingCache{}
	svc := New(store, cache, nil)
	ctx := context.Background()

	got, err := svc.CreateTable(ctx, domain.Table{ID: 5, Seats: 6, Area: " terrace "})
	require.NoError(t, err)
	assert.Equal(t, "terrace", got.Area)
	assert.Equal(t, 1, cache.n)

	_, err = svc.CreateTable(ctx, domain.Table{ID: 5, Seats: 2})
	assert.ErrorIs(t, err, ErrTableConflict)

	_, err = svc.CreateTable(ctx, domain.Table{ID: 0, Seats: 2})
	assert.ErrorIs(t, err, ErrInvalidTable)

	_, err = svc.CreateTable(ctx, domain.Table{ID: 6, Seats: 0})
	assert.ErrorIs(t, err, ErrInvalidTable)

	assert.Equal(t, 1, cache.n)
}
