package query

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/clock"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/repository/memory"
	redisrepo "github.com/kirinyoku/tablebook/internal/repository/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

func pm(h, m int) domain.TimeOfDay {
	return domain.TimeOfDay{Hour: h, Minute: m, Meridiem: clock.PM}
}

func seed(t *testing.T) (*memory.Store, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, store.CreateTable(ctx, domain.Table{ID: id, Seats: 4}))
	}

	r := &domain.Reservation{
		ID:     uuid.New(),
		Date:   day,
		Start:  pm(6, 0),
		End:    pm(8, 0),
		Tables: []int64{2},
		Status: domain.StatusPending,
	}
	require.NoError(t, store.Reservations().Create(ctx, r))

	return store, r.ID
}

func TestTableAvailability(t *testing.T) {
	store, id := seed(t)
	svc := New(store, nil, Config{})

	got, err := svc.TableAvailability(context.Background(), day, pm(7, 0), pm(9, 0))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.True(t, got[0].Free)
	assert.False(t, got[1].Free)
	assert.Equal(t, []uuid.UUID{id}, got[1].ReservationIDs)
	assert.True(t, got[2].Free)

	got, err = svc.TableAvailability(context.Background(), day, pm(8, 0), pm(9, 0))
	require.NoError(t, err)
	assert.True(t, got[1].Free)
}

func TestTableAvailability_InvalidSlot(t *testing.T) {
	store, _ := seed(t)
	svc := New(store, nil, Config{})

	_, err := svc.TableAvailability(context.Background(), day, pm(9, 0), pm(9, 0))
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestTableAvailability_CachedUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store, _ := seed(t)
	cache := redisrepo.New(rdb)
	svc := New(store, cache, Config{})
	ctx := context.Background()

	_, err := svc.TableAvailability(ctx, day, pm(7, 0), pm(9, 0))
	require.NoError(t, err)

	late := &domain.Reservation{ID: uuid.New(), Date: day, Start: pm(7, 30), End: pm(8, 30), Tables: []int64{1}}
	require.NoError(t, store.Reservations().Create(ctx, late))

	got, err := svc.TableAvailability(ctx, day, pm(7, 0), pm(9, 0))
	require.NoError(t, err)
	assert.True(t, got[0].Free, "served from cache")

	require.NoError(t, cache.InvalidateDate(ctx, day))

	got, err = svc.TableAvailability(ctx, day, pm(7, 0), pm(9, 0))
	require.NoError(t, err)
	assert.False(t, got[0].Free)
}

func TestListTables(t *testing.T) {
	store, _ := seed(t)
	svc := New(store, nil, Config{})

	tables, err := svc.ListTables(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables, 3)
}
