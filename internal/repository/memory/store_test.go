package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/repository"
	postgres "github.com/kirinyoku/tablebook/internal/repository/postgres"
	"github.com/kirinyoku/tablebook/internal/uow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

func reservation(startMin int, tables ...int64) *domain.Reservation {
	return &domain.Reservation{
		ID:     uuid.New(),
		Date:   day,
		Start:  domain.TimeOfDayFromMinutes(startMin),
		End:    domain.TimeOfDayFromMinutes(startMin + 60),
		Tables: tables,
		Status: domain.StatusPending,
	}
}

func TestDo_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	kept := reservation(600, 1)
	require.NoError(t, s.Reservations().Create(ctx, kept))

	boom := errors.New("boom")
	hookRan := false

	err := s.Do(ctx, func(ctx context.Context, _ postgres.DB, after func(uow.AfterCommit)) error {
		require.NoError(t, s.Reservations().Create(ctx, reservation(700, 2)))
		require.NoError(t, s.Reservations().Delete(ctx, kept.ID))
		after(func(context.Context) { hookRan = true })
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, hookRan)

	all, err := s.Reservations().ListByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)
}

func TestDo_PanicReleasesLockAndRestores(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	kept := reservation(600, 1)
	require.NoError(t, s.Reservations().Create(ctx, kept))

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.Do(ctx, func(ctx context.Context, _ postgres.DB, _ func(uow.AfterCommit)) error {
			require.NoError(t, s.Reservations().Create(ctx, reservation(700, 2)))
			panic("boom")
		})
	})

	done := make(chan error, 1)
	go func() {
		done <- s.Do(ctx, func(ctx context.Context, _ postgres.DB, _ func(uow.AfterCommit)) error {
			return s.Reservations().Create(ctx, reservation(900, 3))
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Do blocked after a panicking transaction")
	}

	all, err := s.Reservations().ListByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, kept.ID, all[0].ID)
	assert.Equal(t, 900, all[1].Start.MinutesOfDay())
}

func TestDo_RunsHooksAfterCommit(t *testing.T) {
	s := NewStore()
	hookRan := false

	err := s.Do(context.Background(), func(ctx context.Context, _ postgres.DB, after func(uow.AfterCommit)) error {
		after(func(context.Context) { hookRan = true })
		return s.Reservations().Create(ctx, reservation(600, 1))
	})
	require.NoError(t, err)
	assert.True(t, hookRan)
}

func TestReservationRepo_LockedRowsAreImmutable(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Reservations()

	r := reservation(600, 1)
	r.Status = domain.StatusCancelled
	r.StatusConfirmed = true
	require.NoError(t, repo.Create(ctx, r))

	edit := *r
	edit.ClientName = "changed"
	assert.ErrorIs(t, repo.Update(ctx, &edit), repository.ErrRecordLocked)
	assert.ErrorIs(t, repo.Delete(ctx, r.ID), repository.ErrRecordLocked)

	got, err := repo.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ClientName)
}

func TestReservationRepo_GetReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	r := reservation(600, 1, 2)
	require.NoError(t, s.Reservations().Create(ctx, r))
	r.Tables[0] = 99

	got, err := s.Reservations().Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, got.Tables)

	_, err = s.Reservations().Get(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReservationRepo_ListPaginates(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for i := range 5 {
		require.NoError(t, s.Reservations().Create(ctx, reservation(600+i*60, 1)))
	}
	other := reservation(600, 1)
	other.Date = day.AddDate(0, 0, 1)
	require.NoError(t, s.Reservations().Create(ctx, other))

	d := day
	page, err := s.Reservations().List(ctx, domain.ReservationFilter{Date: &d, Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 660, page[0].Start.MinutesOfDay())
	assert.Equal(t, 720, page[1].Start.MinutesOfDay())

	all, err := s.Reservations().List(ctx, domain.ReservationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestCreateTable_Conflict(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.CreateTable(ctx, domain.Table{ID: 2, Seats: 4}))
	require.NoError(t, s.CreateTable(ctx, domain.Table{ID: 1, Seats: 2}))
	assert.ErrorIs(t, s.CreateTable(ctx, domain.Table{ID: 1, Seats: 6}), repository.ErrConflict)

	tables, err := s.ListTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.EqualValues(t, 1, tables[0].ID)
	assert.Equal(t, 2, tables[0].Seats)
}
