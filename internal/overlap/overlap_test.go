package overlap

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/clock"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

func tod(h, m int, mer clock.Meridiem) domain.TimeOfDay {
	return domain.TimeOfDay{Hour: h, Minute: m, Meridiem: mer}
}

func booking(start, end domain.TimeOfDay, tables ...int64) domain.Reservation {
	return domain.Reservation{
		ID:     uuid.New(),
		Date:   day,
		Start:  start,
		End:    end,
		Tables: tables,
	}
}

func TestIntervals(t *testing.T) {
	assert.True(t, Intervals(0, 60, 30, 90))
	assert.True(t, Intervals(30, 90, 0, 60))
	assert.True(t, Intervals(0, 120, 30, 60))
	assert.False(t, Intervals(0, 60, 60, 120))
	assert.False(t, Intervals(60, 120, 0, 60))
	assert.False(t, Intervals(0, 30, 60, 90))
}

func TestHasConflict_SameTableOverlapping(t *testing.T) {
	first := booking(tod(6, 0, clock.PM), tod(7, 0, clock.PM), 5)
	second := booking(tod(6, 30, clock.PM), tod(7, 30, clock.PM), 5)

	existing := []domain.Reservation{first, second}

	assert.True(t, HasConflict(existing, CandidateOf(&second)))
	assert.True(t, HasConflict(existing, CandidateOf(&first)))

	got := Conflicts(existing, CandidateOf(&second))
	require.Len(t, got, 1)
	assert.Equal(t, first.ID, got[0].ID)
}

func TestHasConflict_TouchingEndpoints(t *testing.T) {
	a := booking(tod(12, 0, clock.PM), tod(1, 0, clock.PM), 3)
	b := booking(tod(1, 0, clock.PM), tod(2, 0, clock.PM), 3)

	require.Equal(t, 780, a.End.MinutesOfDay())
	require.Equal(t, 780, b.Start.MinutesOfDay())

	assert.False(t, HasConflict([]domain.Reservation{a}, CandidateOf(&b)))
	assert.False(t, HasConflict([]domain.Reservation{b}, CandidateOf(&a)))
}

func TestHasConflict_DisjointTablesNeverConflict(t *testing.T) {
	for s := 0; s < clock.MinutesPerDay-60; s += 45 {
		for e := s + 15; e <= clock.MinutesPerDay-1; e += 120 {
			a := booking(domain.TimeOfDayFromMinutes(s), domain.TimeOfDayFromMinutes(e), 1, 2)
			b := booking(tod(6, 0, clock.PM), tod(9, 0, clock.PM), 3, 4)

			assert.False(t, HasConflict([]domain.Reservation{a}, CandidateOf(&b)), fmt.Sprintf("%d-%d", s, e))
		}
	}
}

func TestHasConflict_SharedTableMatchesIntervalRule(t *testing.T) {
	for as := 0; as < 1440; as += 97 {
		for ae := as + 30; ae < 1440; ae += 173 {
			for bs := 0; bs < 1440; bs += 89 {
				be := min(bs+90, 1439)
				a := booking(domain.TimeOfDayFromMinutes(as), domain.TimeOfDayFromMinutes(ae), 7, 8)
				b := booking(domain.TimeOfDayFromMinutes(bs), domain.TimeOfDayFromMinutes(be), 8)

				want := as < be && ae > bs
				assert.Equal(t, want, HasConflict([]domain.Reservation{a}, CandidateOf(&b)))
			}
		}
	}
}

func TestHasConflict_DifferentDate(t *testing.T) {
	a := booking(tod(6, 0, clock.PM), tod(8, 0, clock.PM), 1)
	b := booking(tod(6, 0, clock.PM), tod(8, 0, clock.PM), 1)
	b.Date = day.AddDate(0, 0, 1)

	assert.False(t, HasConflict([]domain.Reservation{a}, CandidateOf(&b)))
}

func TestHasConflict_ExcludesSelf(t *testing.T) {
	a := booking(tod(6, 0, clock.PM), tod(8, 0, clock.PM), 1)

	assert.False(t, HasConflict([]domain.Reservation{a}, CandidateOf(&a)))

	c := CandidateOf(&a)
	c.ExcludeID = uuid.Nil
	assert.True(t, HasConflict([]domain.Reservation{a}, c))
}

func TestOccupancy(t *testing.T) {
	tables := []domain.Table{{ID: 1, Seats: 2}, {ID: 2, Seats: 4}, {ID: 3, Seats: 6}}
	a := booking(tod(6, 0, clock.PM), tod(8, 0, clock.PM), 1, 3)
	b := booking(tod(8, 0, clock.PM), tod(10, 0, clock.PM), 2)

	got := Occupancy(tables, []domain.Reservation{a, b}, day, tod(7, 0, clock.PM), tod(8, 0, clock.PM))
	require.Len(t, got, 3)

	assert.False(t, got[0].Free)
	assert.Equal(t, []uuid.UUID{a.ID}, got[0].ReservationIDs)
	assert.True(t, got[1].Free)
	assert.Empty(t, got[1].ReservationIDs)
	assert.False(t, got[2].Free)
}
