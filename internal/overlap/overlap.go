// Package overlap detects table/time collisions between reservations.
package overlap

import (
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/domain"
)

// Candidate is the slot being booked. ExcludeID is skipped when scanning the
// existing reservations so that a record never conflicts with itself.
type Candidate struct {
	ExcludeID uuid.UUID
	Date      time.Time
	Start     domain.TimeOfDay
	End       domain.TimeOfDay
	Tables    []int64
}

// CandidateOf builds the candidate for an already validated reservation.
func CandidateOf(r *domain.Reservation) Candidate {
	return Candidate{
		ExcludeID: r.ID,
		Date:      r.Date,
		Start:     r.Start,
		End:       r.End,
		Tables:    r.Tables,
	}
}

// Intervals reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
// Touching endpoints do not count.
func Intervals(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// SharesTable reports whether a and b have at least one table in common.
func SharesTable(a, b []int64) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// HasConflict reports whether c collides with any of existing.
func HasConflict(existing []domain.Reservation, c Candidate) bool {
	start, end := c.Start.MinutesOfDay(), c.End.MinutesOfDay()

	for i := range existing {
		if conflicts(&existing[i], c, start, end) {
			return true
		}
	}

	return false
}

// Conflicts returns every reservation in existing that collides with c.
func Conflicts(existing []domain.Reservation, c Candidate) []domain.Reservation {
	start, end := c.Start.MinutesOfDay(), c.End.MinutesOfDay()

	var out []domain.Reservation
	for i := range existing {
		if conflicts(&existing[i], c, start, end) {
			out = append(out, existing[i])
		}
	}

	return out
}

// Occupancy reports, for each table, whether it is free during
// [start,end) on date and which reservations hold it otherwise.
func Occupancy(
	tables []domain.Table,
	existing []domain.Reservation,
	date time.Time,
	start, end domain.TimeOfDay,
) []domain.TableStatus {
	out := make([]domain.TableStatus, 0, len(tables))

	for _, t := range tables {
		busy := Conflicts(existing, Candidate{
			Date:   date,
			Start:  start,
			End:    end,
			Tables: []int64{t.ID},
		})

		ids := make([]uuid.UUID, 0, len(busy))
		for _, r := range busy {
			ids = append(ids, r.ID)
		}

		out = append(out, domain.TableStatus{
			Table:          t,
			Free:           len(ids) == 0,
			ReservationIDs: ids,
		})
	}

	return out
}

func conflicts(r *domain.Reservation, c Candidate, start, end int) bool {
	if c.ExcludeID != uuid.Nil && r.ID == c.ExcludeID {
		return false
	}

	if !domain.SameDate(r.Date, c.Date) {
		return false
	}

	if !Intervals(start, end, r.Start.MinutesOfDay(), r.End.MinutesOfDay()) {
		return false
	}

	return SharesTable(c.Tables, r.Tables)
}
