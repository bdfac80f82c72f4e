package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/clock"
)

const DateLayout = "2006-01-02"

// TimeOfDay is a 12-hour wall clock reading on the reservation date.
type TimeOfDay struct {
	Hour     int            `json:"hour"`
	Minute   int            `json:"minute"`
	Meridiem clock.Meridiem `json:"meridiem"`
}

func NewTimeOfDay(c clock.Clock, m clock.Meridiem) TimeOfDay {
	return TimeOfDay{Hour: c.Hour, Minute: c.Minute, Meridiem: m}
}

// TimeOfDayFromMinutes rebuilds a reading from minutes since midnight.
func TimeOfDayFromMinutes(total int) TimeOfDay {
	c, m := clock.FromMinutes(total)
	return NewTimeOfDay(c, m)
}

func (t TimeOfDay) Clock() clock.Clock {
	return clock.Clock{Hour: t.Hour, Minute: t.Minute}
}

func (t TimeOfDay) MinutesOfDay() int {
	return clock.MinutesOfDay(t.Clock(), t.Meridiem)
}

// String returns the normalized H:MM form without the meridiem.
func (t TimeOfDay) String() string {
	return t.Clock().String()
}

type Table struct {
	ID    int64  `json:"id"`
	Seats int    `json:"seats"`
	Area  string `json:"area"`
}

// TableStatus reports whether a table is free for a given time slot.
type TableStatus struct {
	Table
	Free           bool        `json:"free"`
	ReservationIDs []uuid.UUID `json:"reservation_ids"`
}

type Reservation struct {
	ID              uuid.UUID
	ClientName      string
	ClientPhone     string
	Date            time.Time
	Start           TimeOfDay
	End             TimeOfDay
	Tables          []int64
	People          int
	Event           string
	Comment         string
	Dishes          []Dish
	Status          Status
	StatusConfirmed bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ReservationFilter struct {
	Date   *time.Time
	Limit  int
	Offset int
}

// DateOf truncates t to a calendar date at midnight UTC, keeping the
// year, month and day as seen in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// HasTable reports whether the reservation occupies table id.
func (r *Reservation) HasTable(id int64) bool {
	for _, t := range r.Tables {
		if t == id {
			return true
		}
	}
	return false
}
