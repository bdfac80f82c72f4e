package domain

import "errors"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrLocked      = errors.New("reservation is locked")
	ErrNotTerminal = errors.New("status is not completed or cancelled")
)

var statusCycle = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusCompleted,
	StatusCompleted: StatusCancelled,
	StatusCancelled: StatusPending,
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	_, ok := statusCycle[st]
	return st, ok
}

// Next returns the status that follows s in the cycle.
func (s Status) Next() Status {
	if next, ok := statusCycle[s]; ok {
		return next
	}
	return StatusPending
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Locked reports whether the reservation can no longer be edited, deleted
// or moved to another status.
func (r *Reservation) Locked() bool {
	return r.Status.Terminal() && r.StatusConfirmed
}

// Advance moves the reservation one step along the status cycle.
func (r *Reservation) Advance() error {
	if r.Locked() {
		return ErrLocked
	}

	r.Status = r.Status.Next()
	r.StatusConfirmed = false

	return nil
}

// ConfirmStatus pins a completed or cancelled reservation, after which it is
// locked for good.
func (r *Reservation) ConfirmStatus() error {
	if r.Locked() {
		return ErrLocked
	}
	if !r.Status.Terminal() {
		return ErrNotTerminal
	}

	r.StatusConfirmed = true

	return nil
}
