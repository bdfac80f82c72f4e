// Package memory is a process-local storage backend with the same semantics
// as the Postgres repositories. It backs STORAGE_DRIVER=memory and the
// service tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/repository"
	postgres "github.com/kirinyoku/tablebook/internal/repository/postgres"
	"github.com/kirinyoku/tablebook/internal/uow"
)

type Store struct {
	txMu sync.Mutex

	mu           sync.RWMutex
	tables       map[int64]domain.Table
	reservations map[uuid.UUID]domain.Reservation

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		tables:       make(map[int64]domain.Table),
		reservations: make(map[uuid.UUID]domain.Reservation),
		now:          time.Now,
	}
}

// Do runs fn with exclusive write access. Any change fn made is rolled back
// when it returns an error. tx is always nil.
func (s *Store) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx postgres.DB, after func(uow.AfterCommit)) error,
) error {
	hooks, err := s.run(ctx, fn)
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}

// run holds txMu for the duration of fn and restores the snapshot when fn
// fails or panics.
func (s *Store) run(
	ctx context.Context,
	fn func(ctx context.Context, tx postgres.DB, after func(uow.AfterCommit)) error,
) (hooks []uow.AfterCommit, err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	tables := maps.Clone(s.tables)
	reservations := maps.Clone(s.reservations)
	s.mu.RUnlock()

	restore := func() {
		s.mu.Lock()
		s.tables = tables
		s.reservations = reservations
		s.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			restore()
			panic(p)
		}
	}()

	err = fn(ctx, nil, func(h uow.AfterCommit) {
		hooks = append(hooks, h)
	})
	if err != nil {
		restore()
		return nil, err
	}

	return hooks, nil
}

func (s *Store) Reservations() *ReservationRepo { return &ReservationRepo{s: s} }

// ListTables returns every table ordered by ID.
func (s *Store) ListTables(_ context.Context) ([]domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Collect(maps.Values(s.tables))
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (s *Store) ListReservationsByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	return s.Reservations().ListByDate(ctx, date)
}

func (s *Store) CreateTable(_ context.Context, t domain.Table) error {
	const op = "memory.Store.CreateTable"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[t.ID]; ok {
		return fmt.Errorf("%s:%w", op, repository.ErrConflict)
	}
	s.tables[t.ID] = t

	return nil
}

type ReservationRepo struct {
	s *Store
}

func (r *ReservationRepo) Get(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	const op = "memory.ReservationRepo.Get"

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	out := clone(res)
	return &out, nil
}

func (r *ReservationRepo) List(_ context.Context, f domain.ReservationFilter) ([]domain.Reservation, error) {
	r.s.mu.RLock()
	all := r.sorted(func(res *domain.Reservation) bool {
		return f.Date == nil || domain.SameDate(res.Date, *f.Date)
	})
	r.s.mu.RUnlock()

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}

	if f.Offset >= len(all) {
		return nil, nil
	}
	all = all[max(f.Offset, 0):]
	if len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}

func (r *ReservationRepo) ListByDate(_ context.Context, date time.Time) ([]domain.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.sorted(func(res *domain.Reservation) bool {
		return domain.SameDate(res.Date, date)
	}), nil
}

func (r *ReservationRepo) Create(_ context.Context, res *domain.Reservation) error {
	const op = "memory.ReservationRepo.Create"

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reservations[res.ID]; ok {
		return fmt.Errorf("%s:%w", op, repository.ErrConflict)
	}

	now := r.s.now().UTC()
	res.CreatedAt, res.UpdatedAt = now, now
	r.s.reservations[res.ID] = clone(*res)

	return nil
}

func (r *ReservationRepo) Update(_ context.Context, res *domain.Reservation) error {
	const op = "memory.ReservationRepo.Update"

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.reservations[res.ID]
	if !ok || cur.Locked() {
		return fmt.Errorf("%s:%w", op, repository.ErrRecordLocked)
	}

	res.CreatedAt = cur.CreatedAt
	res.UpdatedAt = r.s.now().UTC()
	r.s.reservations[res.ID] = clone(*res)

	return nil
}

func (r *ReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	const op = "memory.ReservationRepo.Delete"

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.reservations[id]
	if !ok || cur.Locked() {
		return fmt.Errorf("%s:%w", op, repository.ErrRecordLocked)
	}
	delete(r.s.reservations, id)

	return nil
}

// sorted must be called with mu held.
func (r *ReservationRepo) sorted(keep func(*domain.Reservation) bool) []domain.Reservation {
	var out []domain.Reservation
	for _, res := range r.s.reservations {
		if keep(&res) {
			out = append(out, clone(res))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Start.MinutesOfDay() != b.Start.MinutesOfDay() {
			return a.Start.MinutesOfDay() < b.Start.MinutesOfDay()
		}
		return a.ID.String() < b.ID.String()
	})

	return out
}

func clone(r domain.Reservation) domain.Reservation {
	r.Tables = slices.Clone(r.Tables)
	r.Dishes = slices.Clone(r.Dishes)
	return r
}
