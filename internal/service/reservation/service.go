package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/events"
	"github.com/kirinyoku/tablebook/internal/repository"
	postgresrepo "github.com/kirinyoku/tablebook/internal/repository/postgres"
	"github.com/kirinyoku/tablebook/internal/uow"
)

// Repository is the reservation storage used inside a transaction.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	List(ctx context.Context, f domain.ReservationFilter) ([]domain.Reservation, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error)
	Create(ctx context.Context, r *domain.Reservation) error
	Update(ctx context.Context, r *domain.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error) error
}

type Limiter interface {
	Allow(ctx context.Context, client string) (bool, int64, time.Duration, error)
}

// Invalidator drops cached table availability for a date.
type Invalidator interface {
	InvalidateDate(ctx context.Context, date time.Time) error
}

type Notifier interface {
	PublishReservationChanged(ctx context.Context, kind string, id uuid.UUID, date time.Time) error
}

// Deps wires the service to its collaborators. Tx and Repo are required;
// the rest may be left nil.
type Deps struct {
	Tx       Transactor
	Repo     func(tx postgresrepo.DB) Repository
	Cache    Invalidator
	Notifier Notifier
	Limiter  Limiter
	Events   events.Publisher
	Logger   *slog.Logger
}

type Config struct {
	Policy Policy
}

type Service struct {
	deps      Deps
	validator *Validator
	log       *slog.Logger
}

func New(deps Deps, cfg Config) *Service {
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		deps:      deps,
		validator: NewValidator(cfg.Policy),
		log:       log.With("component", "service.reservation"),
	}
}

// Validator exposes the validator configured for this service.
func (s *Service) Validator() *Validator { return s.validator }

// Create validates f and stores it as a new pending reservation.
//
// Parameters:
//   - ctx: request-scoped context.
//   - f: the submitted form.
//   - rlKey: client identity used for rate limiting; empty disables it.
//
// Returns:
//   - *domain.Reservation: the stored record.
//   - error: FieldErrors when the form is invalid or conflicts with another booking.
//   - error: RateLimitedError when the client exceeded its quota.
func (s *Service) Create(ctx context.Context, f Form, rlKey string) (*domain.Reservation, error) {
	const op = "service.reservation.Create"

	if err := s.allow(ctx, rlKey); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	f.ID = uuid.New()

	r, err := s.validator.Fields(f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	r.Status = domain.StatusPending

	err = s.deps.Tx.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		repo := s.deps.Repo(tx)

		existing, err := repo.ListByDate(ctx, r.Date)
		if err != nil {
			return err
		}

		if err := s.validator.CheckConflict(r, existing); err != nil {
			return err
		}

		if err := repo.Create(ctx, r); err != nil {
			return err
		}

		s.afterChange(after, events.ReservationCreated, r, r.Date)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return r, nil
}

// Update replaces the editable fields of a reservation. Status fields are
// kept as stored.
//
// Returns:
//   - error: ErrReservationNotFound, ErrReservationLocked or FieldErrors.
func (s *Service) Update(ctx context.Context, id uuid.UUID, f Form, rlKey string) (*domain.Reservation, error) {
	const op = "service.reservation.Update"

	if err := s.allow(ctx, rlKey); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	f.ID = id

	var out *domain.Reservation

	err := s.deps.Tx.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		repo := s.deps.Repo(tx)

		cur, err := s.current(ctx, repo, id)
		if err != nil {
			return err
		}

		r, err := s.validator.Fields(f)
		if err != nil {
			return err
		}

		existing, err := repo.ListByDate(ctx, r.Date)
		if err != nil {
			return err
		}

		if err := s.validator.CheckConflict(r, existing); err != nil {
			return err
		}

		r.Status = cur.Status
		r.StatusConfirmed = cur.StatusConfirmed
		r.CreatedAt = cur.CreatedAt

		if err := s.update(ctx, repo, r); err != nil {
			return err
		}

		s.afterChange(after, events.ReservationUpdated, r, cur.Date, r.Date)
		out = r

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Delete removes a reservation unless it is locked.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "service.reservation.Delete"

	err := s.deps.Tx.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		repo := s.deps.Repo(tx)

		cur, err := s.current(ctx, repo, id)
		if err != nil {
			return err
		}

		if err := repo.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrRecordLocked) {
				return ErrReservationLocked
			}
			return err
		}

		s.afterChange(after, events.ReservationDeleted, cur, cur.Date)

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// AdvanceStatus moves a reservation to the next status in the cycle
// pending, confirmed, completed, cancelled and back to pending.
func (s *Service) AdvanceStatus(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	const op = "service.reservation.AdvanceStatus"

	r, err := s.mutateStatus(ctx, id, events.ReservationStatusChanged, (*domain.Reservation).Advance)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return r, nil
}

// ConfirmStatus pins a completed or cancelled reservation. The record is
// locked afterwards.
//
// Returns:
//   - error: ErrConfirmNotAllowed when the status is not terminal.
//   - error: ErrReservationLocked when it is already confirmed.
func (s *Service) ConfirmStatus(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	const op = "service.reservation.ConfirmStatus"

	r, err := s.mutateStatus(ctx, id, events.ReservationLocked, (*domain.Reservation).ConfirmStatus)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	const op = "service.reservation.Get"

	r, err := s.deps.Repo(nil).Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrReservationNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return r, nil
}

func (s *Service) List(ctx context.Context, f domain.ReservationFilter) ([]domain.Reservation, error) {
	const op = "service.reservation.List"

	out, err := s.deps.Repo(nil).List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Check validates f against the stored reservations without saving it.
// Pass the reservation's own id when checking an edit, uuid.Nil otherwise.
func (s *Service) Check(ctx context.Context, id uuid.UUID, f Form) (*domain.Reservation, error) {
	const op = "service.reservation.Check"

	f.ID = id

	r, err := s.validator.Fields(f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	existing, err := s.deps.Repo(nil).ListByDate(ctx, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := s.validator.CheckConflict(r, existing); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return r, nil
}

func (s *Service) mutateStatus(
	ctx context.Context,
	id uuid.UUID,
	kind events.Type,
	change func(*domain.Reservation) error,
) (*domain.Reservation, error) {
	var out *domain.Reservation

	err := s.deps.Tx.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		repo := s.deps.Repo(tx)

		r, err := repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		switch err := change(r); {
		case errors.Is(err, domain.ErrLocked):
			return ErrReservationLocked
		case errors.Is(err, domain.ErrNotTerminal):
			return ErrConfirmNotAllowed
		case err != nil:
			return err
		}

		if err := s.update(ctx, repo, r); err != nil {
			return err
		}

		s.afterChange(after, kind, r, r.Date)
		out = r

		return nil
	})

	return out, err
}

// current loads id and refuses it when locked.
func (s *Service) current(ctx context.Context, repo Repository, id uuid.UUID) (*domain.Reservation, error) {
	cur, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if cur.Locked() {
		return nil, ErrReservationLocked
	}

	return cur, nil
}

func (s *Service) update(ctx context.Context, repo Repository, r *domain.Reservation) error {
	if err := repo.Update(ctx, r); err != nil {
		if errors.Is(err, repository.ErrRecordLocked) {
			return ErrReservationLocked
		}
		return err
	}
	return nil
}

func (s *Service) allow(ctx context.Context, rlKey string) error {
	if s.deps.Limiter == nil || rlKey == "" {
		return nil
	}

	ok, _, retry, err := s.deps.Limiter.Allow(ctx, rlKey)
	if err != nil {
		// fail open
		s.log.WarnContext(ctx, "rate limiter unavailable", "error", err)
		return nil
	}
	if !ok {
		return RateLimitedError{RetryAfter: retry}
	}

	return nil
}

func (s *Service) afterChange(after func(uow.AfterCommit), kind events.Type, r *domain.Reservation, dates ...time.Time) {
	snapshot := *r

	after(func(ctx context.Context) {
		if s.deps.Cache != nil {
			for _, d := range dates {
				if err := s.deps.Cache.InvalidateDate(ctx, d); err != nil {
					s.log.WarnContext(ctx, "invalidate availability cache", "date", d.Format(domain.DateLayout), "error", err)
				}
			}
		}

		if s.deps.Notifier != nil {
			if err := s.deps.Notifier.PublishReservationChanged(ctx, string(kind), snapshot.ID, snapshot.Date); err != nil {
				s.log.WarnContext(ctx, "publish change notice", "id", snapshot.ID, "error", err)
			}
		}

		if err := s.deps.Events.Publish(ctx, events.FromReservation(kind, &snapshot)); err != nil {
			s.log.WarnContext(ctx, "publish event", "type", kind, "id", snapshot.ID, "error", err)
		}

		s.log.InfoContext(ctx, "reservation changed", "type", kind, "id", snapshot.ID, "status", snapshot.Status)
	})
}
