package query

import (
	"context"
	"fmt"
	"time"

	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/overlap"
	redisrepo "github.com/kirinyoku/tablebook/internal/repository/redis"
)

// Store is the read side the table screens need.
type Store interface {
	ListTables(ctx context.Context) ([]domain.Table, error)
	ListReservationsByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error)
}

type Config struct {
	TablesTTL       time.Duration
	AvailabilityTTL time.Duration
}

type Service struct {
	store Store
	cache *redisrepo.Cache
	cfg   Config
}

// New builds the query service. cache may be nil, in which case every call
// reads the store.
func New(store Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.TablesTTL <= 0 {
		cfg.TablesTTL = 5 * time.Minute
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 30 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// ListTables returns every table in the restaurant.
func (s *Service) ListTables(ctx context.Context) ([]domain.Table, error) {
	const op = "service.query.ListTables"

	tables, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyTables(),
		s.cfg.TablesTTL,
		func(ctx context.Context) ([]domain.Table, error) {
			return s.store.ListTables(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return tables, nil
}

// TableAvailability reports which tables are free during [start,end) on date.
//
// Parameters:
//   - ctx: request-scoped context.
//   - date: the reservation date.
//   - start, end: the slot; end must be later than start.
//
// Returns:
//   - []domain.TableStatus: one entry per table, ordered by table ID.
//   - error: query.ErrInvalidSlot if end is not after start.
func (s *Service) TableAvailability(
	ctx context.Context,
	date time.Time,
	start, end domain.TimeOfDay,
) ([]domain.TableStatus, error) {
	const op = "service.query.TableAvailability"

	startMin, endMin := start.MinutesOfDay(), end.MinutesOfDay()
	if endMin <= startMin {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidSlot)
	}

	date = domain.DateOf(date)

	out, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyTableAvailability(date, startMin, endMin),
		s.cfg.AvailabilityTTL,
		func(ctx context.Context) ([]domain.TableStatus, error) {
			tables, err := s.store.ListTables(ctx)
			if err != nil {
				return nil, err
			}

			existing, err := s.store.ListReservationsByDate(ctx, date)
			if err != nil {
				return nil, err
			}

			return overlap.Occupancy(tables, existing, date, start, end), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
