package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/repository"
)

type Store interface {
	CreateTable(ctx context.Context, t domain.Table) error
}

// Invalidator drops cached table data after the floor plan changes.
type Invalidator interface {
	InvalidateTables(ctx context.Context) error
}

type Service struct {
	store Store
	cache Invalidator
	log   *slog.Logger
}

// New builds the admin service. cache may be nil.
func New(store Store, cache Invalidator, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		store: store,
		cache: cache,
		log:   log.With("component", "service.admin"),
	}
}

// CreateTable registers a new table on the floor plan.
//
// Parameters:
//   - ctx: request-scoped context.
//   - t: the table; t.ID is the number shown to staff.
//
// Returns:
//   - error: admin.ErrInvalidTable if the number or seats are not positive.
//   - error: admin.ErrTableConflict if the table number is taken.
func (s *Service) CreateTable(ctx context.Context, t domain.Table) (*domain.Table, error) {
	const op = "service.admin.CreateTable"

	t.Area = strings.TrimSpace(t.Area)

	if t.ID <= 0 || t.Seats <= 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidTable)
	}

	if err := s.store.CreateTable(ctx, t); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s:%w", op, ErrTableConflict)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateTables(ctx); err != nil {
			s.log.WarnContext(ctx, "invalidate tables cache", "error", err)
		}
	}

	return &t, nil
}
