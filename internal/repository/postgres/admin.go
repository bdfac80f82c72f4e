package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tablebook/internal/domain"
)

type AdminRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AdminRepo) With(db DB) *AdminRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AdminRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// CreateTable registers a physical table.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - t: table to insert; t.ID is the number staff see on the floor.
//
// Returns:
//   - error: repository.ErrConflict if a table with the same ID exists.
func (r *AdminRepo) CreateTable(ctx context.Context, t domain.Table) error {
	const op = "postgres.AdminRepo.CreateTable"

	_, err := r.handle().Exec(ctx,
		`INSERT INTO restaurant_tables (id, seats, area)
		 VALUES ($1, $2, $3)`,
		t.ID, t.Seats, t.Area,
	)

	return wrapDBErr(op, err)
}
