package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tablebook/internal/domain"
)

// QueryRepo serves the read-only table status screens.
type QueryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *QueryRepo) With(db DB) *QueryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *QueryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// ListTables returns every table ordered by ID.
func (r *QueryRepo) ListTables(ctx context.Context) ([]domain.Table, error) {
	const op = "postgres.QueryRepo.ListTables"

	rows, err := r.handle().Query(ctx,
		`SELECT id, seats, area
		 FROM restaurant_tables
		 ORDER BY id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.Seats, &t.Area); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// ListReservationsByDate returns the reservations occupying tables on date.
func (r *QueryRepo) ListReservationsByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	repo := &ReservationRepo{pool: r.pool, db: r.db}
	return repo.ListByDate(ctx, date)
}
