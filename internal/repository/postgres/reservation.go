package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/kirinyoku/tablebook/internal/repository"
)

const reservationColumns = `id, client_name, client_phone, reserved_on, start_minute, end_minute,
	table_ids, people, event, comment, dishes, status, status_confirmed, created_at, updated_at`

// notLocked guards every mutating statement so a locked row is never touched,
// whatever the caller checked beforehand.
const notLocked = `NOT (status IN ('completed', 'cancelled') AND status_confirmed)`

type ReservationRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ReservationRepo) With(db DB) *ReservationRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ReservationRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res        domain.Reservation
		startMin   int
		endMin     int
		dishesJSON []byte
		status     string
	)

	err := row.Scan(
		&res.ID, &res.ClientName, &res.ClientPhone, &res.Date, &startMin, &endMin,
		&res.Tables, &res.People, &res.Event, &res.Comment, &dishesJSON,
		&status, &res.StatusConfirmed, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date = domain.DateOf(res.Date)
	res.Start = domain.TimeOfDayFromMinutes(startMin)
	res.End = domain.TimeOfDayFromMinutes(endMin)
	res.Status = domain.Status(status)

	if len(dishesJSON) > 0 {
		if err := json.Unmarshal(dishesJSON, &res.Dishes); err != nil {
			return nil, fmt.Errorf("decode dishes: %w", err)
		}
	}

	return &res, nil
}

func dishesArg(dishes []domain.Dish) (string, error) {
	if dishes == nil {
		dishes = []domain.Dish{}
	}
	b, err := json.Marshal(dishes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Get retrieves a reservation by its ID.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - id: unique identifier of the reservation.
//
// Returns:
//   - *domain.Reservation: the reservation when found.
//   - error: repository.ErrNotFound if the reservation does not exist.
func (r *ReservationRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	const op = "postgres.ReservationRepo.Get"

	row := r.handle().QueryRow(ctx,
		`SELECT `+reservationColumns+`
		 FROM reservations WHERE id = $1`,
		id,
	)

	res, err := scanReservation(row)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return res, nil
}

// List returns reservations ordered by date and start time.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - f: optional date filter and pagination.
func (r *ReservationRepo) List(ctx context.Context, f domain.ReservationFilter) ([]domain.Reservation, error) {
	const op = "postgres.ReservationRepo.List"

	var date any
	if f.Date != nil {
		date = domain.DateOf(*f.Date)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.handle().Query(ctx,
		`SELECT `+reservationColumns+`
		 FROM reservations
		 WHERE ($1::date IS NULL OR reserved_on = $1::date)
		 ORDER BY reserved_on, start_minute, id
		 LIMIT $2 OFFSET $3`,
		date, limit, f.Offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// ListByDate returns every reservation booked on date. It is the read used
// by conflict detection, so it is not paginated.
func (r *ReservationRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	const op = "postgres.ReservationRepo.ListByDate"

	rows, err := r.handle().Query(ctx,
		`SELECT `+reservationColumns+`
		 FROM reservations
		 WHERE reserved_on = $1
		 ORDER BY start_minute, id`,
		domain.DateOf(date),
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Create inserts a reservation and fills CreatedAt/UpdatedAt.
//
// Returns:
//   - error: repository.ErrConflict if the ID already exists.
func (r *ReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	const op = "postgres.ReservationRepo.Create"

	dishes, err := dishesArg(res.Dishes)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	err = r.handle().QueryRow(ctx,
		`INSERT INTO reservations (
			id, client_name, client_phone, reserved_on, start_minute, end_minute,
			table_ids, people, event, comment, dishes, status, status_confirmed
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12, $13)
		 RETURNING created_at, updated_at`,
		res.ID, res.ClientName, res.ClientPhone, domain.DateOf(res.Date),
		res.Start.MinutesOfDay(), res.End.MinutesOfDay(),
		res.Tables, res.People, res.Event, res.Comment, dishes,
		string(res.Status), res.StatusConfirmed,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Update overwrites a reservation unless the stored row is locked.
//
// Returns:
//   - error: repository.ErrRecordLocked if the row is missing or locked.
func (r *ReservationRepo) Update(ctx context.Context, res *domain.Reservation) error {
	const op = "postgres.ReservationRepo.Update"

	dishes, err := dishesArg(res.Dishes)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	err = r.handle().QueryRow(ctx,
		`UPDATE reservations SET
			client_name = $2, client_phone = $3, reserved_on = $4,
			start_minute = $5, end_minute = $6, table_ids = $7, people = $8,
			event = $9, comment = $10, dishes = $11::jsonb, status = $12,
			status_confirmed = $13, updated_at = now()
		 WHERE id = $1 AND `+notLocked+`
		 RETURNING updated_at`,
		res.ID, res.ClientName, res.ClientPhone, domain.DateOf(res.Date),
		res.Start.MinutesOfDay(), res.End.MinutesOfDay(),
		res.Tables, res.People, res.Event, res.Comment, dishes,
		string(res.Status), res.StatusConfirmed,
	).Scan(&res.UpdatedAt)
	if err != nil {
		err = translateDBErr(err)
		if err == repository.ErrNotFound {
			return fmt.Errorf("%s:%w", op, repository.ErrRecordLocked)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// Delete removes a reservation unless it is locked.
//
// Returns:
//   - error: repository.ErrRecordLocked if the row is missing or locked.
func (r *ReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.ReservationRepo.Delete"

	tag, err := r.handle().Exec(ctx,
		`DELETE FROM reservations WHERE id = $1 AND `+notLocked,
		id,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrRecordLocked)
	}

	return nil
}
