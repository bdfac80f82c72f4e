package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS restaurant_tables (
		id    BIGINT PRIMARY KEY CHECK (id > 0),
		seats INT NOT NULL CHECK (seats > 0),
		area  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id               UUID PRIMARY KEY,
		client_name      TEXT NOT NULL,
		client_phone     TEXT NOT NULL,
		reserved_on      DATE NOT NULL,
		start_minute     INT NOT NULL CHECK (start_minute BETWEEN 0 AND 1439),
		end_minute       INT NOT NULL CHECK (end_minute BETWEEN 0 AND 1439),
		table_ids        BIGINT[] NOT NULL,
		people           INT NOT NULL CHECK (people > 0),
		event            TEXT NOT NULL,
		comment          TEXT NOT NULL DEFAULT '',
		dishes           JSONB NOT NULL DEFAULT '[]'::jsonb,
		status           TEXT NOT NULL DEFAULT 'pending'
		                 CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
		status_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (end_minute > start_minute)
	)`,

	`CREATE INDEX IF NOT EXISTS reservations_reserved_on_idx
		ON reservations (reserved_on, start_minute)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const op = "postgres.Migrate"

	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: statement %d: %w", op, i, err)
		}
	}

	return nil
}
