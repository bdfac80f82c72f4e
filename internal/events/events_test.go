package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tablebook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReservation_Encode(t *testing.T) {
	r := &domain.Reservation{
		ID:     uuid.New(),
		Date:   time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Tables: []int64{3, 5},
		Status: domain.StatusCancelled,
	}

	e := FromReservation(ReservationLocked, r)
	b, err := e.encode()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, "reservation.locked", got["type"])
	assert.Equal(t, r.ID.String(), got["reservation_id"])
	assert.Equal(t, "2026-10-20", got["date"])
	assert.Equal(t, "cancelled", got["status"])
	assert.Equal(t, []any{3.0, 5.0}, got["tables"])
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}

	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
