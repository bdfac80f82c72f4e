package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ReservationNotice is the message broadcast on every committed change.
type ReservationNotice struct {
	Type          string    `json:"type"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Date          string    `json:"date"`
	TsUnix        int64     `json:"ts_unix"`
}

type ReservationsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewReservationsPubSub(rdb *redis.Client) *ReservationsPubSub {
	return &ReservationsPubSub{
		rdb:     rdb,
		channel: ChannelReservationsChanged(),
	}
}

func (p *ReservationsPubSub) PublishReservationChanged(
	ctx context.Context,
	kind string,
	id uuid.UUID,
	date time.Time,
) error {
	msg := ReservationNotice{
		Type:          kind,
		ReservationID: id,
		Date:          date.Format("2006-01-02"),
		TsUnix:        time.Now().Unix(),
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe blocks, calling handler for each notice until ctx is done.
func (p *ReservationsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, n ReservationNotice)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var n ReservationNotice
			if err := json.Unmarshal([]byte(m.Payload), &n); err == nil &&
				n.ReservationID != uuid.Nil {
				handler(ctx, n)
			}
		}
	}
}
