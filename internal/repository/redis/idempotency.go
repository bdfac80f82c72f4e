package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idemLockValue = "LOCK"
	idemResPrefix = "RES:"
)

// IdemState is what a caller finds when it claims an idempotency key.
type IdemState int

const (
	// IdemAcquired means the caller owns the key and must either Save or Release it.
	IdemAcquired IdemState = iota
	// IdemInFlight means another request holds the key and has not finished.
	IdemInFlight
	// IdemReplay means a stored response is available for the key.
	IdemReplay
)

// IdempotencyStore remembers the response of a mutating request for ttl so
// that a retried request with the same key replays it instead of running again.
type IdempotencyStore struct {
	rdb     *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl, lockTTL time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &IdempotencyStore{rdb: rdb, ttl: ttl, lockTTL: lockTTL}
}

// Begin claims key. On IdemReplay the stored payload is returned.
func (s *IdempotencyStore) Begin(ctx context.Context, key string) (IdemState, string, error) {
	ok, err := s.rdb.SetNX(ctx, key, idemLockValue, s.lockTTL).Result()
	if err != nil {
		return 0, "", err
	}
	if ok {
		return IdemAcquired, "", nil
	}

	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return s.Begin(ctx, key)
	}
	if err != nil {
		return 0, "", err
	}

	if payload, found := strings.CutPrefix(v, idemResPrefix); found {
		return IdemReplay, payload, nil
	}

	return IdemInFlight, "", nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key, jsonPayload string) error {
	return s.rdb.Set(ctx, key, idemResPrefix+jsonPayload, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
