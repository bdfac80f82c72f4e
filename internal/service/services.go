package service

import (
	"log/slog"

	"github.com/kirinyoku/tablebook/internal/events"
	"github.com/kirinyoku/tablebook/internal/repository/memory"
	postgres "github.com/kirinyoku/tablebook/internal/repository/postgres"
	redis "github.com/kirinyoku/tablebook/internal/repository/redis"
	"github.com/kirinyoku/tablebook/internal/service/admin"
	"github.com/kirinyoku/tablebook/internal/service/query"
	"github.com/kirinyoku/tablebook/internal/service/reservation"
	"github.com/kirinyoku/tablebook/internal/uow"
)

type Services struct {
	Reservation *reservation.Service
	Query       *query.Service
	Admin       *admin.Service
}

type Config struct {
	Reservation reservation.Config
	Query       query.Config
}

// Backend is the storage the services run on.
type Backend struct {
	Tx    reservation.Transactor
	Repo  func(tx postgres.DB) reservation.Repository
	Query query.Store
	Admin admin.Store
}

func PostgresBackend(store *postgres.Store, maxTxRetries int) Backend {
	return Backend{
		Tx: uow.NewUoW(store, maxTxRetries),
		Repo: func(tx postgres.DB) reservation.Repository {
			return store.Reservations().With(tx)
		},
		Query: store.Query(),
		Admin: store.Admin(),
	}
}

func MemoryBackend(store *memory.Store) Backend {
	return Backend{
		Tx: store,
		Repo: func(postgres.DB) reservation.Repository {
			return store.Reservations()
		},
		Query: store,
		Admin: store,
	}
}

// Redis groups the optional Redis-backed collaborators. Leave it nil to run
// without caching, rate limiting or change notices.
type Redis struct {
	Cache   *redis.Cache
	PubSub  *redis.ReservationsPubSub
	Limiter *redis.SlidingWindowLimiter
}

func NewServices(
	backend Backend,
	rds *Redis,
	publisher events.Publisher,
	logger *slog.Logger,
	cfg Config,
) *Services {
	deps := reservation.Deps{
		Tx:     backend.Tx,
		Repo:   backend.Repo,
		Events: publisher,
		Logger: logger,
	}

	var (
		cache      *redis.Cache
		adminCache admin.Invalidator
	)

	if rds != nil {
		cache = rds.Cache
		if rds.Cache != nil {
			deps.Cache = rds.Cache
			adminCache = rds.Cache
		}
		if rds.PubSub != nil {
			deps.Notifier = rds.PubSub
		}
		if rds.Limiter != nil {
			deps.Limiter = rds.Limiter
		}
	}

	return &Services{
		Reservation: reservation.New(deps, cfg.Reservation),
		Query:       query.New(backend.Query, cache, cfg.Query),
		Admin:       admin.New(backend.Admin, adminCache, logger),
	}
}
