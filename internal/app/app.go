package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirinyoku/tablebook/internal/config"
	"github.com/kirinyoku/tablebook/internal/events"
	"github.com/kirinyoku/tablebook/internal/postgres"
	"github.com/kirinyoku/tablebook/internal/redis"
	"github.com/kirinyoku/tablebook/internal/repository/memory"
	postgresrepo "github.com/kirinyoku/tablebook/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/tablebook/internal/repository/redis"
	"github.com/kirinyoku/tablebook/internal/service"
	"github.com/kirinyoku/tablebook/internal/service/query"
	"github.com/kirinyoku/tablebook/internal/service/reservation"
	httpgin "github.com/kirinyoku/tablebook/internal/transport/http/gin"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	closers    []func() error
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx := context.Background()
	a := &App{cfg: cfg, logger: logger}

	// Storage
	var backend service.Backend

	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("using in-memory storage, data is lost on restart")
		backend = service.MemoryBackend(memory.NewStore())
	default:
		pgxPool, err := postgres.New(ctx, postgres.Config{
			DSN:      cfg.Postgres.DSN(),
			MaxConns: int32(cfg.Postgres.MaxConns),
			Migrate:  cfg.Postgres.Migrate,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		a.closers = append(a.closers, func() error { pgxPool.Close(); return nil })

		backend = service.PostgresBackend(postgresrepo.NewStore(pgxPool), cfg.Booking.MaxTxRetries)
	}

	// Redis
	var (
		rds     *service.Redis
		idem    *redisrepo.IdempotencyStore
		notices *redisrepo.ReservationsPubSub
	)

	if cfg.Redis.Enabled {
		rdb, err := redis.New(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)

		notices = redisrepo.NewReservationsPubSub(rdb)
		idem = redisrepo.NewIdempotencyStore(rdb, cfg.Limits.IdempotencyTTL, 30*time.Second)
		rds = &service.Redis{
			Cache:   redisrepo.New(rdb),
			PubSub:  notices,
			Limiter: redisrepo.NewSlidingWindowLimiter(rdb, "reservations", cfg.Limits.RateLimit, cfg.Limits.RateWindow),
		}
	}

	// Events
	publisher, err := newPublisher(cfg.Events)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize events publisher: %w", err)
	}
	a.closers = append(a.closers, publisher.Close)

	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("invalid booking timezone: %w", err)
	}

	// Services
	services := service.NewServices(backend, rds, publisher, logger, service.Config{
		Reservation: reservation.Config{
			Policy: reservation.Policy{
				PhoneDigits:  cfg.Booking.PhoneDigits,
				MaxPeople:    cfg.Booking.MaxPeople,
				AllowSameDay: cfg.Booking.AllowSameDay,
				Location:     loc,
			},
		},
		Query: query.Config{
			TablesTTL:       cfg.Limits.TablesTTL,
			AvailabilityTTL: cfg.Limits.AvailabilityTTL,
		},
	})

	router := httpgin.NewRouter(services, idem, notices, httpgin.BearerAuth(cfg.Auth.JWTSecret), logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

func newPublisher(cfg config.EventsConfig) (events.Publisher, error) {
	switch cfg.Broker {
	case "rabbitmq":
		return events.NewRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	case "kafka":
		return events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	default:
		return events.Nop{}, nil
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening",
			"host", a.cfg.Server.Host,
			"port", a.cfg.Server.Port,
			"storage", a.cfg.Storage.Driver,
			"events", a.cfg.Events.Broker,
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

// close releases resources in reverse order of acquisition.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}
