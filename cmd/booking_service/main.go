package main

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

	"booking_service/internal/app"
	"booking_service/internal/config"
	"booking_service/internal/facade"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/rabbitmq"
	"booking_service/internal/services/auth"
	"booking_service/internal/services/booking"
	"booking_service/internal/storage/memory"
	"booking_service/internal/storage/postgres"
	"booking_service/internal/storage/redis"
	"booking_service/internal/storage/seed"

	"golang.org/x/crypto/bcrypt"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

// repository is what the service needs from a storage backend: the façade
// writes and reads plus password-carrying user lookups for login.
type repository interface {
	facade.Store
	auth.UserProvider
}

func main() {
	cfg := config.MustLoad("./config/local.yaml")
	log := setupLogger(cfg.Env)

	log.Info("starting booking service", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("booking service stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("booking service gracefully stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	data, err := seed.Load(bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// * Storage
	var repo repository

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		postgresRepo, err := postgres.Connect(initCtx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer postgresRepo.Close()

		if err := postgresRepo.Migrate(initCtx); err != nil {
			return fmt.Errorf("failed to migrate postgres: %w", err)
		}
		if err := postgresRepo.Seed(initCtx, data.Hotels, data.Restaurants, data.Users, data.Reviews); err != nil {
			return fmt.Errorf("failed to seed postgres: %w", err)
		}

		repo = postgresRepo
	case config.StorageMemory:
		memoryRepo := memory.New()
		memoryRepo.Seed(data.Hotels, data.Restaurants, data.Users, data.Reviews)

		repo = memoryRepo
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	// * Cache
	var cache facade.Cache

	switch cfg.Cache.Driver {
	case config.CacheRedis:
		redisCache, err := redis.New(initCtx, cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisCache.Close()

		cache = redisCache
	case config.CacheMemory:
	default:
		return fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}

	// * RabbitMQ
	var notifier booking.Notifier

	if cfg.RabbitMQ.URL != "" {
		rabbitMQClient, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
		if err != nil {
			return fmt.Errorf("failed to init RabbitMQ: %w", err)
		}
		defer rabbitMQClient.Close()

		notifier = rabbitMQClient
	} else {
		log.Info("rabbitmq url is empty, booking events are disabled")
	}

	f := facade.New(log, repo, cache)
	app.Warm(initCtx, log, f)

	authService := auth.New(log, f, repo, cfg.AppSecret, cfg.TokenTTL)
	bookingService := booking.NewBookingService(log, f, notifier)

	srv := &http.Server{
		Addr: cfg.HTTPServer.Address,
		Handler: app.NewRouter(log, app.Deps{
			Facade:    f,
			Auth:      authService,
			Booking:   bookingService,
			AppSecret: cfg.AppSecret,
		}),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("HTTP server starting", slog.String("addr", cfg.HTTPServer.Address))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down HTTP server...")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	return srv.Shutdown(shutdownCtx)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
