package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/lporras/gedeon/internal/app"
	"github.com/lporras/gedeon/internal/bible"
	"github.com/lporras/gedeon/internal/broadcast"
	"github.com/lporras/gedeon/internal/config"
	"github.com/lporras/gedeon/internal/database"
	"github.com/lporras/gedeon/internal/domain"
	"github.com/lporras/gedeon/internal/logging"
	"github.com/lporras/gedeon/internal/presenter"
	"github.com/lporras/gedeon/internal/redisq"
	"github.com/lporras/gedeon/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redisq.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, hub *broadcast.Hub, forwarder *broadcast.Forwarder) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		forwarder.Stop()
		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	healthChecks := []server.HealthCheck{
		{Name: "database", Check: pool.Ping},
	}

	// With Redis the presentation commands flow through pub/sub, so multiple
	// instances stay in sync. Without it the in-process broker serves a single
	// instance.
	var broker domain.Broker
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient = setupRedis(context.Background(), cfg)
		defer func() { _ = redisClient.Close() }()

		broker = redisq.NewBroker(redisClient)
		healthChecks = append(healthChecks, server.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		slog.Info("Broadcast transport: redis pub/sub")
	} else {
		broker = broadcast.NewBroker()
		slog.Info("Broadcast transport: in-process (single instance)")
	}

	var forwarder *broadcast.Forwarder
	hub := broadcast.NewHub(clock, cfg.MaxClientsPerSchedule,
		func(topic string) { forwarder.TopicActive(topic) },
		func(topic string) { forwarder.TopicEmpty(topic) },
	)
	forwarder = broadcast.NewForwarder(broker, hub)

	scheduleRepo := database.NewScheduleRepo(pool)
	songRepo := database.NewSongRepo(pool)
	scriptureRepo := database.NewScriptureRepo(pool)
	imageRepo := database.NewImageRepo(pool)

	bibles := bible.NewLoader(cfg.BiblesDir)

	appSvc := app.NewService(scheduleRepo, songRepo, scriptureRepo, imageRepo,
		presenter.NewStore(), broker, bibles)

	srv := server.NewServer(cfg, appSvc, hub, healthChecks)

	done := runGracefulShutdown(srv, hub, forwarder)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
