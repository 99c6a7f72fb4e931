package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/subnets-service/internal/config"
	"github.com/maxviazov/subnets-service/internal/handler"
	"github.com/maxviazov/subnets-service/internal/logger"
	"github.com/maxviazov/subnets-service/internal/repository"
	"github.com/maxviazov/subnets-service/internal/repository/memory"
	"github.com/maxviazov/subnets-service/internal/repository/postgres"
	redisstore "github.com/maxviazov/subnets-service/internal/repository/redis"
	"github.com/maxviazov/subnets-service/internal/service"
)

func configPath() string {
	if p := os.Getenv("APP_CONFIG_FILE"); p != "" {
		return p
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

func main() {
	// Load application config
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	appLogger.Info().Msg("✅ Logger initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("👋 Service stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	connectPgx, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	defer connectPgx.Close()
	pool := connectPgx.Pool()

	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, pool, appLogger); err != nil {
			return err
		}
	}

	checks := []handler.HealthCheck{{Name: "postgres", Pinger: postgres.NewPinger(pool)}}
	var links repository.PageLinkStore
	switch cfg.Pagination.LinkStore {
	case config.LinkStoreMemory:
		store, err := memory.NewPageLinkStore()
		if err != nil {
			return err
		}
		go store.RunSweeper(ctx, cfg.Pagination.LinkTTL, func(removed int, err error) {
			if err != nil {
				appLogger.Error().Err(err).Msg("page link sweep failed")
				return
			}
			appLogger.Debug().Int("removed", removed).Msg("page links swept")
		})
		links = store
	default:
		redisPool := redisstore.NewPool(cfg.Redis)
		defer redisPool.Close()
		links = redisstore.NewPageLinkStore(redisPool, cfg.Redis.KeyPrefix)
		checks = append(checks, handler.HealthCheck{Name: "page_links", Pinger: redisstore.NewPinger(redisPool)})
	}
	appLogger.Info().Str("link_store", cfg.Pagination.LinkStore).Dur("link_ttl", cfg.Pagination.LinkTTL).Msg("page link store ready")

	subnetRepo := postgres.NewSubnetRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	src := service.NewSubnetSource(subnetRepo, links, cfg.Pagination.LinkTTL, appLogger)
	subnetSvc, err := service.NewSubnetService(subnetRepo, taskRepo, postgres.NewTxManager(pool), src, cfg.Pagination.Bounds(), appLogger)
	if err != nil {
		return err
	}

	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := handler.NewEngine(handler.Deps{
		Subnets: subnetSvc,
		Tasks:   service.NewTaskService(taskRepo, appLogger),
		Checks:  checks,
		BaseURL: cfg.App.BaseURL,
		Logger:  appLogger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      engine,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg.App.ShutdownTimeout))
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func shutdownTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}
