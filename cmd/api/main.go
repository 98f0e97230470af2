package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/stagepass/event-ticketing/internal/api/http"
	"github.com/stagepass/event-ticketing/internal/api/http/handlers"
	"github.com/stagepass/event-ticketing/internal/auth"
	"github.com/stagepass/event-ticketing/internal/cache"
	"github.com/stagepass/event-ticketing/internal/clock"
	"github.com/stagepass/event-ticketing/internal/config"
	"github.com/stagepass/event-ticketing/internal/directory"
	"github.com/stagepass/event-ticketing/internal/domain"
	"github.com/stagepass/event-ticketing/internal/events"
	"github.com/stagepass/event-ticketing/internal/ledger"
	"github.com/stagepass/event-ticketing/internal/observability"
	"github.com/stagepass/event-ticketing/internal/persistence"
	"github.com/stagepass/event-ticketing/internal/repository"
	"github.com/stagepass/event-ticketing/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	admins := make([]domain.Identity, 0, len(cfg.Admin.Identities))
	for _, id := range cfg.Admin.Identities {
		admins = append(admins, domain.Identity(id))
	}
	roleDirectory := directory.New(admins...)

	store := ledger.NewStore(ledger.Dependencies{
		Clock:      clock.NewSystem(),
		Roles:      roleDirectory,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})

	var archive repository.ArchiveRepository
	if pool := pg.PoolHandle(); pool != nil {
		archive = repository.NewArchiveRepository(pool)
		worker.StartArchiveWorker(dispatcher, archive, logger)
	}

	statsCache := cache.NewStatsCache(redis.Client, cfg.Cache.StatsTTL(), logger)
	statsCache.RegisterInvalidation(dispatcher)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	registry := auth.NewAccountRegistry(cfg.Auth.BcryptCost)
	authMiddleware := auth.NewMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(registry, tokenManager),
		Events:         handlers.NewEventsHandler(store, statsCache),
		Tickets:        handlers.NewTicketsHandler(store, archive),
		NFT:            handlers.NewNFTHandler(store),
		Admin:          handlers.NewAdminHandler(roleDirectory),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
