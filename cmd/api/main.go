package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/civic-portal/appeal-service/internal/api/http"
	"github.com/civic-portal/appeal-service/internal/api/http/handlers"
	"github.com/civic-portal/appeal-service/internal/auth"
	"github.com/civic-portal/appeal-service/internal/config"
	"github.com/civic-portal/appeal-service/internal/domain"
	"github.com/civic-portal/appeal-service/internal/events"
	"github.com/civic-portal/appeal-service/internal/observability"
	"github.com/civic-portal/appeal-service/internal/persistence"
	"github.com/civic-portal/appeal-service/internal/repository"
	"github.com/civic-portal/appeal-service/internal/service"
	"github.com/civic-portal/appeal-service/internal/tracknum"
	"github.com/civic-portal/appeal-service/internal/worker"
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

	pool := pg.PoolHandle()
	appealRepo := repository.NewAppealRepository(pool)
	historyRepo := repository.NewAppealHistoryRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	appealService := service.NewAppealService(service.AppealDependencies{
		AppealRepo:      appealRepo,
		HistoryRepo:     historyRepo,
		Tracknums:       tracknum.NewRedisGenerator(redis.Client, nil),
		Dispatcher:      dispatcher,
		DefaultPriority: domain.AppealPriority(cfg.Intake.DefaultPriority),
		AnalyticsTopN:   cfg.Intake.AnalyticsTopN,
		SnapshotLimit:   cfg.Intake.ListSnapshotLimit,
	})
	authService := service.NewAuthService(*cfg, staffRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Appeals:        handlers.NewAppealsHandler(appealService),
		StaffAppeals:   handlers.NewStaffAppealsHandler(appealService),
		Staff:          handlers.NewStaffHandler(authService),
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
