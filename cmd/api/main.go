package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/stormkid2009/restooo/internal/api/http"
	"github.com/stormkid2009/restooo/internal/api/http/handlers"
	"github.com/stormkid2009/restooo/internal/auth"
	"github.com/stormkid2009/restooo/internal/config"
	"github.com/stormkid2009/restooo/internal/events"
	"github.com/stormkid2009/restooo/internal/observability"
	"github.com/stormkid2009/restooo/internal/persistence"
	"github.com/stormkid2009/restooo/internal/repository"
	"github.com/stormkid2009/restooo/internal/service"
	"github.com/stormkid2009/restooo/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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
	userRepo := repository.NewUserRepository(pool)
	menuRepo := repository.NewMenuRepository(pool)
	tableRepo := repository.NewTableRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	menuService := service.NewMenuService(menuRepo, redis.Handle(), cfg.Menu.CacheTTL(), dispatcher, logger, metrics)
	reservationService := service.NewReservationService(reservationRepo, tableRepo, dispatcher, metrics)
	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Menu:           handlers.NewMenuHandler(menuService),
		Reservations:   handlers.NewReservationHandler(reservationService),
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
