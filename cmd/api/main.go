package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/pontu-app/rewards-service/internal/api/http"
	"github.com/pontu-app/rewards-service/internal/api/http/handlers"
	"github.com/pontu-app/rewards-service/internal/auth"
	"github.com/pontu-app/rewards-service/internal/config"
	"github.com/pontu-app/rewards-service/internal/events"
	"github.com/pontu-app/rewards-service/internal/observability"
	"github.com/pontu-app/rewards-service/internal/persistence"
	"github.com/pontu-app/rewards-service/internal/repository"
	"github.com/pontu-app/rewards-service/internal/service"
	"github.com/pontu-app/rewards-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	tripRepo := repository.NewTripRepository(pool)
	redemptionRepo := repository.NewRedemptionRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	tripService := service.NewTripService(tripRepo, dispatcher)
	rewardsService := service.NewRewardsService(redemptionRepo, dispatcher, cfg.Rewards.CodeLength)
	favoriteService := service.NewFavoriteService(favoriteRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, redis.Client, cfg.Rewards.StatsCacheTTL())
	notificationService := service.NewNotificationService(dispatcher, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Trips:          handlers.NewTripsHandler(tripService),
		Redemptions:    handlers.NewRedemptionsHandler(rewardsService),
		Favorites:      handlers.NewFavoritesHandler(favoriteService),
		Feedback:       handlers.NewFeedbackHandler(feedbackService),
		Routes:         handlers.NewRoutesHandler(),
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
