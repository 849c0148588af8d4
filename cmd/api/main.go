package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/room-booking-service/internal/api/http"
	"github.com/spec-kit/room-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/room-booking-service/internal/auth"
	"github.com/spec-kit/room-booking-service/internal/config"
	"github.com/spec-kit/room-booking-service/internal/events"
	"github.com/spec-kit/room-booking-service/internal/observability"
	"github.com/spec-kit/room-booking-service/internal/persistence"
	"github.com/spec-kit/room-booking-service/internal/repository"
	"github.com/spec-kit/room-booking-service/internal/service"
	"github.com/spec-kit/room-booking-service/internal/worker"
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
	roomRepo := repository.NewRoomRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	otpService := service.NewOTPService(redis.Client, logger, *cfg)
	userService := service.NewUserService(userRepo)
	roomService := service.NewRoomService(roomRepo)
	reservationService := service.NewReservationService(service.ReservationDependencies{
		ReservationRepo: reservationRepo,
		RoomRepo:        roomRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
		Now:             time.Now,
	})
	feedbackService := service.NewFeedbackService(feedbackRepo, reservationRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	sweeper := worker.NewSweeper(reservationService, metrics, logger, cfg.Sweep)
	if err := sweeper.Start(ctx); err != nil {
		logger.Fatal("failed to start sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, otpService),
		Rooms:          handlers.NewRoomsHandler(roomService, reservationService),
		Users:          handlers.NewUsersHandler(userService, reservationService),
		Feedbacks:      handlers.NewFeedbacksHandler(feedbackService),
		Admin:          handlers.NewAdminHandler(userService, roomService, reservationService, feedbackService),
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
