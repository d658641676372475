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

	brandUseCase "github.com/amirhossein-jamali/qr-rewards/internal/domain/usecase/brand"
	codeUseCase "github.com/amirhossein-jamali/qr-rewards/internal/domain/usecase/code"
	rewardUseCase "github.com/amirhossein-jamali/qr-rewards/internal/domain/usecase/reward"
	userUseCase "github.com/amirhossein-jamali/qr-rewards/internal/domain/usecase/user"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/random"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/render"
	timeProvider "github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/tracing"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewZapLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Flush()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service stopped with error", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger coreport.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, cfg.Environment, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			appLogger.Warn("Failed to flush traces", map[string]any{"error": err.Error()})
		}
	}()

	tp := timeProvider.NewRealTimeProvider()

	var registry *metrics.Registry
	var rewardMetrics coreport.RewardMetrics = metrics.NoopRewardMetrics{}
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry(cfg.Metrics.Namespace)
		rewardMetrics = registry
	}

	dbManager := database.NewManager(database.NewConfig(cfg), appLogger, tp)
	if registry != nil {
		dbManager.WithMetrics(registry.Registerer(), registry.Namespace())
	}
	if _, err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer dbManager.Close()

	if cfg.Database.MigrateOnStart {
		if err := dbManager.MigrationManager().MigrateAll(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	repos := dbManager.Repositories()
	renderer := render.NewQRRenderer(cfg.Render)

	brandUseCaseImpl := brandUseCase.NewBrandUseCase(repos.Brands, repos.Codes, repos.Scans, tp, appLogger)
	codeUseCaseImpl := codeUseCase.NewCodeUseCase(
		repos.Brands,
		repos.Codes,
		renderer,
		random.NewRandomSource(),
		tp,
		appLogger,
		cfg.Reward.TokenMaxAttempts,
	)
	userUseCaseImpl := userUseCase.NewUserUseCase(repos.Users, repos.Scans, tp, appLogger)
	rewardService := rewardUseCase.NewRewardService(
		dbManager.CreateUnitOfWork(),
		repos.Users,
		repos.Codes,
		repos.Brands,
		repos.Scans,
		rewardMetrics,
		tp,
		appLogger,
	)

	router := gin.New()

	middlewareOpts := routes.MiddlewareOptions{CORS: cfg.CORS}
	if cfg.Tracing.Enabled {
		middlewareOpts.TracingService = cfg.Tracing.ServiceName
	}
	var metricsHandler http.Handler
	if registry != nil {
		middlewareOpts.RequestObserver = registry
		metricsHandler = registry.Handler()
	}
	routes.SetupMiddlewares(router, appLogger, tp, middlewareOpts)

	routes.SetupRoutes(router, routes.Handlers{
		Health: handler.NewHealthHandler(dbManager, appLogger),
		Brand:  handler.NewBrandHandler(brandUseCaseImpl, codeUseCaseImpl, appLogger),
		Code:   handler.NewCodeHandler(codeUseCaseImpl, appLogger),
		User:   handler.NewUserHandler(userUseCaseImpl, appLogger),
		Reward: handler.NewRewardHandler(rewardService, appLogger),
	}, cfg.Metrics.Path, metricsHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":    server.Addr,
			"env":     cfg.Environment,
			"driver":  dbManager.Driver(),
			"metrics": cfg.Metrics.Enabled,
			"tracing": cfg.Tracing.Enabled,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
	return nil
}
