package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	brandUseCase "github.com/amirhossein-jamali/qr-rewards/internal/domain/usecase/brand"
	codeUseCase "github.com/amirhossein-jamali/qr-rewards/internal/domain/usecase/code"
	userUseCase "github.com/amirhossein-jamali/qr-rewards/internal/domain/usecase/user"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/random"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/render"
	timeProvider "github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/config"
)

func main() {
	seed := flag.Bool("seed", false, "create a demo brand, codes and user after migrating")
	versionOnly := flag.Bool("version", false, "print the current schema version and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := timeProvider.NewRealTimeProvider()
	dbManager := database.NewManager(database.NewConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}

	exitCode := 0
	if err := migrate(ctx, dbManager, cfg, appLogger, *seed, *versionOnly); err != nil {
		appLogger.Error("Migration failed", map[string]any{"error": err.Error()})
		exitCode = 1
	}

	if err := dbManager.Close(); err != nil {
		appLogger.Warn("Failed to close database", map[string]any{"error": err.Error()})
	}
	_ = appLogger.Flush()
	os.Exit(exitCode)
}

func migrate(
	ctx context.Context,
	dbManager *database.Manager,
	cfg *config.Config,
	appLogger coreport.Logger,
	seed, versionOnly bool,
) error {
	migrationMgr := dbManager.MigrationManager()

	if versionOnly {
		version, err := migrationMgr.GetCurrentVersion(ctx)
		if err != nil {
			return err
		}
		log.Printf("schema version: %s (latest %s)", version, migration.CurrentSchemaVersion)
		return nil
	}

	if err := migrationMgr.MigrateAll(ctx); err != nil {
		return err
	}
	if !seed {
		return nil
	}

	tp := timeProvider.NewRealTimeProvider()
	repos := dbManager.Repositories()

	brands := brandUseCase.NewBrandUseCase(repos.Brands, repos.Codes, repos.Scans, tp, appLogger)
	codes := codeUseCase.NewCodeUseCase(
		repos.Brands,
		repos.Codes,
		render.NewQRRenderer(cfg.Render),
		random.NewRandomSource(),
		tp,
		appLogger,
		cfg.Reward.TokenMaxAttempts,
	)
	users := userUseCase.NewUserUseCase(repos.Users, repos.Scans, tp, appLogger)

	return migration.SeedDemoData(ctx, brands, codes, users)
}
