package migration

import (
	"context"
	"errors"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	driver       string
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	indexMgr     *IndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, driver string, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		driver:       driver,
		logger:       logger,
		timeProvider: timeProvider,
		indexMgr:     NewIndexManager(db, driver, logger),
	}
}

// MigrateAll brings the schema to CurrentSchemaVersion. Running it on an
// up-to-date database is a no-op.
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
		"driver":         m.driver,
	})

	db := m.db.WithContext(ctx)

	if err := db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	m.logger.Info("Current database version", map[string]any{
		"version": currentVersion,
	})

	// Tables are created in dependency order: scans reference users and codes.
	if err := db.AutoMigrate(
		&model.User{},
		&model.Brand{},
		&model.Code{},
		&model.Scan{},
	); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.runVersionedMigrations(ctx, currentVersion); err != nil {
		m.logger.Error("Failed to run versioned migrations", map[string]any{
			"error":           err.Error(),
			"current_version": currentVersion,
			"target_version":  CurrentSchemaVersion,
		})
		return err
	}

	if err := m.indexMgr.CreateIndexes(ctx); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.indexMgr.ApplyPerformanceTweaks(ctx)

	if err := m.setVersion(ctx, CurrentSchemaVersion, "Reward schema migration"); err != nil {
		m.logger.Error("Failed to update schema version", map[string]any{
			"error":   err.Error(),
			"version": CurrentSchemaVersion,
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion gets the current migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc, id desc").First(&version)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	return version.Version, nil
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	migrationVersion := model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}
	return m.db.WithContext(ctx).Create(&migrationVersion).Error
}

// runVersionedMigrations runs migrations specific to version transitions
func (m *MigrationManager) runVersionedMigrations(ctx context.Context, currentVersion string) error {
	m.logger.Info("Running versioned migrations", map[string]any{
		"from": currentVersion,
		"to":   CurrentSchemaVersion,
	})

	switch currentVersion {
	case "":
		return nil
	case "1.0.0":
		return m.migrateFrom1_0_0To1_1_0(ctx)
	default:
		return nil
	}
}

// migrateFrom1_0_0To1_1_0 backfills the game columns added in 1.1.0.
// Rows written before 1.1.0 carry no game result.
func (m *MigrationManager) migrateFrom1_0_0To1_1_0(ctx context.Context) error {
	m.logger.Info("Migrating from v1.0.0 to v1.1.0", nil)

	return m.db.WithContext(ctx).
		Model(&model.Scan{}).
		Where("game_label IS NULL").
		Update("game_label", "").Error
}
