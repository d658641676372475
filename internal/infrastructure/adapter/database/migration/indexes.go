package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager creates indexes that struct tags cannot express
type IndexManager struct {
	db     *gorm.DB
	driver string
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, driver string, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		driver: driver,
		logger: logger,
	}
}

type indexDef struct {
	name     string
	sql      string
	postgres bool // postgres-only syntax
}

var indexDefs = []indexDef{
	{
		// Backs the duplicate-scan guarantee if the tag-driven index was dropped.
		name: "idx_scans_user_code",
		sql:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_scans_user_code ON scans (user_id, code_id)`,
	},
	{
		name: "idx_codes_token",
		sql:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_codes_token ON codes (token)`,
	},
	{
		// Active-code counts per brand for the stats endpoint.
		name: "idx_codes_brand_active",
		sql:  `CREATE INDEX IF NOT EXISTS idx_codes_brand_active ON codes (brand_id) WHERE is_active`,
	},
	{
		name:     "idx_scans_scanned_at_brin",
		sql:      `CREATE INDEX IF NOT EXISTS idx_scans_scanned_at_brin ON scans USING BRIN (scanned_at) WITH (pages_per_range = 32)`,
		postgres: true,
	},
}

// CreateIndexes creates the indexes supported by the current driver
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	m.logger.Info("Creating database indexes", map[string]any{"driver": m.driver})

	for _, idx := range indexDefs {
		if idx.postgres && m.driver != "postgres" {
			continue
		}
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	return nil
}

// ApplyPerformanceTweaks applies PostgreSQL storage settings. Failures are
// logged and ignored.
func (m *IndexManager) ApplyPerformanceTweaks(ctx context.Context) {
	if m.driver != "postgres" {
		return
	}

	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	tweaks := []string{
		// users rows are updated on every game; leave room for HOT updates.
		`ALTER TABLE users SET (fillfactor = 90)`,
		`ALTER TABLE scans ALTER COLUMN user_id SET STATISTICS 1000`,
	}
	for _, stmt := range tweaks {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.logger.Warn("Failed to apply performance tweak", map[string]any{
				"statement": stmt,
				"error":     err.Error(),
			})
		}
	}
}
