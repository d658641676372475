package database

import (
	"context"
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/repository"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Manager manages database connections
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	migrationMgr      *migration.MigrationManager
	connectionMonitor *ConnectionPoolMonitor
	timeProvider      coreport.TimeProvider
	registerer        prometheus.Registerer
	metricsNamespace  string
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// WithMetrics registers the pool gauges with registerer on Connect
func (m *Manager) WithMetrics(registerer prometheus.Registerer, namespace string) *Manager {
	m.registerer = registerer
	m.metricsNamespace = namespace
	return m
}

// Connect establishes a database connection, retrying while the server is unreachable
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"port":   m.config.Port,
		"name":   m.config.Database,
	})

	retryCfg := DefaultRetryConfig()
	retryCfg.MaxRetries = m.config.RetryAttempts

	var gormDB *gorm.DB
	err := RetryOnTransientError(ctx, retryCfg, func() error {
		dialector, err := m.config.Dialector()
		if err != nil {
			return err
		}
		gormDB, err = gorm.Open(dialector, &gorm.Config{
			Logger: NewGormDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowThreshold),
			NowFunc: func() time.Time {
				return m.timeProvider.Now()
			},
		})
		return err
	}, repository.NewErrorClassifier(), m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	maxOpen := m.config.MaxOpenConns
	if m.config.Driver == DriverSQLite {
		// SQLite has a single writer; one connection turns lock contention
		// into pool waits. It must never expire: closing the last connection
		// drops an in-memory database.
		maxOpen = 1
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(min(m.config.MaxIdleConns, maxOpen))
		sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)
	}

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":         m.config.Driver,
		"name":           m.config.Database,
		"max_open_conns": maxOpen,
		"query_timeout":  m.config.QueryTimeout.String(),
	})

	m.db = gormDB
	m.migrationMgr = migration.NewMigrationManager(gormDB, m.config.Driver, m.logger, m.timeProvider)

	monitor, err := NewConnectionPoolMonitor(gormDB, m.logger, m.registerer, m.metricsNamespace)
	if err != nil {
		return nil, err
	}
	m.connectionMonitor = monitor
	if m.config.MonitorInterval > 0 {
		if err := m.connectionMonitor.Start(m.config.MonitorInterval); err != nil {
			m.logger.Warn("Failed to start connection pool monitoring", map[string]any{"error": err.Error()})
		}
	}

	return m.db, nil
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Driver returns the configured driver name
func (m *Manager) Driver() string {
	return m.config.Driver
}

// Ping checks database reachability within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.connectionMonitor == nil {
		return fmt.Errorf("database not connected")
	}
	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return m.connectionMonitor.Ping(ctx)
}

// Close closes the database connection
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// WithTimeout returns a context with timeout for database operations
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.config.QueryTimeout)
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.config.Driver, m.logger, m.timeProvider)
}

// MigrationManager returns the migration manager
func (m *Manager) MigrationManager() *migration.MigrationManager {
	return m.migrationMgr
}

// Repositories bundles the non-transactional repositories
type Repositories struct {
	Users  *repository.UserRepository
	Brands *repository.BrandRepository
	Codes  *repository.CodeRepository
	Scans  *repository.ScanRepository
}

// Repositories builds repositories bound to the connection pool
func (m *Manager) Repositories() Repositories {
	return Repositories{
		Users:  repository.NewUserRepository(m.db, m.timeProvider, m.logger),
		Brands: repository.NewBrandRepository(m.db, m.logger),
		Codes:  repository.NewCodeRepository(m.db, m.logger),
		Scans:  repository.NewScanRepository(m.db, m.logger),
	}
}
