package database

import (
	"context"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/time"
)

// TestDBManager provides an isolated, migrated in-memory database for tests
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager connects to a fresh in-memory SQLite database, runs
// all migrations and closes it when the test ends
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	timeProvider := timeprovider.NewRealTimeProvider()
	config := &Config{
		Driver:        DriverSQLite,
		Database:      MemoryDatabase,
		MaxOpenConns:  1,
		MaxIdleConns:  1,
		QueryTimeout:  5 * time.Second,
		LogLevel:      "silent",
		RetryAttempts: 1,
	}

	manager := NewManager(config, logger, timeProvider)
	if _, err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := manager.MigrationManager().MigrateAll(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// CreateTestBrand inserts a brand row and returns its ID
func (m *TestDBManager) CreateTestBrand(t *testing.T, name string) uint64 {
	t.Helper()

	brand := model.Brand{Name: name, CreatedAt: m.TimeProvider.Now()}
	if err := m.Manager.DB().Create(&brand).Error; err != nil {
		t.Fatalf("Failed to create test brand: %v", err)
	}
	return brand.ID
}

// CreateTestCode inserts a code row for the brand and returns its ID
func (m *TestDBManager) CreateTestCode(t *testing.T, brandID uint64, token string, points int64, active bool) uint64 {
	t.Helper()

	code := model.Code{
		BrandID:     brandID,
		Token:       token,
		PointsValue: points,
		IsActive:    active,
		CreatedAt:   m.TimeProvider.Now(),
	}
	if err := m.Manager.DB().Omit("Brand").Create(&code).Error; err != nil {
		t.Fatalf("Failed to create test code: %v", err)
	}
	return code.ID
}

// CreateTestUser inserts a user row with a zero total and returns its ID
func (m *TestDBManager) CreateTestUser(t *testing.T, username string) uint64 {
	t.Helper()

	now := m.TimeProvider.Now()
	user := model.User{
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.Manager.DB().Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user.ID
}
