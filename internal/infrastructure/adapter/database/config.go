package database

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	appconfig "github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/config"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MemoryDatabase selects a private in-memory SQLite database
const MemoryDatabase = ":memory:"

// sqlitePragmas are applied to every SQLite connection
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Config represents database configuration
type Config struct {
	Driver          string
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
	SlowThreshold   time.Duration
	MonitorInterval time.Duration
	LogLevel        string
	RetryAttempts   int
}

// NewConfig adapts the application configuration to database configuration
func NewConfig(conf *appconfig.Config) *Config {
	return &Config{
		Driver:          strings.ToLower(conf.Database.Driver),
		Host:            conf.Database.Host,
		Port:            ParsePort(conf.Database.Port),
		Username:        conf.Database.Username,
		Password:        conf.Database.Password,
		Database:        conf.Database.Database,
		SSLMode:         conf.Database.SSLMode,
		MaxOpenConns:    conf.Database.MaxOpenConns,
		MaxIdleConns:    conf.Database.MaxIdleConns,
		ConnMaxLifetime: conf.Database.ConnMaxLifetime,
		ConnMaxIdleTime: conf.Database.ConnMaxIdleTime,
		QueryTimeout:    conf.Database.QueryTimeout,
		SlowThreshold:   conf.Database.SlowQuery,
		MonitorInterval: conf.Database.MonitorInterval,
		LogLevel:        conf.Logger.Level,
		RetryAttempts:   conf.Database.ConnectRetries,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" {
			return errors.New("database host is required")
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("invalid port number: %d", c.Port)
		}
		if c.Username == "" {
			return errors.New("database username is required")
		}
		validSSLModes := map[string]bool{
			"disable":     true,
			"require":     true,
			"verify-ca":   true,
			"verify-full": true,
			"prefer":      true,
		}
		if !validSSLModes[c.SSLMode] {
			return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	if c.Database == "" {
		return errors.New("database name is required")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}
	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		if c.Database == MemoryDatabase {
			// Named shared-cache memory DB so every pooled connection sees the same data.
			return fmt.Sprintf("file:%s?mode=memory&cache=shared&%s", uuid.NewString(), sqlitePragmas)
		}
		return fmt.Sprintf("file:%s?%s", c.Database, sqlitePragmas)
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// Dialector returns the GORM dialector for the configured driver
func (c *Config) Dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverPostgres:
		return postgres.Open(c.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(c.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
}

// ParsePort converts a port string to an int
func ParsePort(port string) int {
	p, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil || p <= 0 || p > 65535 {
		return 0
	}
	return p
}
