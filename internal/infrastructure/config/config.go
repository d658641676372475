package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Reward      RewardConfig   `mapstructure:"reward"`
	Render      RenderConfig   `mapstructure:"render"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
	Tracing     TracingConfig  `mapstructure:"tracing"`
	CORS        CORSConfig     `mapstructure:"cors"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"` // file path or :memory: for sqlite
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	SlowQuery       time.Duration `mapstructure:"slowQueryMs"`     // milliseconds
	MonitorInterval time.Duration `mapstructure:"monitorInterval"` // seconds
	ConnectRetries  int           `mapstructure:"connectRetries"`
	MigrateOnStart  bool          `mapstructure:"migrateOnStart"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"` // stdout, stderr or a file path
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// RewardConfig contains code issuance settings
type RewardConfig struct {
	TokenMaxAttempts int `mapstructure:"tokenMaxAttempts"`
}

// RenderConfig contains QR image settings
type RenderConfig struct {
	ScanBaseURL string `mapstructure:"scanBaseURL"`
	DefaultSize int    `mapstructure:"defaultSize"`
	MinSize     int    `mapstructure:"minSize"`
	MaxSize     int    `mapstructure:"maxSize"`
}

// MetricsConfig contains Prometheus settings
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// TracingConfig contains OpenTelemetry settings
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"serviceName"`
	Endpoint    string  `mapstructure:"endpoint"` // host:port of the OTLP/HTTP collector
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sampleRatio"`
}

// CORSConfig contains cross-origin settings
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allowOrigins"`
	AllowCredentials bool     `mapstructure:"allowCredentials"`
}
