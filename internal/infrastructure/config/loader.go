package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "QR"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = loadDotEnvFile()

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks settings the service cannot start without
func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.Database == "" {
			problems = append(problems, "database.host and database.database are required for postgres")
		}
	case "sqlite":
		if c.Database.Database == "" {
			problems = append(problems, "database.database is required for sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported database.driver %q", c.Database.Driver))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid server.port %d", c.Server.Port))
	}
	if c.Render.MinSize <= 0 || c.Render.MaxSize < c.Render.MinSize {
		problems = append(problems, "render.minSize must be positive and not above render.maxSize")
	}
	if c.Render.DefaultSize < c.Render.MinSize || c.Render.DefaultSize > c.Render.MaxSize {
		problems = append(problems, "render.defaultSize must lie within [render.minSize, render.maxSize]")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		problems = append(problems, "tracing.endpoint is required when tracing is enabled")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			return godotenv.Load(path)
		}
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.slowQueryMs", 200)
	v.SetDefault("database.monitorInterval", 30) // seconds
	v.SetDefault("database.connectRetries", 5)
	v.SetDefault("database.migrateOnStart", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.maxSizeMB", 100)
	v.SetDefault("logger.maxBackups", 5)
	v.SetDefault("logger.maxAgeDays", 14)
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("reward.tokenMaxAttempts", 32)

	v.SetDefault("render.scanBaseURL", "https://yourapp.com/scan/")
	v.SetDefault("render.defaultSize", 300)
	v.SetDefault("render.minSize", 21)
	v.SetDefault("render.maxSize", 2048)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "qr_rewards")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.serviceName", "qr-rewards")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.sampleRatio", 1.0)

	v.SetDefault("cors.allowOrigins", []string{"*"})
	v.SetDefault("cors.allowCredentials", false)
}

// getEnvironment determines the environment to use based on QR_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"DB_DRIVER":     "database.driver",
		"DB_HOST":       "database.host",
		"DB_PORT":       "database.port",
		"DB_USERNAME":   "database.username",
		"DB_PASSWORD":   "database.password",
		"DB_NAME":       "database.database",
		"DB_SSL_MODE":   "database.sslMode",
		"SERVER_HOST":   "server.host",
		"LOGGER_LEVEL":  "logger.level",
		"LOGGER_OUTPUT": "logger.output",
		"SCAN_BASE_URL": "render.scanBaseURL",
		"OTLP_ENDPOINT": "tracing.endpoint",
	}
	for env, key := range stringOverrides {
		if val := os.Getenv(EnvPrefix + "_" + env); val != "" {
			v.Set(key, val)
		}
	}

	intOverrides := map[string]string{
		"SERVER_PORT":                   "server.port",
		"DB_MAX_OPEN_CONNS":             "database.maxOpenConns",
		"DB_MAX_IDLE_CONNS":             "database.maxIdleConns",
		"DB_CONN_MAX_LIFETIME_MINUTES":  "database.connMaxLifetime",
		"DB_CONN_MAX_IDLE_TIME_MINUTES": "database.connMaxIdleTime",
		"DB_QUERY_TIMEOUT_SECONDS":      "database.queryTimeout",
		"DB_CONNECT_RETRIES":            "database.connectRetries",
		"REWARD_TOKEN_MAX_ATTEMPTS":     "reward.tokenMaxAttempts",
	}
	for env, key := range intOverrides {
		if val := getEnvInt(EnvPrefix+"_"+env, 0); val > 0 {
			v.Set(key, val)
		}
	}

	if val := os.Getenv(EnvPrefix + "_TRACING_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			v.Set("tracing.enabled", enabled)
		}
	}
	if val := os.Getenv(EnvPrefix + "_DB_MIGRATE_ON_START"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			v.Set("database.migrateOnStart", enabled)
		}
	}
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute

	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.SlowQuery = time.Duration(config.Database.SlowQuery) * time.Millisecond
	config.Database.MonitorInterval = time.Duration(config.Database.MonitorInterval) * time.Second
}
