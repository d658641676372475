package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// ConnectionPoolMetrics tracks database connection pool metrics
type ConnectionPoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxLifetimeClosed  int64
}

// poolGauges mirrors ConnectionPoolMetrics into Prometheus
type poolGauges struct {
	open       prometheus.Gauge
	inUse      prometheus.Gauge
	idle       prometheus.Gauge
	waitCount  prometheus.Gauge
	waitMillis prometheus.Gauge
}

func newPoolGauges(namespace string) *poolGauges {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		})
	}
	return &poolGauges{
		open:       gauge("open_connections", "Open connections to the database."),
		inUse:      gauge("in_use_connections", "Connections currently in use."),
		idle:       gauge("idle_connections", "Idle connections."),
		waitCount:  gauge("wait_count", "Total number of connections waited for."),
		waitMillis: gauge("wait_duration_milliseconds", "Total time blocked waiting for a connection."),
	}
}

func (g *poolGauges) collectors() []prometheus.Collector {
	return []prometheus.Collector{g.open, g.inUse, g.idle, g.waitCount, g.waitMillis}
}

// ConnectionPoolMonitor samples the database connection pool on an interval
type ConnectionPoolMonitor struct {
	db           *gorm.DB
	logger       coreport.Logger
	gauges       *poolGauges
	metricsCache *ConnectionPoolMetrics
	mutex        sync.RWMutex
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// NewConnectionPoolMonitor creates a new connection pool monitor. When
// registerer is non-nil the pool gauges are registered with it.
func NewConnectionPoolMonitor(
	db *gorm.DB,
	logger coreport.Logger,
	registerer prometheus.Registerer,
	namespace string,
) (*ConnectionPoolMonitor, error) {
	m := &ConnectionPoolMonitor{
		db:       db,
		logger:   logger,
		gauges:   newPoolGauges(namespace),
		stopChan: make(chan struct{}),
	}
	if registerer != nil {
		for _, c := range m.gauges.collectors() {
			if err := registerer.Register(c); err != nil {
				return nil, fmt.Errorf("failed to register pool metric: %w", err)
			}
		}
	}
	return m, nil
}

// Start begins monitoring the connection pool
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	if err := m.collectMetrics(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.collectMetrics(); err != nil {
					m.logger.Error("Failed to collect connection pool metrics", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop stops the monitoring. Safe to call more than once.
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// GetMetrics returns the last sampled connection pool metrics
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.metricsCache == nil {
		return ConnectionPoolMetrics{}
	}
	return *m.metricsCache
}

// Ping checks that the database answers within the context deadline
func (m *ConnectionPoolMonitor) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// collectMetrics collects current connection pool metrics
func (m *ConnectionPoolMonitor) collectMetrics() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()

	m.mutex.Lock()
	m.metricsCache = &ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
	m.mutex.Unlock()

	m.gauges.open.Set(float64(stats.OpenConnections))
	m.gauges.inUse.Set(float64(stats.InUse))
	m.gauges.idle.Set(float64(stats.Idle))
	m.gauges.waitCount.Set(float64(stats.WaitCount))
	m.gauges.waitMillis.Set(float64(stats.WaitDuration.Milliseconds()))

	threshold := float64(stats.MaxOpenConnections) * 0.8
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return nil
}
