package database

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_RollbackDiscardsScanAndPoints(t *testing.T) {
	tdb := NewTestDBManager(t, logger.NewNoopLogger())
	brandID := tdb.CreateTestBrand(t, "Acme")
	codeID := tdb.CreateTestCode(t, brandID, "ROLLBACK01", 10, true)
	userID := tdb.CreateTestUser(t, "alice")

	uow := tdb.Manager.CreateUnitOfWork()
	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)

	scan, err := entity.NewScan(userID, codeID, 10, "", nil, tdb.TimeProvider)
	require.NoError(t, err)
	require.NoError(t, uow.GetScanRepository(txCtx).Create(txCtx, scan))
	_, err = uow.GetUserRepository(txCtx).AddPoints(txCtx, userID, 10)
	require.NoError(t, err)

	require.NoError(t, uow.Rollback(txCtx))

	var scans int64
	require.NoError(t, tdb.Manager.DB().Model(&model.Scan{}).Count(&scans).Error)
	assert.Zero(t, scans)

	var user model.User
	require.NoError(t, tdb.Manager.DB().First(&user, userID).Error)
	assert.Zero(t, user.TotalPoints)
}

func TestUnitOfWork_CommitThenRollbackIsNoop(t *testing.T) {
	tdb := NewTestDBManager(t, logger.NewNoopLogger())
	userID := tdb.CreateTestUser(t, "bob")

	uow := tdb.Manager.CreateUnitOfWork()
	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)

	_, err = uow.GetUserRepository(txCtx).AddPoints(txCtx, userID, 7)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(txCtx))
	assert.NoError(t, uow.Rollback(txCtx))

	var user model.User
	require.NoError(t, tdb.Manager.DB().First(&user, userID).Error)
	assert.Equal(t, int64(7), user.TotalPoints)
}

func TestUnitOfWork_RequiresTransactionInContext(t *testing.T) {
	tdb := NewTestDBManager(t, logger.NewNoopLogger())
	uow := tdb.Manager.CreateUnitOfWork()

	assert.Error(t, uow.Commit(context.Background()))
	assert.Error(t, uow.Rollback(context.Background()))
}

func TestMigrateAll_IsIdempotent(t *testing.T) {
	tdb := NewTestDBManager(t, logger.NewNoopLogger())
	mgr := tdb.Manager.MigrationManager()

	require.NoError(t, mgr.MigrateAll(context.Background()))

	version, err := mgr.GetCurrentVersion(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, version)

	var rows int64
	require.NoError(t, tdb.Manager.DB().Model(&model.MigrationVersion{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestManager_PingAndPoolMetrics(t *testing.T) {
	tdb := NewTestDBManager(t, logger.NewNoopLogger())

	assert.NoError(t, tdb.Manager.Ping(context.Background()))
	require.NoError(t, tdb.Manager.connectionMonitor.collectMetrics())
	assert.Equal(t, 1, tdb.Manager.connectionMonitor.GetMetrics().MaxOpenConnections)
}

func TestConfig_Validate(t *testing.T) {
	valid := &Config{Driver: DriverSQLite, Database: MemoryDatabase, MaxOpenConns: 1, MaxIdleConns: 1, QueryTimeout: 1}
	assert.NoError(t, valid.Validate())

	unknown := *valid
	unknown.Driver = "oracle"
	assert.Error(t, unknown.Validate())

	pg := *valid
	pg.Driver = DriverPostgres
	assert.Error(t, pg.Validate(), "postgres needs a host")

	pg.Host, pg.Port, pg.Username, pg.SSLMode = "localhost", 5432, "rewards", "disable"
	assert.NoError(t, pg.Validate())
	assert.Contains(t, pg.DSN(), "host=localhost port=5432")
}

func TestParsePort(t *testing.T) {
	assert.Equal(t, 5432, ParsePort("5432"))
	assert.Equal(t, 0, ParsePort("not-a-port"))
	assert.Equal(t, 0, ParsePort("70000"))
}
