package reward_test

import (
	"context"
	"sync"
	"testing"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/usecase/reward"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/model"
	mockcore "github.com/amirhossein-jamali/qr-rewards/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	db      *database.TestDBManager
	service *reward.Service
}

func newEngineFixture(t *testing.T) *engineFixture {
	db := database.NewTestDBManager(t, logger.NewNoopLogger())
	repos := db.Manager.Repositories()
	service := reward.NewRewardService(
		db.Manager.CreateUnitOfWork(),
		repos.Users,
		repos.Codes,
		repos.Brands,
		repos.Scans,
		mockcore.NewMockRewardMetrics(),
		db.TimeProvider,
		db.Logger,
	)
	return &engineFixture{db: db, service: service}
}

func (f *engineFixture) storedTotals(t *testing.T, userID uint64) (total int64, scanSum int64) {
	t.Helper()
	var user model.User
	require.NoError(t, f.db.Manager.DB().First(&user, userID).Error)
	require.NoError(t, f.db.Manager.DB().Model(&model.Scan{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points_earned), 0)").
		Scan(&scanSum).Error)
	return user.TotalPoints, scanSum
}

func TestEngine_ScanThenPlayCreditsPoints(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	brandID := f.db.CreateTestBrand(t, "Acme")
	codeID := f.db.CreateTestCode(t, brandID, "ENGINE0001", 20, true)
	userID := f.db.CreateTestUser(t, "alice")

	attempt, err := f.service.RegisterScanAttempt(ctx, userID, "ENGINE0001")
	require.NoError(t, err)
	assert.True(t, attempt.Eligible)
	assert.Equal(t, "Acme", attempt.BrandName)
	assert.Equal(t, int64(20), attempt.PointsAvailable)

	score := int64(50)
	result, err := f.service.CompleteGame(ctx, usecase.CompleteGameRequest{
		UserID:    userID,
		CodeID:    codeID,
		GameLabel: "memory",
		GameScore: &score,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30), result.PointsEarned)
	assert.Equal(t, int64(30), result.TotalPoints)

	again, err := f.service.RegisterScanAttempt(ctx, userID, "ENGINE0001")
	require.NoError(t, err)
	assert.True(t, again.AlreadyScanned)
	assert.False(t, again.Eligible)

	_, err = f.service.CompleteGame(ctx, usecase.CompleteGameRequest{UserID: userID, CodeID: codeID})
	assert.ErrorIs(t, err, errs.ErrDuplicateScan)

	total, scanSum := f.storedTotals(t, userID)
	assert.Equal(t, int64(30), total)
	assert.Equal(t, scanSum, total)
}

func TestEngine_InactiveCodeRejected(t *testing.T) {
	f := newEngineFixture(t)
	brandID := f.db.CreateTestBrand(t, "Acme")
	f.db.CreateTestCode(t, brandID, "INACTIVE99", 20, false)
	userID := f.db.CreateTestUser(t, "bob")

	_, err := f.service.RegisterScanAttempt(context.Background(), userID, "INACTIVE99")
	assert.ErrorIs(t, err, errs.ErrCodeInactive)
	assert.ErrorIs(t, err, errs.ErrCodeNotFound)
}

func TestEngine_ConcurrentCompletionsForSamePairAwardOnce(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	brandID := f.db.CreateTestBrand(t, "Acme")
	codeID := f.db.CreateTestCode(t, brandID, "RACE000001", 10, true)
	userID := f.db.CreateTestUser(t, "carol")

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CompleteGame(ctx, usecase.CompleteGameRequest{UserID: userID, CodeID: codeID})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, duplicates := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, errs.ErrDuplicateScan):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, duplicates)

	total, scanSum := f.storedTotals(t, userID)
	assert.Equal(t, int64(10), total)
	assert.Equal(t, scanSum, total)
}

func TestEngine_ConcurrentCompletionsAcrossCodesSumExactly(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	brandID := f.db.CreateTestBrand(t, "Acme")
	userID := f.db.CreateTestUser(t, "dave")

	tokens := []string{"SUMCODE001", "SUMCODE002", "SUMCODE003", "SUMCODE004", "SUMCODE005"}
	var codeIDs []uint64
	var want int64
	for i, token := range tokens {
		points := int64(5 * (i + 1))
		codeIDs = append(codeIDs, f.db.CreateTestCode(t, brandID, token, points, true))
		want += points
	}

	var wg sync.WaitGroup
	for _, codeID := range codeIDs {
		wg.Add(1)
		go func(codeID uint64) {
			defer wg.Done()
			_, err := f.service.CompleteGame(ctx, usecase.CompleteGameRequest{UserID: userID, CodeID: codeID})
			assert.NoError(t, err)
		}(codeID)
	}
	wg.Wait()

	total, scanSum := f.storedTotals(t, userID)
	assert.Equal(t, want, total)
	assert.Equal(t, scanSum, total)
}
