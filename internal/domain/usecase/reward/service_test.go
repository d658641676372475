package reward

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
	mockcore "github.com/amirhossein-jamali/qr-rewards/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/qr-rewards/mocks/port/persistence"
)

type txKey struct{}

type rewardFixture struct {
	ctx     context.Context
	txCtx   context.Context
	uow     *mockpersistence.MockUnitOfWork
	users   *mockpersistence.MockUserRepository
	txUsers *mockpersistence.MockUserRepository
	codes   *mockpersistence.MockCodeRepository
	brands  *mockpersistence.MockBrandRepository
	scans   *mockpersistence.MockScanRepository
	txScans *mockpersistence.MockScanRepository
	metrics *mockcore.MockRewardMetrics
	service *Service
}

var fixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newRewardFixture() *rewardFixture {
	f := &rewardFixture{
		ctx:     context.Background(),
		uow:     new(mockpersistence.MockUnitOfWork),
		users:   new(mockpersistence.MockUserRepository),
		txUsers: new(mockpersistence.MockUserRepository),
		codes:   new(mockpersistence.MockCodeRepository),
		brands:  new(mockpersistence.MockBrandRepository),
		scans:   new(mockpersistence.MockScanRepository),
		txScans: new(mockpersistence.MockScanRepository),
		metrics: mockcore.NewMockRewardMetrics(),
	}
	f.txCtx = context.WithValue(f.ctx, txKey{}, "tx")
	f.service = NewRewardService(
		f.uow, f.users, f.codes, f.brands, f.scans,
		f.metrics, mockcore.NewFixedTimeProvider(fixedTime), mockcore.NewMockLogger(),
	)
	return f
}

// expectTransaction wires Begin and the transaction-bound repositories
func (f *rewardFixture) expectTransaction() {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	f.uow.On("GetScanRepository", f.txCtx).Return(f.txScans).Maybe()
	f.uow.On("GetUserRepository", f.txCtx).Return(f.txUsers).Maybe()
}

func newTestUser(id uint64, total int64) *entity.User {
	user := &entity.User{ID: id, Username: "player", Email: "player@example.com"}
	_ = user.SetTotalPoints(total)
	return user
}

func newTestCode(id uint64, points int64, active bool) *entity.Code {
	return &entity.Code{
		ID:          id,
		BrandID:     3,
		Token:       "ABCDEF1234",
		PointsValue: points,
		Description: "Free coffee",
		IsActive:    active,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestService_RegisterScanAttempt(t *testing.T) {
	t.Run("first attempt is eligible and writes nothing", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 0), nil)
		f.codes.On("GetByToken", f.ctx, "ABCDEF1234").Return(newTestCode(7, 10, true), nil)
		f.scans.On("Exists", f.ctx, uint64(1), uint64(7)).Return(false, nil)
		f.brands.On("GetByID", f.ctx, uint64(3)).Return(&entity.Brand{ID: 3, Name: "Acme"}, nil)

		attempt, err := f.service.RegisterScanAttempt(f.ctx, 1, "ABCDEF1234")

		require.NoError(t, err)
		assert.True(t, attempt.Eligible)
		assert.False(t, attempt.AlreadyScanned)
		assert.Equal(t, uint64(7), attempt.CodeID)
		assert.Equal(t, "Acme", attempt.BrandName)
		assert.Equal(t, "Free coffee", attempt.Description)
		assert.Equal(t, int64(10), attempt.PointsAvailable)

		f.scans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.metrics.AssertCalled(t, "ScanAttempt", coreport.OutcomeEligible)
		f.users.AssertExpectations(t)
		f.codes.AssertExpectations(t)
		f.brands.AssertExpectations(t)
	})

	t.Run("repeat attempt reports already scanned", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 10), nil)
		f.codes.On("GetByToken", f.ctx, "ABCDEF1234").Return(newTestCode(7, 10, true), nil)
		f.scans.On("Exists", f.ctx, uint64(1), uint64(7)).Return(true, nil)

		attempt, err := f.service.RegisterScanAttempt(f.ctx, 1, "ABCDEF1234")

		require.NoError(t, err)
		assert.False(t, attempt.Eligible)
		assert.True(t, attempt.AlreadyScanned)
		f.brands.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		f.metrics.AssertCalled(t, "ScanAttempt", coreport.OutcomeAlreadyScanned)
	})

	t.Run("inactive code fails regardless of history", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 0), nil)
		f.codes.On("GetByToken", f.ctx, "ABCDEF1234").Return(newTestCode(7, 10, false), nil)

		attempt, err := f.service.RegisterScanAttempt(f.ctx, 1, "ABCDEF1234")

		assert.Nil(t, attempt)
		assert.ErrorIs(t, err, errs.ErrCodeInactive)
		assert.ErrorIs(t, err, errs.ErrCodeNotFound)
		f.scans.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
		f.metrics.AssertCalled(t, "ScanAttempt", coreport.OutcomeRejected)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(9)).Return(nil, errs.ErrUserNotFound)

		_, err := f.service.RegisterScanAttempt(f.ctx, 9, "ABCDEF1234")

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		f.codes.AssertNotCalled(t, "GetByToken", mock.Anything, mock.Anything)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 0), nil)
		f.codes.On("GetByToken", f.ctx, "ZZZZZZZZZZ").Return(nil, errs.ErrCodeNotFound)

		_, err := f.service.RegisterScanAttempt(f.ctx, 1, "ZZZZZZZZZZ")

		assert.ErrorIs(t, err, errs.ErrCodeNotFound)
		assert.NotErrorIs(t, err, errs.ErrCodeInactive)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		f := newRewardFixture()

		_, err := f.service.RegisterScanAttempt(f.ctx, 0, "ABCDEF1234")
		assert.ErrorIs(t, err, errs.ErrInvalidID)

		_, err = f.service.RegisterScanAttempt(f.ctx, 1, "  ")
		assert.ErrorIs(t, err, errs.ErrCodeNotFound)

		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("store failure during eligibility check", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 0), nil)
		f.codes.On("GetByToken", f.ctx, "ABCDEF1234").Return(newTestCode(7, 10, true), nil)
		f.scans.On("Exists", f.ctx, uint64(1), uint64(7)).Return(false, errs.ErrDatabaseConnection)

		_, err := f.service.RegisterScanAttempt(f.ctx, 1, "ABCDEF1234")

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		var scanErr *errs.ScanError
		assert.True(t, errors.As(err, &scanErr))
	})
}

func TestService_CompleteGame(t *testing.T) {
	t.Run("awards points and commits", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 5), nil)
		f.codes.On("GetByID", f.ctx, uint64(7)).Return(newTestCode(7, 10, true), nil)
		f.expectTransaction()
		f.txScans.On("Exists", f.txCtx, uint64(1), uint64(7)).Return(false, nil)
		f.txScans.On("Create", f.txCtx, mock.MatchedBy(func(s *entity.Scan) bool {
			return s.UserID == 1 && s.CodeID == 7 && s.PointsEarned == 15 &&
				s.GameLabel == "memory" && *s.GameScore == 50 && s.ScannedAt.Equal(fixedTime)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Scan).ID = 99
		}).Return(nil)
		f.txUsers.On("AddPoints", f.txCtx, uint64(1), int64(15)).Return(newTestUser(1, 20), nil)
		f.uow.On("Commit", f.txCtx).Return(nil)

		result, err := f.service.CompleteGame(f.ctx, usecase.CompleteGameRequest{
			UserID:    1,
			CodeID:    7,
			GameLabel: "memory",
			GameScore: int64Ptr(50),
		})

		require.NoError(t, err)
		assert.Equal(t, uint64(99), result.ScanID)
		assert.Equal(t, int64(15), result.PointsEarned)
		assert.Equal(t, int64(20), result.TotalPoints)

		f.uow.AssertNotCalled(t, "Rollback", mock.Anything)
		f.metrics.AssertCalled(t, "GameCompleted", int64(15))
		f.uow.AssertExpectations(t)
		f.txScans.AssertExpectations(t)
		f.txUsers.AssertExpectations(t)
	})

	t.Run("inactive code still completes with base points", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 0), nil)
		f.codes.On("GetByID", f.ctx, uint64(7)).Return(newTestCode(7, 10, false), nil)
		f.expectTransaction()
		f.txScans.On("Exists", f.txCtx, uint64(1), uint64(7)).Return(false, nil)
		f.txScans.On("Create", f.txCtx, mock.AnythingOfType("*entity.Scan")).Return(nil)
		f.txUsers.On("AddPoints", f.txCtx, uint64(1), int64(10)).Return(newTestUser(1, 10), nil)
		f.uow.On("Commit", f.txCtx).Return(nil)

		result, err := f.service.CompleteGame(f.ctx, usecase.CompleteGameRequest{UserID: 1, CodeID: 7})

		require.NoError(t, err)
		assert.Equal(t, int64(10), result.PointsEarned)
	})

	t.Run("existing scan is a conflict and rolls back", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 10), nil)
		f.codes.On("GetByID", f.ctx, uint64(7)).Return(newTestCode(7, 10, true), nil)
		f.expectTransaction()
		f.txScans.On("Exists", f.txCtx, uint64(1), uint64(7)).Return(true, nil)
		f.uow.On("Rollback", f.txCtx).Return(nil)

		result, err := f.service.CompleteGame(f.ctx, usecase.CompleteGameRequest{UserID: 1, CodeID: 7})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrDuplicateScan)
		assert.True(t, errs.IsConflictError(err))
		f.txScans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.uow.AssertCalled(t, "Rollback", f.txCtx)
		f.metrics.AssertCalled(t, "GameRejected", errs.CodeDuplicateScan)
	})

	t.Run("unique index violation on insert is a conflict", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 0), nil)
		f.codes.On("GetByID", f.ctx, uint64(7)).Return(newTestCode(7, 10, true), nil)
		f.expectTransaction()
		f.txScans.On("Exists", f.txCtx, uint64(1), uint64(7)).Return(false, nil)
		f.txScans.On("Create", f.txCtx, mock.Anything).Return(errs.ErrDuplicateScan)
		f.uow.On("Rollback", f.txCtx).Return(nil)

		_, err := f.service.CompleteGame(f.ctx, usecase.CompleteGameRequest{UserID: 1, CodeID: 7})

		var dupErr *errs.DuplicateScanError
		require.True(t, errors.As(err, &dupErr))
		assert.Equal(t, uint64(7), dupErr.CodeID)
		f.txUsers.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)
		f.uow.AssertCalled(t, "Rollback", f.txCtx)
	})

	t.Run("point update failure rolls back the scan", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 0), nil)
		f.codes.On("GetByID", f.ctx, uint64(7)).Return(newTestCode(7, 10, true), nil)
		f.expectTransaction()
		f.txScans.On("Exists", f.txCtx, uint64(1), uint64(7)).Return(false, nil)
		f.txScans.On("Create", f.txCtx, mock.Anything).Return(nil)
		f.txUsers.On("AddPoints", f.txCtx, uint64(1), int64(10)).Return(nil, errs.ErrDatabaseConnection)
		f.uow.On("Rollback", f.txCtx).Return(nil)

		_, err := f.service.CompleteGame(f.ctx, usecase.CompleteGameRequest{UserID: 1, CodeID: 7})

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.uow.AssertCalled(t, "Rollback", f.txCtx)
	})

	t.Run("commit conflict surfaces as conflict", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 0), nil)
		f.codes.On("GetByID", f.ctx, uint64(7)).Return(newTestCode(7, 10, true), nil)
		f.expectTransaction()
		f.txScans.On("Exists", f.txCtx, uint64(1), uint64(7)).Return(false, nil)
		f.txScans.On("Create", f.txCtx, mock.Anything).Return(nil)
		f.txUsers.On("AddPoints", f.txCtx, uint64(1), int64(10)).Return(newTestUser(1, 10), nil)
		f.uow.On("Commit", f.txCtx).Return(errs.ErrConcurrentUpdate)
		f.uow.On("Rollback", f.txCtx).Return(nil)

		_, err := f.service.CompleteGame(f.ctx, usecase.CompleteGameRequest{UserID: 1, CodeID: 7})

		assert.True(t, errs.IsConflictError(err))
	})

	t.Run("negative score is rejected before any lookup", func(t *testing.T) {
		f := newRewardFixture()

		_, err := f.service.CompleteGame(f.ctx, usecase.CompleteGameRequest{
			UserID:    1,
			CodeID:    7,
			GameScore: int64Ptr(-5),
		})

		assert.ErrorIs(t, err, errs.ErrInvalidGameScore)
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("unknown user or code never opens a transaction", func(t *testing.T) {
		f := newRewardFixture()
		f.users.On("GetByID", f.ctx, uint64(9)).Return(nil, errs.ErrUserNotFound)
		f.users.On("GetByID", f.ctx, uint64(1)).Return(newTestUser(1, 0), nil)
		f.codes.On("GetByID", f.ctx, uint64(8)).Return(nil, errs.ErrCodeNotFound)

		_, err := f.service.CompleteGame(f.ctx, usecase.CompleteGameRequest{UserID: 9, CodeID: 7})
		assert.ErrorIs(t, err, errs.ErrUserNotFound)

		_, err = f.service.CompleteGame(f.ctx, usecase.CompleteGameRequest{UserID: 1, CodeID: 8})
		assert.ErrorIs(t, err, errs.ErrCodeNotFound)

		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
