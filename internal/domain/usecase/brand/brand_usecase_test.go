package brand

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
	mockcore "github.com/amirhossein-jamali/qr-rewards/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/qr-rewards/mocks/port/persistence"
)

func newTestUseCase() (*BrandUseCase, *mockpersistence.MockBrandRepository, *mockpersistence.MockCodeRepository, *mockpersistence.MockScanRepository) {
	brandRepo := new(mockpersistence.MockBrandRepository)
	codeRepo := new(mockpersistence.MockCodeRepository)
	scanRepo := new(mockpersistence.MockScanRepository)
	uc := NewBrandUseCase(
		brandRepo, codeRepo, scanRepo,
		mockcore.NewFixedTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		mockcore.NewMockLogger(),
	)
	return uc, brandRepo, codeRepo, scanRepo
}

func TestBrandUseCase_CreateBrand(t *testing.T) {
	ctx := context.Background()

	t.Run("should create brand with trimmed name", func(t *testing.T) {
		uc, brandRepo, _, _ := newTestUseCase()
		brandRepo.On("Create", ctx, mock.MatchedBy(func(b *entity.Brand) bool {
			return b.Name == "Acme"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Brand).ID = 4
		}).Return(nil)

		brand, err := uc.CreateBrand(ctx, usecase.CreateBrandRequest{Name: " Acme "})

		require.NoError(t, err)
		assert.Equal(t, uint64(4), brand.ID)
		brandRepo.AssertExpectations(t)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		uc, brandRepo, _, _ := newTestUseCase()

		_, err := uc.CreateBrand(ctx, usecase.CreateBrandRequest{Name: ""})

		assert.ErrorIs(t, err, errs.ErrInvalidBrandName)
		brandRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBrandUseCase_ListBrands(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name          string
		skip, limit   int
		expectedSkip  int
		expectedLimit int
	}{
		{"defaults", 0, 0, 0, usecase.DefaultListLimit},
		{"negative skip", -3, 10, 0, 10},
		{"limit capped", 5, 5000, 5, usecase.MaxListLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, brandRepo, _, _ := newTestUseCase()
			brandRepo.On("List", ctx, tc.expectedSkip, tc.expectedLimit).Return([]*entity.Brand{}, nil)

			_, err := uc.ListBrands(ctx, tc.skip, tc.limit)

			require.NoError(t, err)
			brandRepo.AssertExpectations(t)
		})
	}
}

func TestBrandUseCase_GetBrandStats(t *testing.T) {
	ctx := context.Background()
	brand := &entity.Brand{ID: 2, Name: "Acme"}

	t.Run("should aggregate over the brand's codes", func(t *testing.T) {
		uc, brandRepo, codeRepo, scanRepo := newTestUseCase()
		brandRepo.On("GetByID", ctx, uint64(2)).Return(brand, nil)
		codeRepo.On("ListByBrand", ctx, uint64(2)).Return([]*entity.Code{
			{ID: 10, IsActive: true},
			{ID: 11, IsActive: false},
			{ID: 12, IsActive: true},
		}, nil)
		scanRepo.On("Aggregate", ctx, []uint64{10, 11, 12}).Return(entity.ScanAggregate{
			TotalScans:  5,
			UniqueUsers: 3,
			TotalPoints: 72,
		}, nil)

		stats, err := uc.GetBrandStats(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, &entity.BrandStats{
			BrandID:                2,
			BrandName:              "Acme",
			TotalCodes:             3,
			ActiveCodes:            2,
			TotalScans:             5,
			UniqueUsers:            3,
			TotalPointsDistributed: 72,
		}, stats)
	})

	t.Run("should return zeros when the brand has no codes", func(t *testing.T) {
		uc, brandRepo, codeRepo, scanRepo := newTestUseCase()
		brandRepo.On("GetByID", ctx, uint64(2)).Return(brand, nil)
		codeRepo.On("ListByBrand", ctx, uint64(2)).Return([]*entity.Code{}, nil)

		stats, err := uc.GetBrandStats(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.TotalCodes)
		assert.Equal(t, int64(0), stats.TotalScans)
		assert.Equal(t, int64(0), stats.UniqueUsers)
		assert.Equal(t, int64(0), stats.TotalPointsDistributed)
		scanRepo.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything)
	})

	t.Run("should fail for unknown brand", func(t *testing.T) {
		uc, brandRepo, codeRepo, _ := newTestUseCase()
		brandRepo.On("GetByID", ctx, uint64(8)).Return(nil, errs.ErrBrandNotFound)

		_, err := uc.GetBrandStats(ctx, 8)

		assert.ErrorIs(t, err, errs.ErrBrandNotFound)
		codeRepo.AssertNotCalled(t, "ListByBrand", mock.Anything, mock.Anything)
	})
}
