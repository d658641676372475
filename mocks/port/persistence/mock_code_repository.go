package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// MockCodeRepository is a mock implementation of persistence.CodeRepository
type MockCodeRepository struct {
	mock.Mock
}

func (m *MockCodeRepository) Create(ctx context.Context, code *entity.Code) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCodeRepository) GetByID(ctx context.Context, id uint64) (*entity.Code, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Code), args.Error(1)
}

func (m *MockCodeRepository) GetByToken(ctx context.Context, token string) (*entity.Code, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Code), args.Error(1)
}

func (m *MockCodeRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockCodeRepository) ListByBrand(ctx context.Context, brandID uint64) ([]*entity.Code, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Code), args.Error(1)
}
