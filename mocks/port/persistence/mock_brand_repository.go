package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// MockBrandRepository is a mock implementation of persistence.BrandRepository
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockBrandRepository) GetByID(ctx context.Context, id uint64) (*entity.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brand), args.Error(1)
}

func (m *MockBrandRepository) List(ctx context.Context, offset, limit int) ([]*entity.Brand, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Brand), args.Error(1)
}
