package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/persistence"
)

// MockUnitOfWork is a mock implementation of persistence.UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.UserRepository)
}

func (m *MockUnitOfWork) GetScanRepository(ctx context.Context) persistence.ScanRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.ScanRepository)
}
