package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// MockScanRepository is a mock implementation of persistence.ScanRepository
type MockScanRepository struct {
	mock.Mock
}

func (m *MockScanRepository) Create(ctx context.Context, scan *entity.Scan) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanRepository) Exists(ctx context.Context, userID, codeID uint64) (bool, error) {
	args := m.Called(ctx, userID, codeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScanRepository) Aggregate(ctx context.Context, codeIDs []uint64) (entity.ScanAggregate, error) {
	args := m.Called(ctx, codeIDs)
	return args.Get(0).(entity.ScanAggregate), args.Error(1)
}

func (m *MockScanRepository) History(ctx context.Context, userID uint64) ([]entity.ScanHistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ScanHistoryEntry), args.Error(1)
}
