package core

import (
	"github.com/stretchr/testify/mock"
)

// MockRewardMetrics is a mock implementation of core.RewardMetrics
type MockRewardMetrics struct {
	mock.Mock
}

// NewMockRewardMetrics creates a MockRewardMetrics that accepts any call
func NewMockRewardMetrics() *MockRewardMetrics {
	m := new(MockRewardMetrics)
	m.On("ScanAttempt", mock.Anything).Return().Maybe()
	m.On("GameCompleted", mock.Anything).Return().Maybe()
	m.On("GameRejected", mock.Anything).Return().Maybe()
	return m
}

func (m *MockRewardMetrics) ScanAttempt(outcome string) {
	m.Called(outcome)
}

func (m *MockRewardMetrics) GameCompleted(points int64) {
	m.Called(points)
}

func (m *MockRewardMetrics) GameRejected(errorCode int) {
	m.Called(errorCode)
}
