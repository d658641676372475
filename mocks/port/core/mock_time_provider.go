package core

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
)

// MockTimeProvider is a mock implementation of core.TimeProvider
type MockTimeProvider struct {
	mock.Mock
}

// NewFixedTimeProvider returns a MockTimeProvider frozen at t
func NewFixedTimeProvider(t time.Time) *MockTimeProvider {
	m := new(MockTimeProvider)
	m.On("Now").Return(t).Maybe()
	m.On("Since", mock.Anything).Return(core.Duration(0)).Maybe()
	return m
}

func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockTimeProvider) Since(t time.Time) core.Duration {
	args := m.Called(t)
	return args.Get(0).(core.Duration)
}
