package core

import (
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
)

// MockLogger is a mock implementation of core.Logger
type MockLogger struct {
	mock.Mock
}

// NewMockLogger creates a MockLogger that accepts any log call
func NewMockLogger() *MockLogger {
	m := new(MockLogger)
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(method, mock.Anything, mock.Anything).Return().Maybe()
	}
	return m
}

func (m *MockLogger) SetLevel(level core.LogLevel) {
	m.Called(level)
}

func (m *MockLogger) GetLevel() core.LogLevel {
	args := m.Called()
	return args.Get(0).(core.LogLevel)
}

func (m *MockLogger) Debug(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Info(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Warn(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Error(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}
