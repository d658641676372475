package render

import (
	"github.com/stretchr/testify/mock"
)

// MockImageRenderer is a mock implementation of render.ImageRenderer
type MockImageRenderer struct {
	mock.Mock
}

func (m *MockImageRenderer) ScanURL(token string) string {
	args := m.Called(token)
	return args.String(0)
}

func (m *MockImageRenderer) RenderPNG(token string, size int) ([]byte, error) {
	args := m.Called(token, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockImageRenderer) DefaultSize() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockImageRenderer) ValidateSize(size int) error {
	args := m.Called(size)
	return args.Error(0)
}
