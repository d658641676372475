package core

import (
	"github.com/stretchr/testify/mock"
)

// MockRandomSource is a mock implementation of core.RandomSource
type MockRandomSource struct {
	mock.Mock
}

func (m *MockRandomSource) Intn(n int) int {
	args := m.Called(n)
	return args.Int(0)
}

// SequenceRandomSource replays a fixed sequence of values, wrapping around
type SequenceRandomSource struct {
	Values []int
	pos    int
}

func (s *SequenceRandomSource) Intn(n int) int {
	v := s.Values[s.pos%len(s.Values)] % n
	s.pos++
	return v
}
