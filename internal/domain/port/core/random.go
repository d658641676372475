package core

// RandomSource supplies uniformly distributed integers for token generation.
// Implementations must be safe for concurrent use.
type RandomSource interface {
	// Intn returns a value in [0, n)
	Intn(n int) int
}
