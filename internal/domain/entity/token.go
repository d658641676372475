package entity

import (
	"strings"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
)

// Token format
const (
	TokenLength   = 10
	TokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateToken draws a token uniformly from TokenAlphabet.
// Uniqueness is the caller's concern.
func GenerateToken(random coreport.RandomSource) string {
	var b strings.Builder
	b.Grow(TokenLength)
	for i := 0; i < TokenLength; i++ {
		b.WriteByte(TokenAlphabet[random.Intn(len(TokenAlphabet))])
	}
	return b.String()
}

// IsValidToken reports whether s has the token length and alphabet
func IsValidToken(s string) bool {
	if len(s) != TokenLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
