package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
)

// Brand is a business that issues scannable codes
type Brand struct {
	ID        uint64    // Unique identifier for the brand
	Name      string    // Display name, never empty
	LogoURL   string    // Optional logo reference
	CreatedAt time.Time // When the brand was registered
}

// NewBrand creates a brand with a trimmed, non-empty name
func NewBrand(name, logoURL string, timeProvider coreport.TimeProvider) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.ErrInvalidBrandName
	}

	return &Brand{
		Name:      name,
		LogoURL:   strings.TrimSpace(logoURL),
		CreatedAt: timeProvider.Now(),
	}, nil
}
