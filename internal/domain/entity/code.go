package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
)

// DefaultPointsValue is awarded by a code when the brand does not pick a value
const DefaultPointsValue int64 = 10

// Code is a scannable reward code owned by a brand
type Code struct {
	ID          uint64    // Unique identifier for the code
	BrandID     uint64    // Owning brand
	Token       string    // Globally unique token encoded in the QR image
	PointsValue int64     // Base points awarded on game completion
	Description string    // Optional free text shown to the user
	IsActive    bool      // Inactive codes cannot be scanned
	CreatedAt   time.Time // When the code was issued
}

// NewCode creates a code for the given brand. The token must already be unique in the store.
func NewCode(
	brandID uint64,
	token string,
	pointsValue int64,
	description string,
	isActive bool,
	timeProvider coreport.TimeProvider,
) (*Code, error) {
	if brandID == 0 {
		return nil, errs.ErrInvalidID
	}
	if !IsValidToken(token) {
		return nil, errs.ErrInvalidRequest
	}
	if err := ValidatePointsValue(pointsValue); err != nil {
		return nil, err
	}

	return &Code{
		BrandID:     brandID,
		Token:       token,
		PointsValue: pointsValue,
		Description: description,
		IsActive:    isActive,
		CreatedAt:   timeProvider.Now(),
	}, nil
}
