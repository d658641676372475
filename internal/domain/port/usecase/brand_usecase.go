package usecase

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// Paging defaults for brand listing
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// CreateBrandRequest carries the fields needed to register a brand
type CreateBrandRequest struct {
	Name    string
	LogoURL string
}

// BrandUseCase defines brand administration and reporting operations
type BrandUseCase interface {
	// CreateBrand registers a new brand
	CreateBrand(ctx context.Context, req CreateBrandRequest) (*entity.Brand, error)

	// ListBrands returns brands ordered by ID. A non-positive limit falls
	// back to DefaultListLimit.
	ListBrands(ctx context.Context, skip, limit int) ([]*entity.Brand, error)

	// GetBrand returns a brand by ID
	GetBrand(ctx context.Context, brandID uint64) (*entity.Brand, error)

	// GetBrandStats aggregates the brand's codes and the scans against them
	GetBrandStats(ctx context.Context, brandID uint64) (*entity.BrandStats, error)
}
