package brand

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
)

// BrandUseCase implements brand administration and reporting
type BrandUseCase struct {
	brandRepo    persistence.BrandRepository
	codeRepo     persistence.CodeRepository
	scanRepo     persistence.ScanRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewBrandUseCase creates a new brand use case instance
func NewBrandUseCase(
	brandRepo persistence.BrandRepository,
	codeRepo persistence.CodeRepository,
	scanRepo persistence.ScanRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *BrandUseCase {
	return &BrandUseCase{
		brandRepo:    brandRepo,
		codeRepo:     codeRepo,
		scanRepo:     scanRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.BrandUseCase = (*BrandUseCase)(nil)

// CreateBrand registers a new brand
func (u *BrandUseCase) CreateBrand(ctx context.Context, req usecase.CreateBrandRequest) (*entity.Brand, error) {
	brand, err := entity.NewBrand(req.Name, req.LogoURL, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.brandRepo.Create(ctx, brand); err != nil {
		u.logger.Error("Failed to create brand", map[string]any{
			"name":  brand.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	u.logger.Info("Brand created", map[string]any{
		"brand_id": brand.ID,
		"name":     brand.Name,
	})

	return brand, nil
}

// ListBrands returns a page of brands
func (u *BrandUseCase) ListBrands(ctx context.Context, skip, limit int) ([]*entity.Brand, error) {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit <= 0:
		limit = usecase.DefaultListLimit
	case limit > usecase.MaxListLimit:
		limit = usecase.MaxListLimit
	}

	return u.brandRepo.List(ctx, skip, limit)
}

// GetBrand returns a brand by ID
func (u *BrandUseCase) GetBrand(ctx context.Context, brandID uint64) (*entity.Brand, error) {
	if brandID == 0 {
		return nil, errs.ErrInvalidID
	}
	return u.brandRepo.GetByID(ctx, brandID)
}
