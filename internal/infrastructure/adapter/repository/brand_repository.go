package repository

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// BrandRepository implements BrandRepository interface using GORM
type BrandRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBrandRepository creates a new BrandRepository instance
func NewBrandRepository(db *gorm.DB, logger coreport.Logger) *BrandRepository {
	return &BrandRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func brandToEntity(m *model.Brand) *entity.Brand {
	return &entity.Brand{
		ID:        m.ID,
		Name:      m.Name,
		LogoURL:   m.LogoURL,
		CreatedAt: m.CreatedAt,
	}
}

func (r *BrandRepository) handleDatabaseError(operation string, err error, brandID uint64) error {
	mapped := r.errorClassifier.MapError(err, errs.ErrBrandNotFound)
	if mapped == errs.ErrBrandNotFound {
		r.logger.Warn("Brand not found", map[string]any{"brand_id": brandID})
		return mapped
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"brand_id": brandID,
		"error":    err.Error(),
	})
	return mapped
}

// Create saves a new brand
func (r *BrandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	brandModel := model.Brand{
		Name:      brand.Name,
		LogoURL:   brand.LogoURL,
		CreatedAt: brand.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&brandModel).Error; err != nil {
		return r.handleDatabaseError("creating brand", err, 0)
	}

	brand.ID = brandModel.ID
	r.logger.Info("Brand created successfully", map[string]any{
		"brand_id": brand.ID,
		"name":     brand.Name,
	})
	return nil
}

// GetByID retrieves a brand by ID
func (r *BrandRepository) GetByID(ctx context.Context, id uint64) (*entity.Brand, error) {
	var brandModel model.Brand
	if err := r.db.WithContext(ctx).First(&brandModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting brand", err, id)
	}
	return brandToEntity(&brandModel), nil
}

// List returns a page of brands ordered by ID
func (r *BrandRepository) List(ctx context.Context, offset, limit int) ([]*entity.Brand, error) {
	var brandModels []model.Brand
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&brandModels).Error; err != nil {
		return nil, r.handleDatabaseError("listing brands", err, 0)
	}

	brands := make([]*entity.Brand, 0, len(brandModels))
	for i := range brandModels {
		brands = append(brands, brandToEntity(&brandModels[i]))
	}
	return brands, nil
}
