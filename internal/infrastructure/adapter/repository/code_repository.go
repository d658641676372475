package repository

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CodeRepository implements CodeRepository interface using GORM
type CodeRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCodeRepository creates a new CodeRepository instance
func NewCodeRepository(db *gorm.DB, logger coreport.Logger) *CodeRepository {
	return &CodeRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func codeToEntity(m *model.Code) *entity.Code {
	return &entity.Code{
		ID:          m.ID,
		BrandID:     m.BrandID,
		Token:       m.Token,
		PointsValue: m.PointsValue,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *CodeRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if r.errorClassifier.IsForeignKeyError(err) && !r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Code references a missing brand", fields)
		return errs.ErrBrandNotFound
	}

	mapped := r.errorClassifier.MapError(err, errs.ErrCodeNotFound)
	switch mapped {
	case errs.ErrCodeNotFound:
		r.logger.Debug("Code not found", fields)
	case errs.ErrDuplicateCodeToken:
		r.logger.Warn("Code token collision", fields)
	default:
		fields["error"] = err.Error()
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), fields)
	}
	return mapped
}

// Create saves a new code. A token collision yields ErrDuplicateCodeToken.
func (r *CodeRepository) Create(ctx context.Context, code *entity.Code) error {
	codeModel := model.Code{
		BrandID:     code.BrandID,
		Token:       code.Token,
		PointsValue: code.PointsValue,
		Description: code.Description,
		IsActive:    code.IsActive,
		CreatedAt:   code.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&codeModel).Error; err != nil {
		return r.handleDatabaseError("creating code", err, map[string]any{
			"brand_id": code.BrandID,
			"token":    code.Token,
		})
	}

	code.ID = codeModel.ID
	r.logger.Info("Code created successfully", map[string]any{
		"code_id":  code.ID,
		"brand_id": code.BrandID,
		"token":    code.Token,
	})
	return nil
}

// GetByID retrieves a code by ID
func (r *CodeRepository) GetByID(ctx context.Context, id uint64) (*entity.Code, error) {
	var codeModel model.Code
	if err := r.db.WithContext(ctx).First(&codeModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting code", err, map[string]any{"code_id": id})
	}
	return codeToEntity(&codeModel), nil
}

// GetByToken retrieves a code by its token
func (r *CodeRepository) GetByToken(ctx context.Context, token string) (*entity.Code, error) {
	var codeModel model.Code
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&codeModel).Error; err != nil {
		return nil, r.handleDatabaseError("getting code by token", err, map[string]any{"token": token})
	}
	return codeToEntity(&codeModel), nil
}

// TokenExists checks whether a token is already in use
func (r *CodeRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Code{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, r.handleDatabaseError("checking token", err, map[string]any{"token": token})
	}
	return count > 0, nil
}

// ListByBrand returns all codes of a brand ordered by ID
func (r *CodeRepository) ListByBrand(ctx context.Context, brandID uint64) ([]*entity.Code, error) {
	var codeModels []model.Code
	if err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("id ASC").
		Find(&codeModels).Error; err != nil {
		return nil, r.handleDatabaseError("listing codes", err, map[string]any{"brand_id": brandID})
	}

	codes := make([]*entity.Code, 0, len(codeModels))
	for i := range codeModels {
		codes = append(codes, codeToEntity(&codeModels[i]))
	}
	return codes, nil
}
