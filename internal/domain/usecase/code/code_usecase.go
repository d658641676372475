package code

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/render"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
)

// DefaultTokenMaxAttempts bounds token regeneration when none is configured
const DefaultTokenMaxAttempts = 32

// CodeUseCase implements code issuance and rendering
type CodeUseCase struct {
	brandRepo        persistence.BrandRepository
	codeRepo         persistence.CodeRepository
	renderer         render.ImageRenderer
	random           coreport.RandomSource
	timeProvider     coreport.TimeProvider
	logger           coreport.Logger
	tokenMaxAttempts int
}

// NewCodeUseCase creates a new code use case instance
func NewCodeUseCase(
	brandRepo persistence.BrandRepository,
	codeRepo persistence.CodeRepository,
	renderer render.ImageRenderer,
	random coreport.RandomSource,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	tokenMaxAttempts int,
) *CodeUseCase {
	if tokenMaxAttempts <= 0 {
		tokenMaxAttempts = DefaultTokenMaxAttempts
	}
	return &CodeUseCase{
		brandRepo:        brandRepo,
		codeRepo:         codeRepo,
		renderer:         renderer,
		random:           random,
		timeProvider:     timeProvider,
		logger:           logger,
		tokenMaxAttempts: tokenMaxAttempts,
	}
}

var _ usecase.CodeUseCase = (*CodeUseCase)(nil)

// CreateCode issues a code for an existing brand under a fresh token
func (u *CodeUseCase) CreateCode(ctx context.Context, req usecase.CreateCodeRequest) (*entity.Code, error) {
	if req.BrandID == 0 {
		return nil, errs.ErrInvalidID
	}

	points := entity.DefaultPointsValue
	if req.PointsValue != nil {
		points = *req.PointsValue
	}
	if err := entity.ValidatePointsValue(points); err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	if _, err := u.brandRepo.GetByID(ctx, req.BrandID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= u.tokenMaxAttempts; attempt++ {
		token, err := u.nextFreeToken(ctx)
		if err != nil {
			return nil, err
		}
		if token == "" {
			continue
		}

		code, err := entity.NewCode(req.BrandID, token, points, req.Description, active, u.timeProvider)
		if err != nil {
			return nil, err
		}

		err = u.codeRepo.Create(ctx, code)
		if errors.Is(err, errs.ErrDuplicateCodeToken) {
			// Lost a race with a concurrent insert of the same token.
			continue
		}
		if err != nil {
			u.logger.Error("Failed to create code", map[string]any{
				"brand_id": req.BrandID,
				"error":    err.Error(),
			})
			return nil, err
		}

		u.logger.Info("Code created", map[string]any{
			"code_id":  code.ID,
			"brand_id": code.BrandID,
			"points":   code.PointsValue,
			"attempts": attempt,
		})
		return code, nil
	}

	u.logger.Error("Token generation exhausted", map[string]any{
		"brand_id":     req.BrandID,
		"max_attempts": u.tokenMaxAttempts,
	})
	return nil, errs.ErrTokenGenerationFailed
}

// nextFreeToken draws one token and returns it if unused, or "" on collision
func (u *CodeUseCase) nextFreeToken(ctx context.Context) (string, error) {
	token := entity.GenerateToken(u.random)
	exists, err := u.codeRepo.TokenExists(ctx, token)
	if err != nil {
		return "", err
	}
	if exists {
		u.logger.Debug("Generated token collided, drawing again", nil)
		return "", nil
	}
	return token, nil
}

// ListBrandCodes returns the codes issued by a brand
func (u *CodeUseCase) ListBrandCodes(ctx context.Context, brandID uint64) ([]*entity.Code, error) {
	if brandID == 0 {
		return nil, errs.ErrInvalidID
	}
	if _, err := u.brandRepo.GetByID(ctx, brandID); err != nil {
		return nil, err
	}
	return u.codeRepo.ListByBrand(ctx, brandID)
}
