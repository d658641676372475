package code

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
)

// CreateCodeWithImage issues a code and renders it in one call. The size is
// validated before anything is written.
func (u *CodeUseCase) CreateCodeWithImage(ctx context.Context, req usecase.CreateCodeRequest, requested *int) (*usecase.CodeImage, error) {
	size := u.resolveSize(requested)
	if err := u.renderer.ValidateSize(size); err != nil {
		return nil, err
	}

	code, err := u.CreateCode(ctx, req)
	if err != nil {
		return nil, err
	}

	return u.render(code, size)
}

// RenderCodeImage renders an existing code by token
func (u *CodeUseCase) RenderCodeImage(ctx context.Context, token string, requested *int) (*usecase.CodeImage, error) {
	size := u.resolveSize(requested)
	if err := u.renderer.ValidateSize(size); err != nil {
		return nil, err
	}

	code, err := u.codeRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return u.render(code, size)
}

// resolveSize applies the default only when no size was given; an explicit
// value, zero included, is left for ValidateSize to judge.
func (u *CodeUseCase) resolveSize(requested *int) int {
	if requested == nil {
		return u.renderer.DefaultSize()
	}
	return *requested
}

func (u *CodeUseCase) render(code *entity.Code, size int) (*usecase.CodeImage, error) {
	png, err := u.renderer.RenderPNG(code.Token, size)
	if err != nil {
		u.logger.Error("Failed to render code image", map[string]any{
			"code_id": code.ID,
			"size":    size,
			"error":   err.Error(),
		})
		return nil, err
	}

	return &usecase.CodeImage{
		Code:    code,
		ScanURL: u.renderer.ScanURL(code.Token),
		PNG:     png,
	}, nil
}
