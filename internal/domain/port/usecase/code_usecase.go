package usecase

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// CreateCodeRequest carries the fields needed to issue a code.
// Nil pointers fall back to the defaults (10 points, active).
type CreateCodeRequest struct {
	BrandID     uint64
	PointsValue *int64
	Description string
	IsActive    *bool
}

// CodeImage is a code together with its rendered PNG
type CodeImage struct {
	Code    *entity.Code
	ScanURL string
	PNG     []byte
}

// CodeUseCase defines code issuance and rendering operations
type CodeUseCase interface {
	// CreateCode issues a code with a freshly generated unique token
	CreateCode(ctx context.Context, req CreateCodeRequest) (*entity.Code, error)

	// CreateCodeWithImage issues a code and renders it. A nil size uses
	// the renderer's default.
	CreateCodeWithImage(ctx context.Context, req CreateCodeRequest, size *int) (*CodeImage, error)

	// RenderCodeImage renders an existing code by token. A nil size uses
	// the renderer's default.
	RenderCodeImage(ctx context.Context, token string, size *int) (*CodeImage, error)

	// ListBrandCodes returns the codes issued by a brand
	ListBrandCodes(ctx context.Context, brandID uint64) ([]*entity.Code, error)
}
