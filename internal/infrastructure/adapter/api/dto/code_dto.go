package dto

import (
	"encoding/base64"
	"time"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// CreateCodeRequest represents the API request for issuing a code.
// Omitted pointsValue and isActive fall back to 10 and true.
type CreateCodeRequest struct {
	BrandID     uint64 `json:"brandId" binding:"required"`
	PointsValue *int64 `json:"pointsValue"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// CodeResponse represents a code in API responses
type CodeResponse struct {
	ID          uint64    `json:"id"`
	BrandID     uint64    `json:"brandId"`
	Token       string    `json:"token"`
	PointsValue int64     `json:"pointsValue"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CodeWithImageResponse is a freshly issued code with its rendered QR image
type CodeWithImageResponse struct {
	CodeResponse
	ScanURL       string `json:"scanUrl"`
	QRImageBase64 string `json:"qrImageBase64"`
}

// NewCodeResponse maps a code entity to its API representation
func NewCodeResponse(c *entity.Code) CodeResponse {
	return CodeResponse{
		ID:          c.ID,
		BrandID:     c.BrandID,
		Token:       c.Token,
		PointsValue: c.PointsValue,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// PNGDataURL embeds PNG bytes as a base64 data URL
func PNGDataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
