package dto

import (
	"time"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// CreateBrandRequest represents the API request for registering a brand
type CreateBrandRequest struct {
	Name    string `json:"name" binding:"required"`
	LogoURL string `json:"logoUrl"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BrandStatsResponse represents the aggregated activity of a brand
type BrandStatsResponse struct {
	BrandID                uint64 `json:"brandId"`
	BrandName              string `json:"brandName"`
	TotalCodes             int64  `json:"totalCodes"`
	ActiveCodes            int64  `json:"activeCodes"`
	TotalScans             int64  `json:"totalScans"`
	UniqueUsers            int64  `json:"uniqueUsers"`
	TotalPointsDistributed int64  `json:"totalPointsDistributed"`
}

// NewBrandResponse maps a brand entity to its API representation
func NewBrandResponse(b *entity.Brand) BrandResponse {
	return BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		LogoURL:   b.LogoURL,
		CreatedAt: b.CreatedAt,
	}
}

// NewBrandStatsResponse maps brand stats to their API representation
func NewBrandStatsResponse(s *entity.BrandStats) BrandStatsResponse {
	return BrandStatsResponse{
		BrandID:                s.BrandID,
		BrandName:              s.BrandName,
		TotalCodes:             s.TotalCodes,
		ActiveCodes:            s.ActiveCodes,
		TotalScans:             s.TotalScans,
		UniqueUsers:            s.UniqueUsers,
		TotalPointsDistributed: s.TotalPointsDistributed,
	}
}
