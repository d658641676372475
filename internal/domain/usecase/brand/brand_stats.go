package brand

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// GetBrandStats aggregates the brand's codes and the scans made against them.
// It never writes.
func (u *BrandUseCase) GetBrandStats(ctx context.Context, brandID uint64) (*entity.BrandStats, error) {
	brand, err := u.GetBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}

	codes, err := u.codeRepo.ListByBrand(ctx, brand.ID)
	if err != nil {
		return nil, err
	}

	stats := &entity.BrandStats{
		BrandID:    brand.ID,
		BrandName:  brand.Name,
		TotalCodes: int64(len(codes)),
	}

	codeIDs := make([]uint64, 0, len(codes))
	for _, code := range codes {
		codeIDs = append(codeIDs, code.ID)
		if code.IsActive {
			stats.ActiveCodes++
		}
	}

	if len(codeIDs) == 0 {
		return stats, nil
	}

	agg, err := u.scanRepo.Aggregate(ctx, codeIDs)
	if err != nil {
		u.logger.Error("Failed to aggregate brand scans", map[string]any{
			"brand_id": brand.ID,
			"error":    err.Error(),
		})
		return nil, err
	}

	stats.TotalScans = agg.TotalScans
	stats.UniqueUsers = agg.UniqueUsers
	stats.TotalPointsDistributed = agg.TotalPoints

	return stats, nil
}
