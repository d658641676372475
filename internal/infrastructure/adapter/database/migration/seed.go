package migration

import (
	"context"
	"errors"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
)

// Demo data created by SeedDemoData
const (
	DemoBrandName = "Demo Coffee"
	DemoUsername  = "demo"
	DemoEmail     = "demo@example.com"
)

var demoCodePoints = []int64{10, 25, 50}

// SeedDemoData creates a demo brand with a few codes and a demo user.
// Brands are only seeded into an empty database; the user is skipped if
// already registered.
func SeedDemoData(
	ctx context.Context,
	brands usecase.BrandUseCase,
	codes usecase.CodeUseCase,
	users usecase.UserUseCase,
) error {
	existing, err := brands.ListBrands(ctx, 0, 1)
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		brand, err := brands.CreateBrand(ctx, usecase.CreateBrandRequest{Name: DemoBrandName})
		if err != nil {
			return err
		}
		for _, points := range demoCodePoints {
			points := points
			if _, err := codes.CreateCode(ctx, usecase.CreateCodeRequest{
				BrandID:     brand.ID,
				PointsValue: &points,
				Description: "Demo code",
			}); err != nil {
				return err
			}
		}
	}

	_, err = users.CreateUser(ctx, usecase.CreateUserRequest{Username: DemoUsername, Email: DemoEmail})
	if err != nil && !errors.Is(err, errs.ErrDuplicateUser) {
		return err
	}
	return nil
}
