package persistence

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// BrandRepository defines methods to interact with brand data
type BrandRepository interface {
	// Create saves a new brand and assigns its ID
	Create(ctx context.Context, brand *entity.Brand) error

	// GetByID retrieves a brand by ID
	//
	// Possible errors:
	// - ErrBrandNotFound: If brand with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Brand, error)

	// List returns brands ordered by ID
	List(ctx context.Context, offset, limit int) ([]*entity.Brand, error)
}
