package persistence

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// CodeRepository defines methods to interact with code data
type CodeRepository interface {
	// Create saves a new code and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateCodeToken: If the token is already used (unique index)
	// - ErrBrandNotFound: If the owning brand doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, code *entity.Code) error

	// GetByID retrieves a code by ID regardless of its active flag
	//
	// Possible errors:
	// - ErrCodeNotFound: If no code has the given ID
	GetByID(ctx context.Context, id uint64) (*entity.Code, error)

	// GetByToken retrieves a code by token regardless of its active flag
	//
	// Possible errors:
	// - ErrCodeNotFound: If no code has the given token
	GetByToken(ctx context.Context, token string) (*entity.Code, error)

	// TokenExists checks whether a token is already in use
	TokenExists(ctx context.Context, token string) (bool, error)

	// ListByBrand returns all codes of a brand ordered by ID
	ListByBrand(ctx context.Context, brandID uint64) ([]*entity.Code, error)
}
