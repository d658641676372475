package persistence

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// Create saves a new user and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateUser: If the username or email is already registered
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// UsernameExists checks whether a username is taken
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists checks whether an email is taken
	EmailExists(ctx context.Context, email string) (bool, error)

	// AddPoints increments the user's total in a single statement and
	// returns the updated user. Must run inside the same transaction as
	// the scan insert it accounts for.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrNegativePoints: If delta is negative
	// - ErrConcurrentUpdate: If the store aborted the write
	// - ErrDatabaseConnection: If database connection fails
	AddPoints(ctx context.Context, userID uint64, delta int64) (*entity.User, error)
}
