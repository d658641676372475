package usecase

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// CreateUserRequest carries the fields needed to register an end user
type CreateUserRequest struct {
	Username string
	Email    string
}

// UserUseCase defines methods for user-related business operations
type UserUseCase interface {
	// CreateUser registers a user with a zero point total
	CreateUser(ctx context.Context, req CreateUserRequest) (*entity.User, error)

	// GetUser returns a user by ID
	GetUser(ctx context.Context, userID uint64) (*entity.User, error)

	// GetUserHistory returns the user's scans, oldest first, with brand
	// names and the current total
	GetUserHistory(ctx context.Context, userID uint64) (*entity.UserHistory, error)
}
