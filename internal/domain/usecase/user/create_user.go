package user

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
)

// CreateUser registers a user. Username and email must both be unused.
func (u *UserUseCase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) (*entity.User, error) {
	user, err := entity.NewUser(req.Username, req.Email, u.timeProvider)
	if err != nil {
		return nil, err
	}

	taken, err := u.userRepo.UsernameExists(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if !taken {
		taken, err = u.userRepo.EmailExists(ctx, user.Email)
		if err != nil {
			return nil, err
		}
	}
	if taken {
		u.logger.Warn("Username or email already registered", map[string]any{
			"username": user.Username,
		})
		return nil, errs.ErrDuplicateUser
	}

	// The unique indexes still guard against a concurrent registration.
	if err := u.userRepo.Create(ctx, user); err != nil {
		u.logger.Error("Failed to create user", map[string]any{
			"username": user.Username,
			"error":    err.Error(),
		})
		return nil, err
	}

	u.logger.Info("User created", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, nil
}
