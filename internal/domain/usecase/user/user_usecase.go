package user

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
)

// UserUseCase implements the user business logic
type UserUseCase struct {
	userRepo     persistence.UserRepository
	scanRepo     persistence.ScanRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserUseCase creates a new user use case instance
func NewUserUseCase(
	userRepo persistence.UserRepository,
	scanRepo persistence.ScanRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		scanRepo:     scanRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.UserUseCase = (*UserUseCase)(nil)

// GetUser returns a user by ID
func (u *UserUseCase) GetUser(ctx context.Context, userID uint64) (*entity.User, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidID
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, errs.ErrUserNotFound) {
			u.logger.Error("Failed to get user", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return nil, err
	}
	return user, nil
}

// GetUserHistory returns the user's scans, oldest first, with the current total
func (u *UserUseCase) GetUserHistory(ctx context.Context, userID uint64) (*entity.UserHistory, error) {
	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	scans, err := u.scanRepo.History(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &entity.UserHistory{
		UserID:      user.ID,
		Username:    user.Username,
		TotalPoints: user.TotalPoints(),
		Scans:       scans,
	}, nil
}
