package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) (*entity.User, error) {
	user := &entity.User{
		ID:        userModel.ID,
		Username:  userModel.Username,
		Email:     userModel.Email,
		CreatedAt: userModel.CreatedAt,
	}
	if err := user.SetTotalPoints(userModel.TotalPoints); err != nil {
		r.logger.Error("Stored user has a negative point total", map[string]any{
			"user_id":      userModel.ID,
			"total_points": userModel.TotalPoints,
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	return user, nil
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	mapped := r.errorClassifier.MapError(err, errs.ErrUserNotFound)

	fields := map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	}
	switch mapped {
	case errs.ErrUserNotFound:
		r.logger.Warn("User not found", fields)
	case errs.ErrDuplicateUser:
		r.logger.Warn("Duplicate user operation", fields)
	default:
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), fields)
	}
	return mapped
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	r.logger.Debug("Getting user by ID", map[string]any{
		"user_id": id,
	})

	var userModel model.User
	if err := r.db.WithContext(ctx).First(&userModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, id)
	}

	return r.modelToEntity(&userModel)
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Creating new user", map[string]any{
		"username": user.Username,
	})

	now := r.timeProvider.Now()
	userModel := model.User{
		Username:    user.Username,
		Email:       user.Email,
		TotalPoints: user.TotalPoints(),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   now,
	}
	if userModel.CreatedAt.IsZero() {
		userModel.CreatedAt = now
	}

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return r.handleDatabaseError("creating user", err, 0)
	}

	user.ID = userModel.ID
	user.CreatedAt = userModel.CreatedAt

	r.logger.Info("User created successfully", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

// UsernameExists checks whether a username is taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

// EmailExists checks whether an email is taken
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *UserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, r.handleDatabaseError("checking user existence", err, 0)
	}
	return count > 0, nil
}

// AddPoints increments total_points in a single UPDATE and reloads the row.
// Inside a transaction the update holds the row until commit. An increment
// that would overflow the total fails with ErrPointsOverflow.
func (r *UserRepository) AddPoints(ctx context.Context, userID uint64, delta int64) (*entity.User, error) {
	if delta < 0 {
		return nil, errs.ErrNegativePoints
	}

	r.logger.Debug("Adding points to user", map[string]any{
		"user_id": userID,
		"delta":   delta,
	})

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND total_points <= ?", userID, math.MaxInt64-delta).
		UpdateColumns(map[string]any{
			"total_points": gorm.Expr("total_points + ?", delta),
			"updated_at":   r.timeProvider.Now(),
		})
	if result.Error != nil {
		return nil, r.handleDatabaseError("adding points", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return nil, r.handleDatabaseError("checking user", err, userID)
		}
		if count > 0 {
			r.logger.Warn("Points increment would overflow total", map[string]any{
				"user_id": userID,
				"delta":   delta,
			})
			return nil, errs.ErrPointsOverflow
		}
		r.logger.Warn("User not found", map[string]any{"user_id": userID})
		return nil, errs.ErrUserNotFound
	}

	var userModel model.User
	if err := r.db.WithContext(ctx).First(&userModel, userID).Error; err != nil {
		return nil, r.handleDatabaseError("reloading user", err, userID)
	}

	user, err := r.modelToEntity(&userModel)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Points added", map[string]any{
		"user_id":      userID,
		"delta":        delta,
		"total_points": user.TotalPoints(),
	})
	return user, nil
}
