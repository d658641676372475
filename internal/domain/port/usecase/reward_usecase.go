package usecase

import (
	"context"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// CompleteGameRequest carries a finished game for a (user, code) pair
type CompleteGameRequest struct {
	UserID    uint64
	CodeID    uint64
	GameLabel string
	GameScore *int64
}

// RewardUseCase defines the scan and reward engine
type RewardUseCase interface {
	// RegisterScanAttempt checks whether the user may play for the code
	// identified by token. It never writes.
	RegisterScanAttempt(ctx context.Context, userID uint64, token string) (*entity.ScanAttempt, error)

	// CompleteGame records the scan and credits the awarded points in one
	// transaction
	CompleteGame(ctx context.Context, req CompleteGameRequest) (*entity.GameResult, error)
}
