package reward

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
)

// Service is the scan and reward engine
type Service struct {
	uow          persistence.UnitOfWork
	userRepo     persistence.UserRepository
	codeRepo     persistence.CodeRepository
	brandRepo    persistence.BrandRepository
	scanRepo     persistence.ScanRepository
	validator    *GameValidator
	eligibility  *EligibilityChecker
	metrics      coreport.RewardMetrics
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewRewardService creates a new reward service
func NewRewardService(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	codeRepo persistence.CodeRepository,
	brandRepo persistence.BrandRepository,
	scanRepo persistence.ScanRepository,
	metrics coreport.RewardMetrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		userRepo:     userRepo,
		codeRepo:     codeRepo,
		brandRepo:    brandRepo,
		scanRepo:     scanRepo,
		validator:    NewGameValidator(),
		eligibility:  NewEligibilityChecker(),
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.RewardUseCase = (*Service)(nil)

// RegisterScanAttempt resolves the code behind token and reports whether the
// user may play for it. A repeat attempt is reported, not rejected.
func (s *Service) RegisterScanAttempt(ctx context.Context, userID uint64, token string) (*entity.ScanAttempt, error) {
	attempt, err := s.registerScanAttempt(ctx, userID, token)
	if err != nil {
		s.metrics.ScanAttempt(coreport.OutcomeRejected)
		s.logger.Warn("Scan attempt rejected", withErrorFields(err, map[string]any{
			"user_id": userID,
			"token":   token,
		}))
		return nil, err
	}

	outcome := coreport.OutcomeEligible
	if attempt.AlreadyScanned {
		outcome = coreport.OutcomeAlreadyScanned
	}
	s.metrics.ScanAttempt(outcome)
	s.logger.Info("Scan attempt registered", map[string]any{
		"user_id": userID,
		"code_id": attempt.CodeID,
		"outcome": outcome,
	})

	return attempt, nil
}

func (s *Service) registerScanAttempt(ctx context.Context, userID uint64, token string) (*entity.ScanAttempt, error) {
	if err := s.validator.ValidateScan(userID, token); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	code, err := s.codeRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !code.IsActive {
		return nil, errs.NewCodeInactiveError(code.ID, code.Token)
	}

	scanned, err := s.eligibility.AlreadyScanned(ctx, s.scanRepo, userID, code.ID)
	if err != nil {
		return nil, errs.NewScanError(userID, code.ID, token, "eligibility check failed", err)
	}
	if scanned {
		return &entity.ScanAttempt{
			Eligible:       false,
			AlreadyScanned: true,
			CodeID:         code.ID,
		}, nil
	}

	brand, err := s.brandRepo.GetByID(ctx, code.BrandID)
	if err != nil {
		return nil, errs.NewScanError(userID, code.ID, token, "brand lookup failed", err)
	}

	return &entity.ScanAttempt{
		Eligible:        true,
		CodeID:          code.ID,
		BrandName:       brand.Name,
		Description:     code.Description,
		PointsAvailable: code.PointsValue,
	}, nil
}

// CompleteGame records the scan for a played game and credits the awarded
// points. The scan insert and the point update commit together or not at all.
func (s *Service) CompleteGame(ctx context.Context, req usecase.CompleteGameRequest) (*entity.GameResult, error) {
	start := s.timeProvider.Now()

	result, err := s.completeGame(ctx, req)
	if err != nil {
		s.metrics.GameRejected(errs.ErrorCode(err))
		s.logger.Warn("Game completion rejected", withErrorFields(err, map[string]any{
			"user_id":     req.UserID,
			"code_id":     req.CodeID,
			"duration_ms": s.timeProvider.Since(start).Milliseconds(),
		}))
		return nil, err
	}

	s.metrics.GameCompleted(result.PointsEarned)
	s.logger.Info("Game completed", map[string]any{
		"user_id":      result.UserID,
		"code_id":      result.CodeID,
		"scan_id":      result.ScanID,
		"points":       result.PointsEarned,
		"total_points": result.TotalPoints,
		"duration_ms":  s.timeProvider.Since(start).Milliseconds(),
	})

	return result, nil
}

func (s *Service) completeGame(ctx context.Context, req usecase.CompleteGameRequest) (*entity.GameResult, error) {
	if err := s.validator.ValidateGame(req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	// Only existence matters here; the active flag gates scan attempts.
	code, err := s.codeRepo.GetByID(ctx, req.CodeID)
	if err != nil {
		return nil, err
	}

	awarded, err := entity.ComputeAwardedPoints(code.PointsValue, req.GameScore)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back game transaction", map[string]any{
				"user_id": req.UserID,
				"code_id": req.CodeID,
				"error":   rbErr.Error(),
			})
		}
	}()

	scanRepo := s.uow.GetScanRepository(txCtx)

	scanned, err := s.eligibility.AlreadyScanned(txCtx, scanRepo, req.UserID, code.ID)
	if err != nil {
		return nil, err
	}
	if scanned {
		return nil, errs.NewDuplicateScanError(req.UserID, code.ID)
	}

	scan, err := entity.NewScan(req.UserID, code.ID, awarded, req.GameLabel, req.GameScore, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := scanRepo.Create(txCtx, scan); err != nil {
		if errors.Is(err, errs.ErrDuplicateScan) {
			return nil, errs.NewDuplicateScanError(req.UserID, code.ID)
		}
		return nil, errs.NewScanError(req.UserID, code.ID, code.Token, "scan insert failed", err)
	}

	user, err := s.uow.GetUserRepository(txCtx).AddPoints(txCtx, req.UserID, awarded)
	if err != nil {
		return nil, errs.NewScanError(req.UserID, code.ID, code.Token, "point update failed", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		if errors.Is(err, errs.ErrDuplicateScan) {
			return nil, errs.NewDuplicateScanError(req.UserID, code.ID)
		}
		return nil, fmt.Errorf("failed to commit game transaction: %w", err)
	}
	committed = true

	return &entity.GameResult{
		ScanID:       scan.ID,
		UserID:       req.UserID,
		CodeID:       code.ID,
		PointsEarned: awarded,
		TotalPoints:  user.TotalPoints(),
	}, nil
}

// withErrorFields merges the error's structured fields into base
func withErrorFields(err error, base map[string]any) map[string]any {
	base["error"] = err.Error()
	base["error_code"] = errs.ErrorCode(err)

	var detailed interface{ LogFields() map[string]any }
	if errors.As(err, &detailed) {
		for k, v := range detailed.LogFields() {
			if _, exists := base[k]; !exists {
				base[k] = v
			}
		}
	}
	return base
}
