package reward

import (
	"fmt"
	"strings"
	"unicode/utf8"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/usecase"
)

// MaxGameLabelLength bounds the stored game label
const MaxGameLabelLength = 100

// GameValidator provides validation for scan and game requests
type GameValidator struct{}

// NewGameValidator creates a new GameValidator
func NewGameValidator() *GameValidator {
	return &GameValidator{}
}

// ValidateScan validates the inputs of a scan attempt
func (v *GameValidator) ValidateScan(userID uint64, token string) error {
	if userID == 0 {
		return errs.ErrInvalidID
	}
	// An empty token can never resolve to a code.
	if strings.TrimSpace(token) == "" {
		return errs.ErrCodeNotFound
	}
	return nil
}

// ValidateGame validates a game completion request
func (v *GameValidator) ValidateGame(req usecase.CompleteGameRequest) error {
	if req.UserID == 0 || req.CodeID == 0 {
		return errs.ErrInvalidID
	}

	if err := v.validateLabel(req.GameLabel); err != nil {
		return err
	}

	if req.GameScore != nil && *req.GameScore < 0 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidGameScore, *req.GameScore)
	}

	return nil
}

// validateLabel checks the optional game label length
func (v *GameValidator) validateLabel(label string) error {
	if utf8.RuneCountInString(label) > MaxGameLabelLength {
		return fmt.Errorf("%w: game label longer than %d characters", errs.ErrInvalidRequest, MaxGameLabelLength)
	}
	return nil
}
