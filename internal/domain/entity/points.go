package entity

import (
	"math"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
)

// MaxScoreBonusPercent caps the game bonus: a score of 100 or more doubles the base
const MaxScoreBonusPercent int64 = 100

// MaxPointsValue is the largest base a code may carry. base*(100+score)
// stays within int64 for every score below the bonus cap.
const MaxPointsValue int64 = math.MaxInt64 / 200

// ValidatePointsValue checks a code's base points against [0, MaxPointsValue]
func ValidatePointsValue(points int64) error {
	if points < 0 || points > MaxPointsValue {
		return errs.ErrInvalidPointsValue
	}
	return nil
}

// ComputeAwardedPoints returns floor(min(base*(1+score/100), base*2)).
// A nil or zero score awards the base value. Negative scores are rejected.
func ComputeAwardedPoints(base int64, gameScore *int64) (int64, error) {
	if err := ValidatePointsValue(base); err != nil {
		return 0, err
	}
	if gameScore == nil || *gameScore == 0 {
		return base, nil
	}

	score := *gameScore
	if score < 0 {
		return 0, errs.ErrInvalidGameScore
	}
	if score >= MaxScoreBonusPercent {
		return base * 2, nil
	}

	// Integer division floors for non-negative operands.
	return base * (100 + score) / 100, nil
}
