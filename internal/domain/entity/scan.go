package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
)

// Scan records one completed game for a (user, code) pair. It is insert-only.
type Scan struct {
	ID           uint64    // Unique identifier for the scan
	UserID       uint64    // User who played
	CodeID       uint64    // Code that was scanned
	PointsEarned int64     // Points awarded for this scan
	GameLabel    string    // Optional name of the game played
	GameScore    *int64    // Optional score, nil when no game result was sent
	ScannedAt    time.Time // When the game was completed
}

// NewScan creates a scan record for an awarded game
func NewScan(
	userID, codeID uint64,
	pointsEarned int64,
	gameLabel string,
	gameScore *int64,
	timeProvider coreport.TimeProvider,
) (*Scan, error) {
	if userID == 0 || codeID == 0 {
		return nil, errs.ErrInvalidID
	}
	if pointsEarned < 0 {
		return nil, errs.ErrNegativePoints
	}

	return &Scan{
		UserID:       userID,
		CodeID:       codeID,
		PointsEarned: pointsEarned,
		GameLabel:    gameLabel,
		GameScore:    gameScore,
		ScannedAt:    timeProvider.Now(),
	}, nil
}
