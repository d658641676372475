package dto

import (
	"fmt"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// ScanRequest represents the API request for scanning a code
type ScanRequest struct {
	UserID uint64 `json:"userId" binding:"required"`
}

// ScanResponse tells the app whether the user may play for the scanned code
type ScanResponse struct {
	Message         string `json:"message"`
	EligibleForGame bool   `json:"eligibleForGame"`
	CodeID          uint64 `json:"codeId,omitempty"`
	BrandName       string `json:"brandName,omitempty"`
	Description     string `json:"description,omitempty"`
	PointsAvailable *int64 `json:"pointsAvailable,omitempty"`
}

// GamePlayRequest represents a finished game for a scanned code
type GamePlayRequest struct {
	UserID    uint64 `json:"userId" binding:"required"`
	CodeID    uint64 `json:"codeId" binding:"required"`
	GameLabel string `json:"gameLabel"`
	GameScore *int64 `json:"gameScore"`
}

// GamePlayResponse reports the points credited for a finished game
type GamePlayResponse struct {
	Message      string `json:"message"`
	ScanID       uint64 `json:"scanId"`
	PointsEarned int64  `json:"pointsEarned"`
	TotalPoints  int64  `json:"totalPoints"`
}

// NewScanResponse maps a scan attempt to its API representation
func NewScanResponse(a *entity.ScanAttempt) ScanResponse {
	if !a.Eligible {
		return ScanResponse{
			Message:         "You've already scanned this QR code",
			EligibleForGame: false,
		}
	}
	points := a.PointsAvailable
	return ScanResponse{
		Message:         fmt.Sprintf("QR code from %s scanned successfully!", a.BrandName),
		EligibleForGame: true,
		CodeID:          a.CodeID,
		BrandName:       a.BrandName,
		Description:     a.Description,
		PointsAvailable: &points,
	}
}

// NewGamePlayResponse maps a game result to its API representation
func NewGamePlayResponse(r *entity.GameResult) GamePlayResponse {
	return GamePlayResponse{
		Message:      "Game completed successfully!",
		ScanID:       r.ScanID,
		PointsEarned: r.PointsEarned,
		TotalPoints:  r.TotalPoints,
	}
}
