package dto

import (
	"time"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/entity"
)

// CreateUserRequest represents the API request for registering a user
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uint64    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	TotalPoints int64     `json:"totalPoints"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ScanHistoryItem is one completed game in a user's history
type ScanHistoryItem struct {
	ScanID       uint64    `json:"scanId"`
	CodeID       uint64    `json:"codeId"`
	BrandName    string    `json:"brandName"`
	PointsEarned int64     `json:"pointsEarned"`
	GameLabel    string    `json:"gameLabel,omitempty"`
	GameScore    *int64    `json:"gameScore"`
	ScannedAt    time.Time `json:"scannedAt"`
}

// UserHistoryResponse represents a user's scan history
type UserHistoryResponse struct {
	UserID      uint64            `json:"userId"`
	Username    string            `json:"username"`
	TotalPoints int64             `json:"totalPoints"`
	ScanHistory []ScanHistoryItem `json:"scanHistory"`
}

// NewUserResponse maps a user entity to its API representation
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		TotalPoints: u.TotalPoints(),
		CreatedAt:   u.CreatedAt,
	}
}

// NewUserHistoryResponse maps a user history to its API representation
func NewUserHistoryResponse(h *entity.UserHistory) UserHistoryResponse {
	items := make([]ScanHistoryItem, 0, len(h.Scans))
	for _, s := range h.Scans {
		items = append(items, ScanHistoryItem{
			ScanID:       s.ScanID,
			CodeID:       s.CodeID,
			BrandName:    s.BrandName,
			PointsEarned: s.PointsEarned,
			GameLabel:    s.GameLabel,
			GameScore:    s.GameScore,
			ScannedAt:    s.ScannedAt,
		})
	}
	return UserHistoryResponse{
		UserID:      h.UserID,
		Username:    h.Username,
		TotalPoints: h.TotalPoints,
		ScanHistory: items,
	}
}
