package entity

import (
	"net/mail"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
)

// User represents an end user collecting points
type User struct {
	ID          uint64    // Unique identifier for the user
	Username    string    // Unique login name
	Email       string    // Unique contact address
	totalPoints int64     // Running point total, never negative (private)
	CreatedAt   time.Time // When the user was created
}

// NewUser creates a new user with a zero point total
func NewUser(username, email string, timeProvider coreport.TimeProvider) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, errs.ErrInvalidUserData
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errs.ErrInvalidUserData
	}

	return &User{
		Username:  username,
		Email:     email,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// TotalPoints returns the current running total
func (u *User) TotalPoints() int64 {
	return u.totalPoints
}

// SetTotalPoints updates the total directly (for internal use, like repositories)
func (u *User) SetTotalPoints(points int64) error {
	if points < 0 {
		return errs.ErrNegativePoints
	}
	u.totalPoints = points
	return nil
}
