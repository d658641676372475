package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Username    string    `gorm:"not null;size:100;uniqueIndex:idx_users_username"`
	Email       string    `gorm:"not null;size:255;uniqueIndex:idx_users_email"`
	TotalPoints int64     `gorm:"not null;default:0;check:chk_users_total_points,total_points >= 0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
