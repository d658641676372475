package model

import (
	"time"
)

// Scan represents the database model for completed games.
// The (user_id, code_id) pair is unique.
type Scan struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_scans_user_code,priority:1;index:idx_scans_user_scanned,priority:1"`
	CodeID       uint64    `gorm:"not null;uniqueIndex:idx_scans_user_code,priority:2;index:idx_scans_code_id"`
	PointsEarned int64     `gorm:"not null;check:chk_scans_points_earned,points_earned >= 0"`
	GameLabel    string    `gorm:"size:100"`
	GameScore    *int64    `gorm:"null"`
	ScannedAt    time.Time `gorm:"not null;index:idx_scans_user_scanned,priority:2"`

	// Define relationships
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
	Code Code `gorm:"foreignKey:CodeID;references:ID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for Scan
func (Scan) TableName() string {
	return "scans"
}
