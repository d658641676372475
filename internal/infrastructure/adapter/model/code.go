package model

import (
	"time"
)

// Code represents the database model for scannable codes
type Code struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	BrandID     uint64    `gorm:"not null;index:idx_codes_brand_id"`
	Token       string    `gorm:"not null;size:32;uniqueIndex:idx_codes_token"`
	PointsValue int64     `gorm:"not null;check:chk_codes_points_value,points_value >= 0"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`

	// Define relationships
	Brand Brand `gorm:"foreignKey:BrandID;references:ID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for Code
func (Code) TableName() string {
	return "codes"
}
