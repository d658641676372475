package model

import (
	"time"
)

// Brand represents the database model for brands
type Brand struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"not null;size:255"`
	LogoURL   string    `gorm:"size:1024"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Brand
func (Brand) TableName() string {
	return "brands"
}
