package model

import (
	"time"
)

// MiningState represents the database model for the mining balance row
type MiningState struct {
	UserID       string `gorm:"primaryKey;size:255"`
	MiningActive bool   `gorm:"not null;default:false"`
	LastStart    *time.Time
	LastClaim    *time.Time
	Balance      float64   `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Account Account `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName specifies the table name for MiningState
func (MiningState) TableName() string {
	return "mining_data"
}
