package model

import (
	"time"
)

// DailyStreak represents the database model for the daily check-in chain
type DailyStreak struct {
	UserID      string `gorm:"primaryKey;size:255"`
	LastClaim   *time.Time
	Streak      int       `gorm:"not null;default:0"`
	TotalEarned float64   `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	Account Account `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName specifies the table name for DailyStreak
func (DailyStreak) TableName() string {
	return "daily_claim_data"
}

// BoostState represents the database model for the ad boost window
type BoostState struct {
	UserID    string `gorm:"primaryKey;size:255"`
	UsedToday int    `gorm:"not null;default:0"`
	LastReset *time.Time
	Balance   float64   `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Account Account `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName specifies the table name for BoostState
func (BoostState) TableName() string {
	return "boost_data"
}

// WatchEarnState represents the database model for rewarded-ad views
type WatchEarnState struct {
	UserID       string  `gorm:"primaryKey;size:255"`
	TotalWatched int     `gorm:"not null;default:0"`
	TotalEarned  float64 `gorm:"not null;default:0"`
	LastWatch    *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Account Account `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName specifies the table name for WatchEarnState
func (WatchEarnState) TableName() string {
	return "watch_earn_data"
}

// ReferralState represents the database model for the owner-side referral view
type ReferralState struct {
	UserID        string    `gorm:"primaryKey;size:255"`
	TotalReferred int       `gorm:"not null;default:0"`
	ReferredUsers []string  `gorm:"type:jsonb;serializer:json"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Account Account `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName specifies the table name for ReferralState
func (ReferralState) TableName() string {
	return "referral_data"
}
