package model

import (
	"time"
)

// Account represents the database model for user profiles
type Account struct {
	UserID       string    `gorm:"primaryKey;size:255"`
	Username     string    `gorm:"size:255"`
	AvatarURL    string    `gorm:"type:text"`
	// Uniqueness is enforced by a partial index created in migration so
	// accounts awaiting a code can share the empty value.
	ReferralCode string `gorm:"size:8;index"`
	ReferredBy   string    `gorm:"size:8;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "user_profiles"
}
