package dto

import "time"

// CreateAccountRequest represents the API request for provisioning an account
type CreateAccountRequest struct {
	UserID     string `json:"userId" binding:"required"`
	Username   string `json:"username"`
	AvatarURL  string `json:"avatarUrl"`
	ReferredBy string `json:"referredBy"`
}

// AccountResponse represents an account profile in API responses
type AccountResponse struct {
	UserID       string    `json:"userId"`
	Username     string    `json:"username,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	ReferralCode string    `json:"referralCode"`
	ReferredBy   string    `json:"referredBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DailyStreakResponse represents the check-in chain in API responses
type DailyStreakResponse struct {
	LastClaim   *time.Time `json:"lastClaim,omitempty"`
	Streak      int        `json:"streak"`
	TotalEarned float64    `json:"totalEarned"`
}

// BoostStateResponse represents the boost window in API responses
type BoostStateResponse struct {
	UsedToday int        `json:"usedToday"`
	LastReset *time.Time `json:"lastReset,omitempty"`
	Balance   float64    `json:"balance"`
}

// WatchEarnResponse represents the rewarded-ad counters in API responses
type WatchEarnResponse struct {
	TotalWatched int        `json:"totalWatched"`
	TotalEarned  float64    `json:"totalEarned"`
	LastWatch    *time.Time `json:"lastWatch,omitempty"`
}

// ReferralStateResponse represents the owner-side referral view
type ReferralStateResponse struct {
	TotalReferred int      `json:"totalReferred"`
	ReferredUsers []string `json:"referredUsers"`
}

// UserDataResponse aggregates the account and all sub-records
type UserDataResponse struct {
	Account   AccountResponse       `json:"account"`
	Mining    MiningStateResponse   `json:"mining"`
	Daily     DailyStreakResponse   `json:"daily"`
	Boost     BoostStateResponse    `json:"boost"`
	WatchEarn WatchEarnResponse     `json:"watchEarn"`
	Referrals ReferralStateResponse `json:"referrals"`
}

// ReferralCodeResponse carries an account's referral code
type ReferralCodeResponse struct {
	UserID       string `json:"userId"`
	ReferralCode string `json:"referralCode"`
}

// RegisterReferralRequest links a new user to the code owner's referred list
type RegisterReferralRequest struct {
	UserID string `json:"userId" binding:"required"`
}
