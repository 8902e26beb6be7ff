package dto

import "time"

// MiningStateResponse represents the mining session state in API responses
type MiningStateResponse struct {
	UserID       string     `json:"userId"`
	MiningActive bool       `json:"miningActive"`
	LastStart    *time.Time `json:"lastStart,omitempty"`
	LastClaim    *time.Time `json:"lastClaim,omitempty"`
	Balance      float64    `json:"balance"`
}

// ClaimResponse represents the outcome of a mining claim
type ClaimResponse struct {
	UserID string  `json:"userId"`
	Reward float64 `json:"reward"`
}

// BalanceResponse carries the authoritative balance and the projection the
// UI animates: balance plus accrual earned since the checkpoint but not yet
// claimed
type BalanceResponse struct {
	UserID           string  `json:"userId"`
	Balance          float64 `json:"balance"`
	ProjectedBalance float64 `json:"projectedBalance"`
}
