package dto

// DailyClaimResponse represents the outcome of a daily check-in
type DailyClaimResponse struct {
	UserID    string  `json:"userId"`
	Reward    float64 `json:"reward"`
	Streak    int     `json:"streak"`
	LastClaim string  `json:"lastClaim"`
}

// AdClaimRequest carries the client's ad completion flag for ad-gated bonuses
type AdClaimRequest struct {
	AdCompleted bool `json:"adCompleted"`
}

// BoostClaimResponse represents the outcome of a boost claim
type BoostClaimResponse struct {
	UserID    string  `json:"userId"`
	Reward    float64 `json:"reward"`
	UsedToday int     `json:"usedToday"`
}

// WatchClaimResponse represents the outcome of a watch-earn claim
type WatchClaimResponse struct {
	UserID string  `json:"userId"`
	Reward float64 `json:"reward"`
}
