package entity

import (
	"strings"
	"time"

	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
)

// Account is the user profile record. The user id is an opaque identifier
// supplied by the authentication layer; the ledger never generates it.
type Account struct {
	UserID       string
	Username     string
	AvatarURL    string
	ReferralCode string // unique, immutable after creation
	ReferredBy   string // referral code of the referring account, if any
	CreatedAt    time.Time
}

// NewAccount creates an account with the given referral code already assigned.
func NewAccount(userID, username, referralCode string, now time.Time) (*Account, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}
	if err := ValidateReferralCode(referralCode); err != nil {
		return nil, err
	}
	return &Account{
		UserID:       userID,
		Username:     username,
		ReferralCode: referralCode,
		CreatedAt:    now,
	}, nil
}

// MiningState is the authoritative balance row. Every reward path in the
// system credits Balance; it never decreases outside administrative repair.
type MiningState struct {
	UserID       string
	MiningActive bool
	LastStart    *time.Time
	LastClaim    *time.Time
	Balance      float64
}

// Checkpoint returns the timestamp accrual is measured from: the last claim
// if one happened this session, otherwise the session start.
func (s *MiningState) Checkpoint() *time.Time {
	if s.LastClaim != nil {
		return s.LastClaim
	}
	return s.LastStart
}

// DailyStreak tracks the check-in bonus chain.
type DailyStreak struct {
	UserID      string
	LastClaim   *time.Time
	Streak      int
	TotalEarned float64
}

// BoostState tracks the ad-gated boost window. Balance is the cumulative
// boost earnings; every grant also lands in MiningState.Balance.
type BoostState struct {
	UserID    string
	UsedToday int
	LastReset *time.Time
	Balance   float64
}

// WindowExpired reports whether the daily usage window must be reset before
// the next grant. A nil LastReset means the window was never opened.
func (b *BoostState) WindowExpired(now time.Time, resetAfter time.Duration) bool {
	return b.LastReset == nil || now.Sub(*b.LastReset) >= resetAfter
}

// WatchEarnState tracks rewarded-ad views. LastWatch backs the server-side
// cooldown between grants.
type WatchEarnState struct {
	UserID       string
	TotalWatched int
	TotalEarned  float64
	LastWatch    *time.Time
}

// ReferralState is the owner-side view of issued referrals.
// ReferredUsers is append-only.
type ReferralState struct {
	UserID        string
	TotalReferred int
	ReferredUsers []string
}

// NewAccountRecords builds the full set of sub-records provisioned alongside
// a fresh account. Every operation assumes these rows exist.
func NewAccountRecords(userID string) (*MiningState, *DailyStreak, *BoostState, *WatchEarnState, *ReferralState) {
	return &MiningState{UserID: userID},
		&DailyStreak{UserID: userID},
		&BoostState{UserID: userID},
		&WatchEarnState{UserID: userID},
		&ReferralState{UserID: userID, ReferredUsers: []string{}}
}
