package persistence

import (
	"context"
	"time"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
)

// DailyStreakRepository persists the check-in bonus row. Advance is guarded on
// last_claim so two concurrent check-ins can only consume the day once.
type DailyStreakRepository interface {
	Get(ctx context.Context, userID string) (*entity.DailyStreak, error)
	Create(ctx context.Context, state *entity.DailyStreak) error

	// Advance sets streak and last_claim=now and adds reward to total_earned,
	// guarded by last_claim still holding prevClaim. Returns false when a
	// concurrent claim already took today's slot.
	Advance(ctx context.Context, userID string, prevClaim *time.Time, streak int, reward float64, now time.Time) (bool, error)
}

// BoostRepository persists the ad-boost window row.
type BoostRepository interface {
	Get(ctx context.Context, userID string) (*entity.BoostState, error)
	Create(ctx context.Context, state *entity.BoostState) error

	// ResetWindow zeroes used_today and stamps last_reset=now, guarded by
	// last_reset still holding prevReset. A false result means another
	// request reset the window first, which is fine; callers re-read.
	ResetWindow(ctx context.Context, userID string, prevReset *time.Time, now time.Time) (bool, error)

	// ConsumeSlot increments used_today from expectedUsed and credits reward
	// to the boost ledger, guarded on used_today = expectedUsed so only one
	// of two racing ad completions takes the remaining slot.
	ConsumeSlot(ctx context.Context, userID string, expectedUsed int, reward float64) (bool, error)
}

// WatchEarnRepository persists the rewarded-ad counters.
type WatchEarnRepository interface {
	Get(ctx context.Context, userID string) (*entity.WatchEarnState, error)
	Create(ctx context.Context, state *entity.WatchEarnState) error

	// RecordWatch increments total_watched, adds reward to total_earned and
	// stamps last_watch=now, guarded by last_watch still holding prevWatch.
	RecordWatch(ctx context.Context, userID string, prevWatch *time.Time, reward float64, now time.Time) (bool, error)
}

// ReferralRepository persists the owner-side referral list.
type ReferralRepository interface {
	Get(ctx context.Context, userID string) (*entity.ReferralState, error)
	Create(ctx context.Context, state *entity.ReferralState) error

	// AppendReferred appends newUserID to the owner's referred list and bumps
	// total_referred, guarded on total_referred = expectedTotal to keep the
	// list append-only under contention.
	AppendReferred(ctx context.Context, ownerID, newUserID string, expectedTotal int) (bool, error)
}
