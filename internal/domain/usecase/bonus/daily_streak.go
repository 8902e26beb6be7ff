package bonus

import (
	"context"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
)

// DailyResult is the outcome of a successful daily check-in.
type DailyResult struct {
	Reward    float64
	Streak    int
	LastClaim string
}

// ClaimDaily grants the daily check-in bonus. A claim within the cooldown is
// rejected with ErrCooldown. A gap of StreakResetAfter or more breaks the
// chain: the streak restarts at 1. The reward is StreakStep*streak, with a
// flat StreakWeeklyBonus at exactly day 7; past day 7 the streak keeps
// counting and the formula resumes.
//
// The grant is guarded on last_claim, so two check-ins racing for the same
// day consume it once; the loser is told ErrCooldown, which is what is now
// true.
func (e *Engine) ClaimDaily(ctx context.Context, userID string) (*DailyResult, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	ctx, cancel := e.timeProvider.WithTimeout(ctx, e.storeTimeout)
	defer cancel()

	state, err := e.uow.DailyStreaks(ctx).Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := e.timeProvider.Now()
	if state.LastClaim != nil && now.Sub(*state.LastClaim) < e.rules.StreakCooldown {
		return nil, errs.ErrCooldown
	}

	streak := state.Streak
	if state.LastClaim != nil && now.Sub(*state.LastClaim) >= e.rules.StreakResetAfter {
		streak = 0
	}
	streak++

	reward := entity.RoundAmount(e.rules.StreakStep * float64(streak))
	if streak == 7 {
		reward = e.rules.StreakWeeklyBonus
	}

	err = e.grant(ctx, userID, "daily", reward, func(txCtx context.Context) (bool, error) {
		return e.uow.DailyStreaks(txCtx).Advance(txCtx, userID, state.LastClaim, streak, reward, now)
	})
	if err != nil {
		if errs.IsConcurrentModificationError(err) {
			return nil, errs.ErrCooldown
		}
		return nil, err
	}

	return &DailyResult{
		Reward:    reward,
		Streak:    streak,
		LastClaim: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}, nil
}
