package bonus

import (
	"context"

	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
)

// BoostResult is the outcome of a successful boost claim.
type BoostResult struct {
	Reward    float64
	UsedToday int
}

// ClaimBoost grants the ad-gated boost. The attester must confirm the ad view
// first. When the usage window is older than BoostResetAfter it is reset
// before counting; BoostDailyLimit grants per window. The reward is credited
// to both the boost ledger and the mining balance.
//
// The slot is consumed with a guard on used_today, so two ad completions
// racing for the last slot honor it once; the loser gets
// ErrConcurrentModification and may simply retry.
func (e *Engine) ClaimBoost(ctx context.Context, userID string, adCompleted bool) (*BoostResult, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if err := e.attester.Confirm(ctx, userID, adCompleted); err != nil {
		return nil, err
	}

	ctx, cancel := e.timeProvider.WithTimeout(ctx, e.storeTimeout)
	defer cancel()

	state, err := e.uow.Boosts(ctx).Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := e.timeProvider.Now()
	if state.WindowExpired(now, e.rules.BoostResetAfter) {
		// Losing this reset race is fine: someone else opened the window.
		// Either way the row is re-read before counting.
		if _, err := e.uow.Boosts(ctx).ResetWindow(ctx, userID, state.LastReset, now); err != nil {
			return nil, err
		}
		if state, err = e.uow.Boosts(ctx).Get(ctx, userID); err != nil {
			return nil, err
		}
	}

	if state.UsedToday >= e.rules.BoostDailyLimit {
		return nil, errs.ErrLimitReached
	}

	reward := e.rules.BoostReward
	err = e.grant(ctx, userID, "boost", reward, func(txCtx context.Context) (bool, error) {
		return e.uow.Boosts(txCtx).ConsumeSlot(txCtx, userID, state.UsedToday, reward)
	})
	if err != nil {
		return nil, err
	}

	return &BoostResult{
		Reward:    reward,
		UsedToday: state.UsedToday + 1,
	}, nil
}
