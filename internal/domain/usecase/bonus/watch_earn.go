package bonus

import (
	"context"

	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
)

// ClaimWatchEarn grants the rewarded-ad bonus. The attester must confirm the
// view. Claims inside WatchCooldown of the previous one are rejected
// server-side; the cooldown is enforced with a guard on last_watch so two
// concurrent completions cannot both land inside one window.
func (e *Engine) ClaimWatchEarn(ctx context.Context, userID string, adCompleted bool) (float64, error) {
	if userID == "" {
		return 0, errs.ErrInvalidUserID
	}
	if err := e.attester.Confirm(ctx, userID, adCompleted); err != nil {
		return 0, err
	}

	ctx, cancel := e.timeProvider.WithTimeout(ctx, e.storeTimeout)
	defer cancel()

	state, err := e.uow.WatchEarn(ctx).Get(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := e.timeProvider.Now()
	if state.LastWatch != nil && now.Sub(*state.LastWatch) < e.rules.WatchCooldown {
		return 0, errs.ErrCooldown
	}

	reward := e.rules.WatchReward
	err = e.grant(ctx, userID, "watch", reward, func(txCtx context.Context) (bool, error) {
		return e.uow.WatchEarn(txCtx).RecordWatch(txCtx, userID, state.LastWatch, reward, now)
	})
	if err != nil {
		if errs.IsConcurrentModificationError(err) {
			return 0, errs.ErrCooldown
		}
		return 0, err
	}

	return reward, nil
}
