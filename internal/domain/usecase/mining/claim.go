package mining

import (
	"context"

	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
)

// Claim converts elapsed session time into balance and advances the accrual
// checkpoint. It is callable at any time: claiming while idle or with nothing
// accrued is a valid zero-reward no-op, not an error.
//
// The credit is a compare-and-swap on last_claim, so N concurrent claims
// against the same checkpoint grant at most one reward; losers return 0 and
// the caller may claim again to pick up whatever accrued since the checkpoint
// moved. A reward is only ever reported after the write is confirmed - an
// ambiguous outcome under-grants rather than double-grants.
func (u *UseCase) Claim(ctx context.Context, userID string) (float64, error) {
	if userID == "" {
		return 0, errs.ErrInvalidUserID
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	state, err := u.miningRepo.Get(ctx, userID)
	if err != nil {
		return 0, err
	}

	if !state.MiningActive {
		return 0, nil
	}

	now := u.timeProvider.Now()
	reward := u.rates.Accrue(state.Checkpoint(), now, state.MiningActive)
	if reward <= 0 {
		return 0, nil
	}

	granted, err := u.miningRepo.ClaimAccrual(ctx, userID, reward, state.LastClaim, now)
	if err != nil {
		u.logger.Error("Claim write failed", map[string]any{
			"user_id": userID,
			"reward":  reward,
			"error":   err.Error(),
		})
		return 0, errs.NewGrantError(userID, "mining", reward, err)
	}
	if !granted {
		// Another claim advanced the checkpoint between our read and write.
		u.logger.Debug("Claim lost checkpoint race", map[string]any{
			"user_id":    userID,
			"checkpoint": state.Checkpoint(),
		})
		return 0, nil
	}

	u.logger.Info("Mining reward claimed", map[string]any{
		"user_id":        userID,
		"reward":         reward,
		"new_checkpoint": now,
	})
	return reward, nil
}
