package mining

import (
	"context"

	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
)

// Start transitions Idle -> Mining. The write is guarded on
// mining_active = false, so of two concurrent Start calls exactly one wins and
// the other gets ErrAlreadyActive; there is no read-then-write window.
// Starting establishes now as both the session start and the accrual
// checkpoint.
func (u *UseCase) Start(ctx context.Context, userID string) error {
	if userID == "" {
		return errs.ErrInvalidUserID
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	// Existence check up front so a missing row surfaces as NotFound rather
	// than being conflated with an already-active session.
	if _, err := u.miningRepo.Get(ctx, userID); err != nil {
		return err
	}

	now := u.timeProvider.Now()
	started, err := u.miningRepo.StartSession(ctx, userID, now)
	if err != nil {
		u.logger.Error("Failed to start mining session", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return err
	}
	if !started {
		u.logger.Debug("Start rejected, session already active", map[string]any{
			"user_id": userID,
		})
		return errs.ErrAlreadyActive
	}

	u.logger.Info("Mining session started", map[string]any{
		"user_id":    userID,
		"checkpoint": now,
	})
	return nil
}

// Stop transitions Mining -> Idle with a blind idempotent write. Whatever the
// session accrued but did not claim is forfeited; balance and checkpoint are
// left untouched. Stopping an idle session is a no-op success.
func (u *UseCase) Stop(ctx context.Context, userID string) error {
	if userID == "" {
		return errs.ErrInvalidUserID
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	if err := u.miningRepo.StopSession(ctx, userID); err != nil {
		if !errs.IsNotFoundError(err) {
			u.logger.Error("Failed to stop mining session", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return err
	}

	u.logger.Info("Mining session stopped", map[string]any{
		"user_id": userID,
	})
	return nil
}
