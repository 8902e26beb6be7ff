package account

import (
	"context"
	"errors"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
)

// appendAttempts bounds the optimistic retry loop on the referred-users list.
const appendAttempts = 3

// IssueReferralCode returns the account's referral code. Codes are assigned
// at provisioning and immutable, so this normally just reads; an account that
// somehow lacks one (pre-migration rows) gets a code backfilled with the same
// collision-retry discipline as creation.
func (u *UseCase) IssueReferralCode(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", errs.ErrInvalidUserID
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	acct, err := u.uow.Accounts(ctx).GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if acct.ReferralCode != "" {
		return acct.ReferralCode, nil
	}

	for attempt := 1; attempt <= u.maxCodeAttempts; attempt++ {
		code, err := entity.NewReferralCode(u.codeLength)
		if err != nil {
			return "", err
		}

		assigned, err := u.uow.Accounts(ctx).AssignReferralCode(ctx, userID, code)
		if err != nil {
			if errors.Is(err, errs.ErrReferralCodeTaken) {
				continue
			}
			return "", err
		}
		if !assigned {
			// Someone else backfilled first; their code stands.
			acct, err = u.uow.Accounts(ctx).GetByID(ctx, userID)
			if err != nil {
				return "", err
			}
			return acct.ReferralCode, nil
		}

		u.logger.Info("Referral code backfilled", map[string]any{
			"user_id": userID,
			"code":    code,
		})
		return code, nil
	}

	return "", errs.ErrReferralExhausted
}

// RegisterReferral looks up the account owning code and appends newUserID to
// its referred-users list, bumping the counter. The append is guarded on
// total_referred and retried a few times under contention. There is no reward
// side effect.
func (u *UseCase) RegisterReferral(ctx context.Context, code, newUserID string) error {
	if newUserID == "" {
		return errs.ErrInvalidUserID
	}
	if err := entity.ValidateReferralCode(code); err != nil {
		return err
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	owner, err := u.uow.Accounts(ctx).GetByReferralCode(ctx, code)
	if err != nil {
		return err
	}
	if owner.UserID == newUserID {
		return errs.ErrInvalidReferralCode
	}

	for attempt := 1; attempt <= appendAttempts; attempt++ {
		state, err := u.uow.Referrals(ctx).Get(ctx, owner.UserID)
		if err != nil {
			return err
		}
		for _, id := range state.ReferredUsers {
			if id == newUserID {
				// Already linked; registering twice is a no-op.
				return nil
			}
		}

		appended, err := u.uow.Referrals(ctx).AppendReferred(ctx, owner.UserID, newUserID, state.TotalReferred)
		if err != nil {
			return err
		}
		if appended {
			u.logger.Info("Referral registered", map[string]any{
				"owner_id":       owner.UserID,
				"referred_id":    newUserID,
				"total_referred": state.TotalReferred + 1,
			})
			return nil
		}
	}

	return errs.ErrConcurrentModification
}
