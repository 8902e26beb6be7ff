package account

import (
	"context"
	"errors"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/domain/port/persistence"
)

// UseCase provisions accounts, issues referral codes and resolves referral
// registrations.
type UseCase struct {
	uow             persistence.UnitOfWork
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	storeTimeout    coreport.Duration
	codeLength      int
	maxCodeAttempts int
}

// NewUseCase creates the account use case.
func NewUseCase(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	storeTimeout coreport.Duration,
	codeLength int,
	maxCodeAttempts int,
) *UseCase {
	if storeTimeout <= 0 {
		storeTimeout = 5 * coreport.Second
	}
	if codeLength == 0 {
		codeLength = entity.MinReferralCodeLength
	}
	if maxCodeAttempts <= 0 {
		maxCodeAttempts = 5
	}
	return &UseCase{
		uow:             uow,
		timeProvider:    timeProvider,
		logger:          logger,
		storeTimeout:    storeTimeout,
		codeLength:      codeLength,
		maxCodeAttempts: maxCodeAttempts,
	}
}

// CreateAccountRequest carries the caller-supplied profile fields. UserID
// comes from the authentication layer and is trusted as-is.
type CreateAccountRequest struct {
	UserID     string
	Username   string
	AvatarURL  string
	ReferredBy string // referral code of the referring account, optional
}

// CreateAccount provisions the account and all five sub-records in one
// transaction, with a fresh unique referral code. A collision on the code's
// unique index rolls the transaction back and retries with a new code, up to
// the attempt budget; after that ErrReferralExhausted is returned, which
// means the code space is unexpectedly saturated and wants operator
// attention.
func (u *UseCase) CreateAccount(ctx context.Context, req CreateAccountRequest) (*entity.Account, error) {
	if req.UserID == "" {
		return nil, errs.ErrInvalidUserID
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	// Resolve the referrer before creating anything. An unknown code links
	// nothing but does not block registration.
	var referrer *entity.Account
	if req.ReferredBy != "" {
		ref, err := u.uow.Accounts(ctx).GetByReferralCode(ctx, req.ReferredBy)
		switch {
		case err == nil:
			referrer = ref
		case errors.Is(err, errs.ErrReferralNotFound):
			u.logger.Warn("Unknown referral code at registration, proceeding unlinked", map[string]any{
				"user_id": req.UserID,
				"code":    req.ReferredBy,
			})
		default:
			return nil, err
		}
	}

	var created *entity.Account
	for attempt := 1; attempt <= u.maxCodeAttempts; attempt++ {
		code, err := entity.NewReferralCode(u.codeLength)
		if err != nil {
			return nil, err
		}

		acct, err := entity.NewAccount(req.UserID, req.Username, code, u.timeProvider.Now())
		if err != nil {
			return nil, err
		}
		acct.AvatarURL = req.AvatarURL
		if referrer != nil {
			acct.ReferredBy = referrer.ReferralCode
		}

		err = u.provision(ctx, acct)
		if err == nil {
			created = acct
			break
		}
		if errors.Is(err, errs.ErrReferralCodeTaken) {
			u.logger.Warn("Referral code collision, regenerating", map[string]any{
				"user_id": req.UserID,
				"attempt": attempt,
			})
			continue
		}
		return nil, err
	}
	if created == nil {
		u.logger.Error("Referral code space saturated", map[string]any{
			"user_id":  req.UserID,
			"attempts": u.maxCodeAttempts,
		})
		return nil, errs.ErrReferralExhausted
	}

	u.logger.Info("Account provisioned", map[string]any{
		"user_id":       created.UserID,
		"referral_code": created.ReferralCode,
		"referred":      created.ReferredBy != "",
	})

	if referrer != nil {
		// Linkage on the owner's side is best-effort here; the sweep can be
		// replayed through RegisterReferral if it fails.
		if err := u.RegisterReferral(ctx, referrer.ReferralCode, created.UserID); err != nil {
			u.logger.Error("Failed to register referral for new account", map[string]any{
				"user_id":  created.UserID,
				"referrer": referrer.UserID,
				"error":    err.Error(),
			})
		}
	}

	return created, nil
}

// provision inserts the account and its five sub-records atomically.
func (u *UseCase) provision(ctx context.Context, acct *entity.Account) error {
	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		return err
	}

	mining, daily, boost, watch, referral := entity.NewAccountRecords(acct.UserID)

	steps := []func() error{
		func() error { return u.uow.Accounts(txCtx).Create(txCtx, acct) },
		func() error { return u.uow.Mining(txCtx).Create(txCtx, mining) },
		func() error { return u.uow.DailyStreaks(txCtx).Create(txCtx, daily) },
		func() error { return u.uow.Boosts(txCtx).Create(txCtx, boost) },
		func() error { return u.uow.WatchEarn(txCtx).Create(txCtx, watch) },
		func() error { return u.uow.Referrals(txCtx).Create(txCtx, referral) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			_ = u.uow.Rollback(txCtx)
			return err
		}
	}

	return u.uow.Commit(txCtx)
}

// UserData is the combined profile the UI polls for.
type UserData struct {
	Account   *entity.Account
	Mining    *entity.MiningState
	Daily     *entity.DailyStreak
	Boost     *entity.BoostState
	WatchEarn *entity.WatchEarnState
	Referrals *entity.ReferralState
}

// GetUserData fetches the account and every sub-record. A missing sub-record
// on an existing account is a provisioning defect and surfaces as
// ErrAccountNotFound.
func (u *UseCase) GetUserData(ctx context.Context, userID string) (*UserData, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	acct, err := u.uow.Accounts(ctx).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := &UserData{Account: acct}
	if data.Mining, err = u.uow.Mining(ctx).Get(ctx, userID); err != nil {
		return nil, err
	}
	if data.Daily, err = u.uow.DailyStreaks(ctx).Get(ctx, userID); err != nil {
		return nil, err
	}
	if data.Boost, err = u.uow.Boosts(ctx).Get(ctx, userID); err != nil {
		return nil, err
	}
	if data.WatchEarn, err = u.uow.WatchEarn(ctx).Get(ctx, userID); err != nil {
		return nil, err
	}
	if data.Referrals, err = u.uow.Referrals(ctx).Get(ctx, userID); err != nil {
		return nil, err
	}
	return data, nil
}
