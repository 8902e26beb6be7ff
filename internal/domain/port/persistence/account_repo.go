package persistence

import (
	"context"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
)

// AccountRepository persists user profile rows.
type AccountRepository interface {
	// Create inserts a new account.
	//
	// Possible errors:
	// - ErrDuplicateAccount: the user id already exists
	// - ErrReferralCodeTaken: the referral code's unique index was violated;
	//   the caller regenerates the code and retries
	// - ErrStorage / ErrStorageTimeout: infrastructure failure
	Create(ctx context.Context, account *entity.Account) error

	// GetByID retrieves an account by user id.
	//
	// Possible errors: ErrAccountNotFound, ErrStorage, ErrStorageTimeout
	GetByID(ctx context.Context, userID string) (*entity.Account, error)

	// GetByReferralCode finds the account owning a referral code.
	//
	// Possible errors: ErrReferralNotFound, ErrStorage, ErrStorageTimeout
	GetByReferralCode(ctx context.Context, code string) (*entity.Account, error)

	// AssignReferralCode backfills a code onto an account that has none,
	// guarded on referral_code = '' so an issued code is immutable. Returns
	// false when the account already carries a code.
	//
	// Possible errors: ErrReferralCodeTaken, ErrStorage, ErrStorageTimeout
	AssignReferralCode(ctx context.Context, userID, code string) (bool, error)
}
