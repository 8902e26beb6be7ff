package repository

import (
	"context"
	"errors"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *AccountRepository) modelToEntity(m *model.Account) *entity.Account {
	return &entity.Account{
		UserID:       m.UserID,
		Username:     m.Username,
		AvatarURL:    m.AvatarURL,
		ReferralCode: m.ReferralCode,
		ReferredBy:   m.ReferredBy,
		CreatedAt:    m.CreatedAt,
	}
}

// Create inserts a new account row
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	now := r.timeProvider.Now()
	accountModel := model.Account{
		UserID:       account.UserID,
		Username:     account.Username,
		AvatarURL:    account.AvatarURL,
		ReferralCode: account.ReferralCode,
		ReferredBy:   account.ReferredBy,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    now,
	}

	result := r.db.WithContext(ctx).Create(&accountModel)
	if result.Error != nil {
		if r.errorClassifier.IsReferralCodeConflict(result.Error) {
			r.logger.Debug("Referral code collision on insert", map[string]any{
				"userId": account.UserID,
				"code":   account.ReferralCode,
			})
			return errs.ErrReferralCodeTaken
		}
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate account insert", map[string]any{
				"userId": account.UserID,
			})
			return errs.ErrDuplicateAccount
		}
		r.logger.Error("Database error when creating account", map[string]any{
			"userId": account.UserID,
			"error":  result.Error.Error(),
		})
		return r.errorClassifier.mapStorageError(result.Error)
	}

	return nil
}

// GetByID retrieves an account by user id
func (r *AccountRepository) GetByID(ctx context.Context, userID string) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		r.logger.Error("Database error when getting account", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return nil, r.errorClassifier.mapStorageError(result.Error)
	}

	return r.modelToEntity(&accountModel), nil
}

// GetByReferralCode finds the account owning a referral code
func (r *AccountRepository) GetByReferralCode(ctx context.Context, code string) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrReferralNotFound
		}
		r.logger.Error("Database error when looking up referral code", map[string]any{
			"code":  code,
			"error": result.Error.Error(),
		})
		return nil, r.errorClassifier.mapStorageError(result.Error)
	}

	return r.modelToEntity(&accountModel), nil
}

// AssignReferralCode backfills a code onto an account without one. The guard
// on referral_code = '' keeps an already issued code immutable.
func (r *AccountRepository) AssignReferralCode(ctx context.Context, userID, code string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("user_id = ? AND referral_code = ''", userID).
		Updates(map[string]interface{}{
			"referral_code": code,
			"updated_at":    r.timeProvider.Now(),
		})

	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return false, errs.ErrReferralCodeTaken
		}
		r.logger.Error("Database error when assigning referral code", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return false, r.errorClassifier.mapStorageError(result.Error)
	}

	return result.RowsAffected > 0, nil
}
