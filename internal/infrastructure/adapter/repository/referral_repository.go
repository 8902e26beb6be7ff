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

// ReferralRepository implements persistence.ReferralRepository using GORM
type ReferralRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewReferralRepository creates a new ReferralRepository instance
func NewReferralRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ReferralRepository {
	return &ReferralRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Get retrieves the referral row for a user
func (r *ReferralRepository) Get(ctx context.Context, userID string) (*entity.ReferralState, error) {
	var referralModel model.ReferralState
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&referralModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		r.logger.Error("Database error when getting referral state", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return nil, r.errorClassifier.mapStorageError(result.Error)
	}

	referred := referralModel.ReferredUsers
	if referred == nil {
		referred = []string{}
	}

	return &entity.ReferralState{
		UserID:        referralModel.UserID,
		TotalReferred: referralModel.TotalReferred,
		ReferredUsers: referred,
	}, nil
}

// Create inserts the initial referral row
func (r *ReferralRepository) Create(ctx context.Context, state *entity.ReferralState) error {
	now := r.timeProvider.Now()
	referred := state.ReferredUsers
	if referred == nil {
		referred = []string{}
	}
	referralModel := model.ReferralState{
		UserID:        state.UserID,
		TotalReferred: state.TotalReferred,
		ReferredUsers: referred,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result := r.db.WithContext(ctx).Create(&referralModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateAccount
		}
		r.logger.Error("Database error when creating referral state", map[string]any{
			"userId": state.UserID,
			"error":  result.Error.Error(),
		})
		return r.errorClassifier.mapStorageError(result.Error)
	}
	return nil
}

// AppendReferred adds newUserID to the owner's referred list. The guard on
// total_referred = expectedTotal keeps the list append-only when two
// registrations land at once; the loser re-reads and retries.
func (r *ReferralRepository) AppendReferred(ctx context.Context, ownerID, newUserID string, expectedTotal int) (bool, error) {
	var referralModel model.ReferralState
	result := r.db.WithContext(ctx).Where("user_id = ?", ownerID).First(&referralModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, errs.ErrAccountNotFound
		}
		return false, r.errorClassifier.mapStorageError(result.Error)
	}

	if referralModel.TotalReferred != expectedTotal {
		return false, nil
	}

	updated := append(referralModel.ReferredUsers, newUserID)

	write := r.db.WithContext(ctx).Model(&model.ReferralState{}).
		Where("user_id = ? AND total_referred = ?", ownerID, expectedTotal).
		Updates(map[string]interface{}{
			"total_referred": expectedTotal + 1,
			"referred_users": updated,
			"updated_at":     r.timeProvider.Now(),
		})

	if write.Error != nil {
		r.logger.Error("Database error when appending referral", map[string]any{
			"ownerId":   ownerID,
			"newUserId": newUserID,
			"error":     write.Error.Error(),
		})
		return false, r.errorClassifier.mapStorageError(write.Error)
	}

	return write.RowsAffected > 0, nil
}
