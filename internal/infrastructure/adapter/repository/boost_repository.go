package repository

import (
	"context"
	"errors"
	"time"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// BoostRepository implements persistence.BoostRepository using GORM
type BoostRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBoostRepository creates a new BoostRepository instance
func NewBoostRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *BoostRepository {
	return &BoostRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Get retrieves the boost window row for a user
func (r *BoostRepository) Get(ctx context.Context, userID string) (*entity.BoostState, error) {
	var boostModel model.BoostState
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&boostModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		r.logger.Error("Database error when getting boost state", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return nil, r.errorClassifier.mapStorageError(result.Error)
	}

	return &entity.BoostState{
		UserID:    boostModel.UserID,
		UsedToday: boostModel.UsedToday,
		LastReset: boostModel.LastReset,
		Balance:   boostModel.Balance,
	}, nil
}

// Create inserts the initial boost row
func (r *BoostRepository) Create(ctx context.Context, state *entity.BoostState) error {
	now := r.timeProvider.Now()
	boostModel := model.BoostState{
		UserID:    state.UserID,
		UsedToday: state.UsedToday,
		LastReset: state.LastReset,
		Balance:   state.Balance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result := r.db.WithContext(ctx).Create(&boostModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateAccount
		}
		r.logger.Error("Database error when creating boost state", map[string]any{
			"userId": state.UserID,
			"error":  result.Error.Error(),
		})
		return r.errorClassifier.mapStorageError(result.Error)
	}
	return nil
}

// ResetWindow opens a fresh daily window, guarded by last_reset still holding
// prevReset. Losing the race is harmless; the winner already opened it.
func (r *BoostRepository) ResetWindow(ctx context.Context, userID string, prevReset *time.Time, now time.Time) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.BoostState{})
	if prevReset == nil {
		query = query.Where("user_id = ? AND last_reset IS NULL", userID)
	} else {
		query = query.Where("user_id = ? AND last_reset = ?", userID, *prevReset)
	}

	result := query.Updates(map[string]interface{}{
		"used_today": 0,
		"last_reset": now,
		"updated_at": now,
	})

	if result.Error != nil {
		r.logger.Error("Database error when resetting boost window", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return false, r.errorClassifier.mapStorageError(result.Error)
	}

	return result.RowsAffected > 0, nil
}

// ConsumeSlot takes one boost use, guarded on used_today = expectedUsed so
// racing ad completions cannot both take the last slot. last_reset is left
// alone; consuming never extends the window.
func (r *BoostRepository) ConsumeSlot(ctx context.Context, userID string, expectedUsed int, reward float64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.BoostState{}).
		Where("user_id = ? AND used_today = ?", userID, expectedUsed).
		Updates(map[string]interface{}{
			"used_today": expectedUsed + 1,
			"balance":    gorm.Expr("balance + ?", reward),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Database error when consuming boost slot", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return false, r.errorClassifier.mapStorageError(result.Error)
	}

	return result.RowsAffected > 0, nil
}
