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

// DailyStreakRepository implements persistence.DailyStreakRepository using GORM
type DailyStreakRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewDailyStreakRepository creates a new DailyStreakRepository instance
func NewDailyStreakRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *DailyStreakRepository {
	return &DailyStreakRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Get retrieves the daily streak row for a user
func (r *DailyStreakRepository) Get(ctx context.Context, userID string) (*entity.DailyStreak, error) {
	var streakModel model.DailyStreak
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&streakModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		r.logger.Error("Database error when getting daily streak", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return nil, r.errorClassifier.mapStorageError(result.Error)
	}

	return &entity.DailyStreak{
		UserID:      streakModel.UserID,
		LastClaim:   streakModel.LastClaim,
		Streak:      streakModel.Streak,
		TotalEarned: streakModel.TotalEarned,
	}, nil
}

// Create inserts the initial daily streak row
func (r *DailyStreakRepository) Create(ctx context.Context, state *entity.DailyStreak) error {
	now := r.timeProvider.Now()
	streakModel := model.DailyStreak{
		UserID:      state.UserID,
		LastClaim:   state.LastClaim,
		Streak:      state.Streak,
		TotalEarned: state.TotalEarned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result := r.db.WithContext(ctx).Create(&streakModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateAccount
		}
		r.logger.Error("Database error when creating daily streak", map[string]any{
			"userId": state.UserID,
			"error":  result.Error.Error(),
		})
		return r.errorClassifier.mapStorageError(result.Error)
	}
	return nil
}

// Advance moves the streak forward one day, guarded by last_claim still
// holding the value the caller computed from. Two check-ins racing on the
// same day leave exactly one winner.
func (r *DailyStreakRepository) Advance(ctx context.Context, userID string, prevClaim *time.Time, streak int, reward float64, now time.Time) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.DailyStreak{})
	if prevClaim == nil {
		query = query.Where("user_id = ? AND last_claim IS NULL", userID)
	} else {
		query = query.Where("user_id = ? AND last_claim = ?", userID, *prevClaim)
	}

	result := query.Updates(map[string]interface{}{
		"streak":       streak,
		"last_claim":   now,
		"total_earned": gorm.Expr("total_earned + ?", reward),
		"updated_at":   now,
	})

	if result.Error != nil {
		r.logger.Error("Database error when advancing daily streak", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return false, r.errorClassifier.mapStorageError(result.Error)
	}

	return result.RowsAffected > 0, nil
}
