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

// WatchEarnRepository implements persistence.WatchEarnRepository using GORM
type WatchEarnRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWatchEarnRepository creates a new WatchEarnRepository instance
func NewWatchEarnRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WatchEarnRepository {
	return &WatchEarnRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Get retrieves the watch-earn counters for a user
func (r *WatchEarnRepository) Get(ctx context.Context, userID string) (*entity.WatchEarnState, error) {
	var watchModel model.WatchEarnState
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&watchModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		r.logger.Error("Database error when getting watch-earn state", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return nil, r.errorClassifier.mapStorageError(result.Error)
	}

	return &entity.WatchEarnState{
		UserID:       watchModel.UserID,
		TotalWatched: watchModel.TotalWatched,
		TotalEarned:  watchModel.TotalEarned,
		LastWatch:    watchModel.LastWatch,
	}, nil
}

// Create inserts the initial watch-earn row
func (r *WatchEarnRepository) Create(ctx context.Context, state *entity.WatchEarnState) error {
	now := r.timeProvider.Now()
	watchModel := model.WatchEarnState{
		UserID:       state.UserID,
		TotalWatched: state.TotalWatched,
		TotalEarned:  state.TotalEarned,
		LastWatch:    state.LastWatch,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result := r.db.WithContext(ctx).Create(&watchModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateAccount
		}
		r.logger.Error("Database error when creating watch-earn state", map[string]any{
			"userId": state.UserID,
			"error":  result.Error.Error(),
		})
		return r.errorClassifier.mapStorageError(result.Error)
	}
	return nil
}

// RecordWatch credits one rewarded view, guarded by last_watch still holding
// prevWatch so replays inside the cooldown cannot double-credit.
func (r *WatchEarnRepository) RecordWatch(ctx context.Context, userID string, prevWatch *time.Time, reward float64, now time.Time) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.WatchEarnState{})
	if prevWatch == nil {
		query = query.Where("user_id = ? AND last_watch IS NULL", userID)
	} else {
		query = query.Where("user_id = ? AND last_watch = ?", userID, *prevWatch)
	}

	result := query.Updates(map[string]interface{}{
		"total_watched": gorm.Expr("total_watched + 1"),
		"total_earned":  gorm.Expr("total_earned + ?", reward),
		"last_watch":    now,
		"updated_at":    now,
	})

	if result.Error != nil {
		r.logger.Error("Database error when recording watch", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return false, r.errorClassifier.mapStorageError(result.Error)
	}

	return result.RowsAffected > 0, nil
}
