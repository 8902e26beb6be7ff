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

// MiningRepository implements persistence.MiningRepository using GORM.
// Session transitions and claims are single guarded UPDATE statements; the
// row count tells the caller whether its snapshot was still current.
type MiningRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewMiningRepository creates a new MiningRepository instance
func NewMiningRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *MiningRepository {
	return &MiningRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *MiningRepository) handleDatabaseError(operation string, err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}
	r.logger.Error("Database error in mining state "+operation, map[string]any{
		"userId": userID,
		"error":  err.Error(),
	})
	return r.errorClassifier.mapStorageError(err)
}

// Get retrieves the mining state for a user
func (r *MiningRepository) Get(ctx context.Context, userID string) (*entity.MiningState, error) {
	var stateModel model.MiningState
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stateModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("get", result.Error, userID)
	}

	return &entity.MiningState{
		UserID:       stateModel.UserID,
		MiningActive: stateModel.MiningActive,
		LastStart:    stateModel.LastStart,
		LastClaim:    stateModel.LastClaim,
		Balance:      stateModel.Balance,
	}, nil
}

// Create inserts the initial mining state row
func (r *MiningRepository) Create(ctx context.Context, state *entity.MiningState) error {
	now := r.timeProvider.Now()
	stateModel := model.MiningState{
		UserID:       state.UserID,
		MiningActive: state.MiningActive,
		LastStart:    state.LastStart,
		LastClaim:    state.LastClaim,
		Balance:      state.Balance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result := r.db.WithContext(ctx).Create(&stateModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateAccount
		}
		return r.handleDatabaseError("create", result.Error, state.UserID)
	}
	return nil
}

// StartSession transitions Idle -> Mining, guarded on mining_active = false.
// The claim checkpoint moves with the session: last_claim is cleared so
// accrual measures from last_start.
func (r *MiningRepository) StartSession(ctx context.Context, userID string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.MiningState{}).
		Where("user_id = ? AND mining_active = ?", userID, false).
		Updates(map[string]interface{}{
			"mining_active": true,
			"last_start":    now,
			"last_claim":    nil,
			"updated_at":    now,
		})

	if result.Error != nil {
		return false, r.handleDatabaseError("start", result.Error, userID)
	}

	return result.RowsAffected > 0, nil
}

// StopSession transitions to Idle unconditionally. Unclaimed accrual is
// forfeited by leaving balance untouched.
func (r *MiningRepository) StopSession(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Model(&model.MiningState{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"mining_active": false,
			"updated_at":    r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("stop", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}

// ClaimAccrual credits reward and advances the checkpoint, guarded by
// last_claim still holding the snapshot the reward was computed from. A nil
// prevClaim matches the NULL column of a session with no claims yet.
func (r *MiningRepository) ClaimAccrual(ctx context.Context, userID string, reward float64, prevClaim *time.Time, now time.Time) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.MiningState{})
	if prevClaim == nil {
		query = query.Where("user_id = ? AND mining_active = ? AND last_claim IS NULL", userID, true)
	} else {
		query = query.Where("user_id = ? AND mining_active = ? AND last_claim = ?", userID, true, *prevClaim)
	}

	result := query.Updates(map[string]interface{}{
		"balance":    gorm.Expr("balance + ?", reward),
		"last_claim": now,
		"updated_at": now,
	})

	if result.Error != nil {
		return false, r.handleDatabaseError("claim", result.Error, userID)
	}

	return result.RowsAffected > 0, nil
}

// AddToBalance credits a bonus reward to the balance unconditionally
func (r *MiningRepository) AddToBalance(ctx context.Context, userID string, amount float64) error {
	result := r.db.WithContext(ctx).Model(&model.MiningState{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("credit", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}
