package database

import (
	"context"
	"fmt"
	"strings"

	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/domain/port/persistence"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Begin starts a new database transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.logger.Debug("Beginning database transaction", nil)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback rolls back the current transaction
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Rolling back database transaction", nil)

	err := tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// Accounts returns an account repository bound to the current transaction
func (u *UnitOfWork) Accounts(ctx context.Context) persistence.AccountRepository {
	return repository.NewAccountRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Mining returns a mining repository bound to the current transaction
func (u *UnitOfWork) Mining(ctx context.Context) persistence.MiningRepository {
	return repository.NewMiningRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// DailyStreaks returns a daily streak repository bound to the current transaction
func (u *UnitOfWork) DailyStreaks(ctx context.Context) persistence.DailyStreakRepository {
	return repository.NewDailyStreakRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Boosts returns a boost repository bound to the current transaction
func (u *UnitOfWork) Boosts(ctx context.Context) persistence.BoostRepository {
	return repository.NewBoostRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// WatchEarn returns a watch-earn repository bound to the current transaction
func (u *UnitOfWork) WatchEarn(ctx context.Context) persistence.WatchEarnRepository {
	return repository.NewWatchEarnRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Referrals returns a referral repository bound to the current transaction
func (u *UnitOfWork) Referrals(ctx context.Context) persistence.ReferralRepository {
	return repository.NewReferralRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
