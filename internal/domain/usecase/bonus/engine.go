package bonus

import (
	"context"
	"time"

	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/domain/port/persistence"
)

// Rules holds the tunable parameters of the three bonus engines.
type Rules struct {
	StreakStep        float64       // per-day increment of the daily reward
	StreakWeeklyBonus float64       // flat reward at exactly day 7
	StreakCooldown    time.Duration // minimum gap between daily claims
	StreakResetAfter  time.Duration // gap at which the streak chain breaks
	BoostReward       float64
	BoostDailyLimit   int
	BoostResetAfter   time.Duration
	WatchReward       float64
	WatchCooldown     time.Duration
}

// DefaultRules returns the production reward schedule.
func DefaultRules() Rules {
	return Rules{
		StreakStep:        0.1,
		StreakWeeklyBonus: 2.0,
		StreakCooldown:    24 * time.Hour,
		StreakResetAfter:  48 * time.Hour,
		BoostReward:       0.5,
		BoostDailyLimit:   3,
		BoostResetAfter:   24 * time.Hour,
		WatchReward:       0.25,
		WatchCooldown:     60 * time.Second,
	}
}

// Engine runs the three rate-limited bonus generators. Each grant touches two
// rows - the engine's own counters and the mining balance - and both writes
// run inside one unit-of-work transaction, counter first, so a failure at any
// point loses an already-rate-limited grant rather than allowing an uncounted
// one.
type Engine struct {
	uow          persistence.UnitOfWork
	attester     coreport.AdAttester
	rules        Rules
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	storeTimeout coreport.Duration
}

// NewEngine creates a bonus engine.
func NewEngine(
	uow persistence.UnitOfWork,
	attester coreport.AdAttester,
	rules Rules,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	storeTimeout coreport.Duration,
) *Engine {
	if storeTimeout <= 0 {
		storeTimeout = 5 * coreport.Second
	}
	return &Engine{
		uow:          uow,
		attester:     attester,
		rules:        rules,
		timeProvider: timeProvider,
		logger:       logger,
		storeTimeout: storeTimeout,
	}
}

// grant applies a two-row bonus inside a transaction: consume runs first
// against the engine's rate-limit row and must report whether its guarded
// write matched; only then is the mining balance credited.
func (e *Engine) grant(ctx context.Context, userID, engine string, reward float64,
	consume func(txCtx context.Context) (bool, error)) error {

	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return err
	}

	taken, err := consume(txCtx)
	if err != nil {
		_ = e.uow.Rollback(txCtx)
		return err
	}
	if !taken {
		_ = e.uow.Rollback(txCtx)
		return errsConcurrent(userID, engine, e.logger)
	}

	if err := e.uow.Mining(txCtx).AddToBalance(txCtx, userID, reward); err != nil {
		_ = e.uow.Rollback(txCtx)
		e.logger.Error("Bonus balance credit failed, rolled back", map[string]any{
			"user_id": userID,
			"engine":  engine,
			"reward":  reward,
			"error":   err.Error(),
		})
		return err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		e.logger.Error("Bonus grant commit failed", map[string]any{
			"user_id": userID,
			"engine":  engine,
			"error":   err.Error(),
		})
		return err
	}

	e.logger.Info("Bonus granted", map[string]any{
		"user_id": userID,
		"engine":  engine,
		"reward":  reward,
	})
	return nil
}

// errsConcurrent logs and returns the lost-race result of a guarded counter
// write. Nothing was granted; the caller may retry.
func errsConcurrent(userID, engine string, logger coreport.Logger) error {
	logger.Debug("Bonus slot lost to concurrent claim", map[string]any{
		"user_id": userID,
		"engine":  engine,
	})
	return errs.ErrConcurrentModification
}
