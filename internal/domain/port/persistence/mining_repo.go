package persistence

import (
	"context"
	"time"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
)

// MiningRepository persists the authoritative balance row. Start and Claim are
// read-compute-write sequences with financial consequences if interleaved, so
// both are expressed as conditional updates: the boolean result reports
// whether the guarded write matched a row, and a false result means another
// request advanced the state first, never that anything was partially applied.
type MiningRepository interface {
	// Get retrieves the mining state for a user.
	//
	// Possible errors: ErrAccountNotFound, ErrStorage, ErrStorageTimeout
	Get(ctx context.Context, userID string) (*entity.MiningState, error)

	// Create inserts the initial mining state row at account provisioning.
	Create(ctx context.Context, state *entity.MiningState) error

	// StartSession transitions Idle -> Mining with a guard on
	// mining_active = false and establishes now as both last_start and the
	// initial accrual checkpoint. Returns false if the session was already
	// active at write time.
	StartSession(ctx context.Context, userID string, now time.Time) (bool, error)

	// StopSession transitions to Idle with a blind idempotent write; balance
	// and checkpoint are left untouched. Returns ErrAccountNotFound if no row
	// matched.
	StopSession(ctx context.Context, userID string) error

	// ClaimAccrual credits reward to the balance and advances last_claim to
	// now, guarded by last_claim still holding prevCheckpointClaim (nil
	// matches a NULL column, i.e. no claim this session yet). Returns false
	// if a concurrent claim already moved the checkpoint.
	ClaimAccrual(ctx context.Context, userID string, reward float64, prevClaim *time.Time, now time.Time) (bool, error)

	// AddToBalance credits a bonus reward to the balance unconditionally.
	// Bonus engines rate-limit on their own rows before calling this.
	AddToBalance(ctx context.Context, userID string, amount float64) error
}
