package persistence

import (
	"context"
)

// UnitOfWork coordinates writes that span two rows - a bonus engine's
// rate-limit row and the mining balance - so a grant is applied as a single
// logical unit even though it is physically two tables.
//
// Repositories obtained through a context returned by Begin are bound to that
// transaction; with a plain context they operate on the base connection.
type UnitOfWork interface {
	// Begin starts a transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	Accounts(ctx context.Context) AccountRepository
	Mining(ctx context.Context) MiningRepository
	DailyStreaks(ctx context.Context) DailyStreakRepository
	Boosts(ctx context.Context) BoostRepository
	WatchEarn(ctx context.Context) WatchEarnRepository
	Referrals(ctx context.Context) ReferralRepository
}
