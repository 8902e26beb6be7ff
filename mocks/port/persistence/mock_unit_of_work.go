package persistence

import (
	"context"

	"github.com/astromine-app/reward-ledger/internal/domain/port/persistence"
)

// MockUnitOfWork is a fake unit of work handing out the embedded repository
// mocks. Transactions are recorded, not executed: tests assert on the commit
// and rollback counters.
type MockUnitOfWork struct {
	AccountsRepo  *MockAccountRepository
	MiningRepo    *MockMiningRepository
	DailyRepo     *MockDailyStreakRepository
	BoostRepo     *MockBoostRepository
	WatchRepo     *MockWatchEarnRepository
	ReferralsRepo *MockReferralRepository

	BeginErr   error
	CommitErr  error
	Began      int
	Committed  int
	RolledBack int
}

// NewMockUnitOfWork builds a fake UoW with fresh repository mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		AccountsRepo:  new(MockAccountRepository),
		MiningRepo:    new(MockMiningRepository),
		DailyRepo:     new(MockDailyStreakRepository),
		BoostRepo:     new(MockBoostRepository),
		WatchRepo:     new(MockWatchEarnRepository),
		ReferralsRepo: new(MockReferralRepository),
	}
}

func (u *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if u.BeginErr != nil {
		return ctx, u.BeginErr
	}
	u.Began++
	return ctx, nil
}

func (u *MockUnitOfWork) Commit(ctx context.Context) error {
	u.Committed++
	return u.CommitErr
}

func (u *MockUnitOfWork) Rollback(ctx context.Context) error {
	u.RolledBack++
	return nil
}

func (u *MockUnitOfWork) Accounts(ctx context.Context) persistence.AccountRepository {
	return u.AccountsRepo
}

func (u *MockUnitOfWork) Mining(ctx context.Context) persistence.MiningRepository {
	return u.MiningRepo
}

func (u *MockUnitOfWork) DailyStreaks(ctx context.Context) persistence.DailyStreakRepository {
	return u.DailyRepo
}

func (u *MockUnitOfWork) Boosts(ctx context.Context) persistence.BoostRepository {
	return u.BoostRepo
}

func (u *MockUnitOfWork) WatchEarn(ctx context.Context) persistence.WatchEarnRepository {
	return u.WatchRepo
}

func (u *MockUnitOfWork) Referrals(ctx context.Context) persistence.ReferralRepository {
	return u.ReferralsRepo
}
