package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
)

// MockAccountRepository is a testify mock for the AccountRepository port
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, userID string) (*entity.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByReferralCode(ctx context.Context, code string) (*entity.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) AssignReferralCode(ctx context.Context, userID, code string) (bool, error) {
	args := m.Called(ctx, userID, code)
	return args.Bool(0), args.Error(1)
}

// MockMiningRepository is a testify mock for the MiningRepository port
type MockMiningRepository struct {
	mock.Mock
}

func (m *MockMiningRepository) Get(ctx context.Context, userID string) (*entity.MiningState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MiningState), args.Error(1)
}

func (m *MockMiningRepository) Create(ctx context.Context, state *entity.MiningState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockMiningRepository) StartSession(ctx context.Context, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockMiningRepository) StopSession(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockMiningRepository) ClaimAccrual(ctx context.Context, userID string, reward float64, prevClaim *time.Time, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, reward, prevClaim, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockMiningRepository) AddToBalance(ctx context.Context, userID string, amount float64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

// MockDailyStreakRepository is a testify mock for the DailyStreakRepository port
type MockDailyStreakRepository struct {
	mock.Mock
}

func (m *MockDailyStreakRepository) Get(ctx context.Context, userID string) (*entity.DailyStreak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DailyStreak), args.Error(1)
}

func (m *MockDailyStreakRepository) Create(ctx context.Context, state *entity.DailyStreak) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockDailyStreakRepository) Advance(ctx context.Context, userID string, prevClaim *time.Time, streak int, reward float64, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, prevClaim, streak, reward, now)
	return args.Bool(0), args.Error(1)
}

// MockBoostRepository is a testify mock for the BoostRepository port
type MockBoostRepository struct {
	mock.Mock
}

func (m *MockBoostRepository) Get(ctx context.Context, userID string) (*entity.BoostState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BoostState), args.Error(1)
}

func (m *MockBoostRepository) Create(ctx context.Context, state *entity.BoostState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockBoostRepository) ResetWindow(ctx context.Context, userID string, prevReset *time.Time, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, prevReset, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockBoostRepository) ConsumeSlot(ctx context.Context, userID string, expectedUsed int, reward float64) (bool, error) {
	args := m.Called(ctx, userID, expectedUsed, reward)
	return args.Bool(0), args.Error(1)
}

// MockWatchEarnRepository is a testify mock for the WatchEarnRepository port
type MockWatchEarnRepository struct {
	mock.Mock
}

func (m *MockWatchEarnRepository) Get(ctx context.Context, userID string) (*entity.WatchEarnState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WatchEarnState), args.Error(1)
}

func (m *MockWatchEarnRepository) Create(ctx context.Context, state *entity.WatchEarnState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockWatchEarnRepository) RecordWatch(ctx context.Context, userID string, prevWatch *time.Time, reward float64, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, prevWatch, reward, now)
	return args.Bool(0), args.Error(1)
}

// MockReferralRepository is a testify mock for the ReferralRepository port
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) Get(ctx context.Context, userID string) (*entity.ReferralState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReferralState), args.Error(1)
}

func (m *MockReferralRepository) Create(ctx context.Context, state *entity.ReferralState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockReferralRepository) AppendReferred(ctx context.Context, ownerID, newUserID string, expectedTotal int) (bool, error) {
	args := m.Called(ctx, ownerID, newUserID, expectedTotal)
	return args.Bool(0), args.Error(1)
}
