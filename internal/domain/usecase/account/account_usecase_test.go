package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/mocks/port/core"
	"github.com/astromine-app/reward-ledger/mocks/port/persistence"
)

func newTestUseCase(uow *persistence.MockUnitOfWork, timeProvider *core.MockTimeProvider, logger *core.MockLogger) *UseCase {
	return NewUseCase(uow, timeProvider, logger, 5*coreport.Second, entity.MinReferralCodeLength, 5)
}

// expectProvisioning registers the six row inserts of a successful provision.
func expectProvisioning(uow *persistence.MockUnitOfWork) {
	uow.AccountsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil)
	uow.MiningRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.MiningState")).Return(nil)
	uow.DailyRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.DailyStreak")).Return(nil)
	uow.BoostRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.BoostState")).Return(nil)
	uow.WatchRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.WatchEarnState")).Return(nil)
	uow.ReferralsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ReferralState")).Return(nil)
}

func TestUseCase_CreateAccount(t *testing.T) {
	// Define fixed time for consistent testing
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	ctx := context.Background()
	userID := "user-123"

	t.Run("should provision the account and all sub-records", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		expectProvisioning(mockUow)
		mockLogger.On("Info", "Account provisioned", mock.AnythingOfType("map[string]interface {}")).Return()

		useCase := newTestUseCase(mockUow, mockTimeProvider, mockLogger)

		// Act
		created, err := useCase.CreateAccount(ctx, CreateAccountRequest{
			UserID:   userID,
			Username: "miner",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, userID, created.UserID)
		assert.Equal(t, "miner", created.Username)
		assert.Len(t, created.ReferralCode, entity.MinReferralCodeLength)
		assert.Empty(t, created.ReferredBy)
		assert.Equal(t, fixedTime, created.CreatedAt)
		assert.Equal(t, 1, mockUow.Committed)
		assert.Zero(t, mockUow.RolledBack)
		mockUow.AccountsRepo.AssertExpectations(t)
		mockUow.ReferralsRepo.AssertExpectations(t)
	})

	t.Run("should retry with a new code on collision", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.AccountsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(errs.ErrReferralCodeTaken).Once()
		mockUow.AccountsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil).Once()
		mockUow.MiningRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.MiningState")).Return(nil)
		mockUow.DailyRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.DailyStreak")).Return(nil)
		mockUow.BoostRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.BoostState")).Return(nil)
		mockUow.WatchRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.WatchEarnState")).Return(nil)
		mockUow.ReferralsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ReferralState")).Return(nil)
		mockLogger.On("Warn", "Referral code collision, regenerating", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Info", "Account provisioned", mock.AnythingOfType("map[string]interface {}")).Return()

		useCase := newTestUseCase(mockUow, mockTimeProvider, mockLogger)

		// Act
		created, err := useCase.CreateAccount(ctx, CreateAccountRequest{UserID: userID})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, 2, mockUow.Began)
		assert.Equal(t, 1, mockUow.RolledBack)
		assert.Equal(t, 1, mockUow.Committed)
	})

	t.Run("should give up after exhausting code attempts", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.AccountsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(errs.ErrReferralCodeTaken)
		mockLogger.On("Warn", "Referral code collision, regenerating", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Error", "Referral code space saturated", mock.AnythingOfType("map[string]interface {}")).Return()

		useCase := newTestUseCase(mockUow, mockTimeProvider, mockLogger)

		// Act
		created, err := useCase.CreateAccount(ctx, CreateAccountRequest{UserID: userID})

		// Assert
		assert.ErrorIs(t, err, errs.ErrReferralExhausted)
		assert.Nil(t, created)
		assert.Equal(t, 5, mockUow.RolledBack)
		assert.Zero(t, mockUow.Committed)
	})

	t.Run("should link a known referrer and register the referral", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		referrer := &entity.Account{UserID: "referrer-1", ReferralCode: "REF123"}
		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.AccountsRepo.On("GetByReferralCode", mock.Anything, "REF123").Return(referrer, nil)
		expectProvisioning(mockUow)
		mockUow.ReferralsRepo.On("Get", mock.Anything, "referrer-1").Return(&entity.ReferralState{
			UserID:        "referrer-1",
			ReferredUsers: []string{},
		}, nil)
		mockUow.ReferralsRepo.On("AppendReferred", mock.Anything, "referrer-1", userID, 0).Return(true, nil)
		mockLogger.On("Info", "Account provisioned", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Info", "Referral registered", mock.AnythingOfType("map[string]interface {}")).Return()

		useCase := newTestUseCase(mockUow, mockTimeProvider, mockLogger)

		// Act
		created, err := useCase.CreateAccount(ctx, CreateAccountRequest{
			UserID:     userID,
			ReferredBy: "REF123",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "REF123", created.ReferredBy)
		mockUow.ReferralsRepo.AssertExpectations(t)
	})

	t.Run("should proceed unlinked on an unknown referral code", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.AccountsRepo.On("GetByReferralCode", mock.Anything, "NOBODY").Return(nil, errs.ErrReferralNotFound)
		expectProvisioning(mockUow)
		mockLogger.On("Warn", "Unknown referral code at registration, proceeding unlinked", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Info", "Account provisioned", mock.AnythingOfType("map[string]interface {}")).Return()

		useCase := newTestUseCase(mockUow, mockTimeProvider, mockLogger)

		// Act
		created, err := useCase.CreateAccount(ctx, CreateAccountRequest{
			UserID:     userID,
			ReferredBy: "NOBODY",
		})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, created.ReferredBy)
		mockUow.ReferralsRepo.AssertNotCalled(t, "AppendReferred", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should surface a duplicate account", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.AccountsRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(errs.ErrDuplicateAccount)

		useCase := newTestUseCase(mockUow, mockTimeProvider, mockLogger)

		// Act
		created, err := useCase.CreateAccount(ctx, CreateAccountRequest{UserID: userID})

		// Assert
		assert.ErrorIs(t, err, errs.ErrDuplicateAccount)
		assert.Nil(t, created)
		assert.Equal(t, 1, mockUow.RolledBack)
	})

	t.Run("should reject empty user id", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		useCase := newTestUseCase(mockUow, new(core.MockTimeProvider), new(core.MockLogger))

		// Act
		created, err := useCase.CreateAccount(ctx, CreateAccountRequest{})

		// Assert
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, created)
	})
}

func TestUseCase_GetUserData(t *testing.T) {
	ctx := context.Background()
	userID := "user-123"

	t.Run("should assemble the combined view", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		acct := &entity.Account{UserID: userID, ReferralCode: "ABC123"}
		mockUow.AccountsRepo.On("GetByID", mock.Anything, userID).Return(acct, nil)
		mockUow.MiningRepo.On("Get", mock.Anything, userID).Return(&entity.MiningState{UserID: userID, Balance: 2.5}, nil)
		mockUow.DailyRepo.On("Get", mock.Anything, userID).Return(&entity.DailyStreak{UserID: userID, Streak: 3}, nil)
		mockUow.BoostRepo.On("Get", mock.Anything, userID).Return(&entity.BoostState{UserID: userID, UsedToday: 1}, nil)
		mockUow.WatchRepo.On("Get", mock.Anything, userID).Return(&entity.WatchEarnState{UserID: userID, TotalWatched: 4}, nil)
		mockUow.ReferralsRepo.On("Get", mock.Anything, userID).Return(&entity.ReferralState{UserID: userID, TotalReferred: 2}, nil)

		useCase := newTestUseCase(mockUow, mockTimeProvider, mockLogger)

		// Act
		data, err := useCase.GetUserData(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, acct, data.Account)
		assert.Equal(t, 2.5, data.Mining.Balance)
		assert.Equal(t, 3, data.Daily.Streak)
		assert.Equal(t, 1, data.Boost.UsedToday)
		assert.Equal(t, 4, data.WatchEarn.TotalWatched)
		assert.Equal(t, 2, data.Referrals.TotalReferred)
	})

	t.Run("should surface a missing account", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockUow.AccountsRepo.On("GetByID", mock.Anything, userID).Return(nil, errs.ErrAccountNotFound)

		useCase := newTestUseCase(mockUow, new(core.MockTimeProvider), new(core.MockLogger))

		// Act
		data, err := useCase.GetUserData(ctx, userID)

		// Assert
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
		assert.Nil(t, data)
		mockUow.MiningRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("should surface a missing sub-record", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		acct := &entity.Account{UserID: userID, ReferralCode: "ABC123"}
		mockUow.AccountsRepo.On("GetByID", mock.Anything, userID).Return(acct, nil)
		mockUow.MiningRepo.On("Get", mock.Anything, userID).Return(nil, errs.ErrAccountNotFound)

		useCase := newTestUseCase(mockUow, new(core.MockTimeProvider), new(core.MockLogger))

		// Act
		data, err := useCase.GetUserData(ctx, userID)

		// Assert
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
		assert.Nil(t, data)
	})

	t.Run("should reject empty user id", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		useCase := newTestUseCase(mockUow, new(core.MockTimeProvider), new(core.MockLogger))

		// Act
		data, err := useCase.GetUserData(ctx, "")

		// Assert
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, data)
	})
}
