package bonus

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

func newTestEngine(uow *persistence.MockUnitOfWork, attester *core.MockAdAttester, timeProvider *core.MockTimeProvider, logger *core.MockLogger) *Engine {
	return NewEngine(uow, attester, DefaultRules(), timeProvider, logger, 5*coreport.Second)
}

func TestEngine_ClaimDaily(t *testing.T) {
	// Define fixed time for consistent testing
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	ctx := context.Background()
	userID := "user-123"

	t.Run("should start a fresh streak at day one", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.DailyRepo.On("Get", mock.Anything, userID).Return(&entity.DailyStreak{UserID: userID}, nil)
		mockUow.DailyRepo.On("Advance", mock.Anything, userID, (*time.Time)(nil), 1, 0.1, fixedTime).Return(true, nil)
		mockUow.MiningRepo.On("AddToBalance", mock.Anything, userID, 0.1).Return(nil)
		mockLogger.On("Info", "Bonus granted", mock.AnythingOfType("map[string]interface {}")).Return()

		engine := newTestEngine(mockUow, new(core.MockAdAttester), mockTimeProvider, mockLogger)

		// Act
		result, err := engine.ClaimDaily(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Streak)
		assert.InDelta(t, 0.1, result.Reward, 1e-9)
		assert.Equal(t, "2023-01-01T12:00:00.000Z", result.LastClaim)
		assert.Equal(t, 1, mockUow.Committed)
		assert.Zero(t, mockUow.RolledBack)
		mockUow.DailyRepo.AssertExpectations(t)
		mockUow.MiningRepo.AssertExpectations(t)
	})

	t.Run("should advance the streak after the cooldown", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		lastClaim := fixedTime.Add(-25 * time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.DailyRepo.On("Get", mock.Anything, userID).Return(&entity.DailyStreak{
			UserID:    userID,
			Streak:    2,
			LastClaim: &lastClaim,
		}, nil)
		mockUow.DailyRepo.On("Advance", mock.Anything, userID, &lastClaim, 3, 0.3, fixedTime).Return(true, nil)
		mockUow.MiningRepo.On("AddToBalance", mock.Anything, userID, 0.3).Return(nil)
		mockLogger.On("Info", "Bonus granted", mock.AnythingOfType("map[string]interface {}")).Return()

		engine := newTestEngine(mockUow, new(core.MockAdAttester), mockTimeProvider, mockLogger)

		// Act
		result, err := engine.ClaimDaily(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 3, result.Streak)
		assert.InDelta(t, 0.3, result.Reward, 1e-9)
		mockUow.DailyRepo.AssertExpectations(t)
	})

	t.Run("should reject a claim inside the cooldown", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		lastClaim := fixedTime.Add(-23 * time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.DailyRepo.On("Get", mock.Anything, userID).Return(&entity.DailyStreak{
			UserID:    userID,
			Streak:    2,
			LastClaim: &lastClaim,
		}, nil)

		engine := newTestEngine(mockUow, new(core.MockAdAttester), mockTimeProvider, mockLogger)

		// Act
		result, err := engine.ClaimDaily(ctx, userID)

		// Assert
		assert.ErrorIs(t, err, errs.ErrCooldown)
		assert.Nil(t, result)
		assert.Zero(t, mockUow.Began)
		mockUow.DailyRepo.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should break the chain after the reset window", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		lastClaim := fixedTime.Add(-50 * time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.DailyRepo.On("Get", mock.Anything, userID).Return(&entity.DailyStreak{
			UserID:    userID,
			Streak:    5,
			LastClaim: &lastClaim,
		}, nil)
		mockUow.DailyRepo.On("Advance", mock.Anything, userID, &lastClaim, 1, 0.1, fixedTime).Return(true, nil)
		mockUow.MiningRepo.On("AddToBalance", mock.Anything, userID, 0.1).Return(nil)
		mockLogger.On("Info", "Bonus granted", mock.AnythingOfType("map[string]interface {}")).Return()

		engine := newTestEngine(mockUow, new(core.MockAdAttester), mockTimeProvider, mockLogger)

		// Act
		result, err := engine.ClaimDaily(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Streak)
		assert.InDelta(t, 0.1, result.Reward, 1e-9)
	})

	t.Run("should pay the flat weekly bonus at day seven", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		lastClaim := fixedTime.Add(-24 * time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.DailyRepo.On("Get", mock.Anything, userID).Return(&entity.DailyStreak{
			UserID:    userID,
			Streak:    6,
			LastClaim: &lastClaim,
		}, nil)
		mockUow.DailyRepo.On("Advance", mock.Anything, userID, &lastClaim, 7, 2.0, fixedTime).Return(true, nil)
		mockUow.MiningRepo.On("AddToBalance", mock.Anything, userID, 2.0).Return(nil)
		mockLogger.On("Info", "Bonus granted", mock.AnythingOfType("map[string]interface {}")).Return()

		engine := newTestEngine(mockUow, new(core.MockAdAttester), mockTimeProvider, mockLogger)

		// Act
		result, err := engine.ClaimDaily(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 7, result.Streak)
		assert.Equal(t, 2.0, result.Reward)
	})

	t.Run("should resume the step formula past day seven", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		lastClaim := fixedTime.Add(-24 * time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.DailyRepo.On("Get", mock.Anything, userID).Return(&entity.DailyStreak{
			UserID:    userID,
			Streak:    7,
			LastClaim: &lastClaim,
		}, nil)
		mockUow.DailyRepo.On("Advance", mock.Anything, userID, &lastClaim, 8, 0.8, fixedTime).Return(true, nil)
		mockUow.MiningRepo.On("AddToBalance", mock.Anything, userID, 0.8).Return(nil)
		mockLogger.On("Info", "Bonus granted", mock.AnythingOfType("map[string]interface {}")).Return()

		engine := newTestEngine(mockUow, new(core.MockAdAttester), mockTimeProvider, mockLogger)

		// Act
		result, err := engine.ClaimDaily(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 8, result.Streak)
		assert.InDelta(t, 0.8, result.Reward, 1e-9)
	})

	t.Run("should report cooldown when the advance race is lost", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.DailyRepo.On("Get", mock.Anything, userID).Return(&entity.DailyStreak{UserID: userID}, nil)
		mockUow.DailyRepo.On("Advance", mock.Anything, userID, (*time.Time)(nil), 1, 0.1, fixedTime).Return(false, nil)
		mockLogger.On("Debug", "Bonus slot lost to concurrent claim", mock.AnythingOfType("map[string]interface {}")).Return()

		engine := newTestEngine(mockUow, new(core.MockAdAttester), mockTimeProvider, mockLogger)

		// Act
		result, err := engine.ClaimDaily(ctx, userID)

		// Assert
		assert.ErrorIs(t, err, errs.ErrCooldown)
		assert.Nil(t, result)
		assert.Equal(t, 1, mockUow.RolledBack)
		assert.Zero(t, mockUow.Committed)
		mockUow.MiningRepo.AssertNotCalled(t, "AddToBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should roll back when the balance credit fails", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockUow.DailyRepo.On("Get", mock.Anything, userID).Return(&entity.DailyStreak{UserID: userID}, nil)
		mockUow.DailyRepo.On("Advance", mock.Anything, userID, (*time.Time)(nil), 1, 0.1, fixedTime).Return(true, nil)
		mockUow.MiningRepo.On("AddToBalance", mock.Anything, userID, 0.1).Return(errs.ErrStorage)
		mockLogger.On("Error", "Bonus balance credit failed, rolled back", mock.AnythingOfType("map[string]interface {}")).Return()

		engine := newTestEngine(mockUow, new(core.MockAdAttester), mockTimeProvider, mockLogger)

		// Act
		result, err := engine.ClaimDaily(ctx, userID)

		// Assert
		assert.ErrorIs(t, err, errs.ErrStorage)
		assert.Nil(t, result)
		assert.Equal(t, 1, mockUow.RolledBack)
		assert.Zero(t, mockUow.Committed)
	})

	t.Run("should reject empty user id", func(t *testing.T) {
		// Arrange
		mockUow := persistence.NewMockUnitOfWork()
		engine := newTestEngine(mockUow, new(core.MockAdAttester), new(core.MockTimeProvider), new(core.MockLogger))

		// Act
		result, err := engine.ClaimDaily(ctx, "")

		// Assert
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, result)
	})
}
