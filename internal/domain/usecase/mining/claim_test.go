package mining

import (
	"context"
	"errors"
	"sync"
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

func TestUseCase_Claim(t *testing.T) {
	// Define fixed time for consistent testing
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	ctx := context.Background()
	userID := "user-123"

	t.Run("should grant the accrued reward", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		start := fixedTime.Add(-12 * time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockRepo.On("Get", mock.Anything, userID).Return(&entity.MiningState{
			UserID:       userID,
			MiningActive: true,
			LastStart:    &start,
		}, nil)
		mockRepo.On("ClaimAccrual", mock.Anything, userID, 2.4, (*time.Time)(nil), fixedTime).Return(true, nil)
		mockLogger.On("Info", "Mining reward claimed", mock.AnythingOfType("map[string]interface {}")).Return()

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		reward, err := useCase.Claim(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.InDelta(t, 2.4, reward, 1e-9)
		mockRepo.AssertExpectations(t)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should measure from the previous claim", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		start := fixedTime.Add(-12 * time.Hour)
		prevClaim := fixedTime.Add(-time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockRepo.On("Get", mock.Anything, userID).Return(&entity.MiningState{
			UserID:       userID,
			MiningActive: true,
			LastStart:    &start,
			LastClaim:    &prevClaim,
		}, nil)
		mockRepo.On("ClaimAccrual", mock.Anything, userID, 0.2, &prevClaim, fixedTime).Return(true, nil)
		mockLogger.On("Info", "Mining reward claimed", mock.AnythingOfType("map[string]interface {}")).Return()

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		reward, err := useCase.Claim(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.InDelta(t, 0.2, reward, 1e-9)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should return zero while idle", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockRepo.On("Get", mock.Anything, userID).Return(&entity.MiningState{UserID: userID}, nil)

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		reward, err := useCase.Claim(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Zero(t, reward)
		mockRepo.AssertNotCalled(t, "ClaimAccrual", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should return zero when nothing accrued yet", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockRepo.On("Get", mock.Anything, userID).Return(&entity.MiningState{
			UserID:       userID,
			MiningActive: true,
			LastStart:    &fixedTime,
		}, nil)

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		reward, err := useCase.Claim(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Zero(t, reward)
		mockRepo.AssertNotCalled(t, "ClaimAccrual", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should return zero when the checkpoint race is lost", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		start := fixedTime.Add(-12 * time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockRepo.On("Get", mock.Anything, userID).Return(&entity.MiningState{
			UserID:       userID,
			MiningActive: true,
			LastStart:    &start,
		}, nil)
		mockRepo.On("ClaimAccrual", mock.Anything, userID, 2.4, (*time.Time)(nil), fixedTime).Return(false, nil)
		mockLogger.On("Debug", "Claim lost checkpoint race", mock.AnythingOfType("map[string]interface {}")).Return()

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		reward, err := useCase.Claim(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Zero(t, reward)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should wrap write failures in a grant error", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		start := fixedTime.Add(-12 * time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockRepo.On("Get", mock.Anything, userID).Return(&entity.MiningState{
			UserID:       userID,
			MiningActive: true,
			LastStart:    &start,
		}, nil)
		mockRepo.On("ClaimAccrual", mock.Anything, userID, 2.4, (*time.Time)(nil), fixedTime).Return(false, errs.ErrStorageTimeout)
		mockLogger.On("Error", "Claim write failed", mock.AnythingOfType("map[string]interface {}")).Return()

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		reward, err := useCase.Claim(ctx, userID)

		// Assert
		assert.Zero(t, reward)
		assert.ErrorIs(t, err, errs.ErrStorageTimeout)
		var grantErr *errs.GrantError
		assert.True(t, errors.As(err, &grantErr))
		assert.Equal(t, "mining", grantErr.Engine)
		assert.InDelta(t, 2.4, grantErr.Amount, 1e-9)
	})

	t.Run("should reject empty user id", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		reward, err := useCase.Claim(ctx, "")

		// Assert
		assert.Zero(t, reward)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}

func TestUseCase_Status(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	userID := "user-123"

	t.Run("should project unclaimed accrual on top of the balance", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		start := fixedTime.Add(-12 * time.Hour)
		mockTimeProvider.On("Now").Return(fixedTime)
		mockRepo.On("Get", mock.Anything, userID).Return(&entity.MiningState{
			UserID:       userID,
			MiningActive: true,
			LastStart:    &start,
			Balance:      10.0,
		}, nil)

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		state, projected, err := useCase.Status(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.True(t, state.MiningActive)
		assert.InDelta(t, 12.4, projected, 1e-9)
	})

	t.Run("should return bare balance for idle state", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockRepo.On("Get", mock.Anything, userID).Return(&entity.MiningState{
			UserID:  userID,
			Balance: 3.5,
		}, nil)

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		state, projected, err := useCase.Status(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.False(t, state.MiningActive)
		assert.Equal(t, 3.5, projected)
	})

	t.Run("should surface a missing account", func(t *testing.T) {
		// Arrange
		mockRepo := new(persistence.MockMiningRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockRepo.On("Get", mock.Anything, userID).Return(nil, errs.ErrAccountNotFound)

		useCase := newTestUseCase(mockRepo, mockTimeProvider, mockLogger)

		// Act
		state, projected, err := useCase.Status(ctx, userID)

		// Assert
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
		assert.Nil(t, state)
		assert.Zero(t, projected)
	})
}

// memoryMiningRepo is a mutex-guarded in-memory store used to exercise the
// claim checkpoint race with real goroutines.
type memoryMiningRepo struct {
	mu    sync.Mutex
	state entity.MiningState
}

func (r *memoryMiningRepo) Get(ctx context.Context, userID string) (*entity.MiningState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.state
	return &state, nil
}

func (r *memoryMiningRepo) Create(ctx context.Context, state *entity.MiningState) error {
	return nil
}

func (r *memoryMiningRepo) StartSession(ctx context.Context, userID string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.MiningActive {
		return false, nil
	}
	r.state.MiningActive = true
	r.state.LastStart = &now
	r.state.LastClaim = nil
	return true, nil
}

func (r *memoryMiningRepo) StopSession(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.MiningActive = false
	return nil
}

func (r *memoryMiningRepo) ClaimAccrual(ctx context.Context, userID string, reward float64, prevClaim *time.Time, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.state.MiningActive {
		return false, nil
	}
	if (prevClaim == nil) != (r.state.LastClaim == nil) {
		return false, nil
	}
	if prevClaim != nil && !prevClaim.Equal(*r.state.LastClaim) {
		return false, nil
	}
	r.state.Balance += reward
	r.state.LastClaim = &now
	return true, nil
}

func (r *memoryMiningRepo) AddToBalance(ctx context.Context, userID string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Balance += amount
	return nil
}

func TestUseCase_Claim_Concurrent(t *testing.T) {
	// Many claims racing against the same checkpoint must grant exactly once.
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	start := fixedTime.Add(-time.Hour)
	userID := "user-123"

	repo := &memoryMiningRepo{state: entity.MiningState{
		UserID:       userID,
		MiningActive: true,
		LastStart:    &start,
	}}

	mockTimeProvider := new(core.MockTimeProvider)
	mockTimeProvider.On("Now").Return(fixedTime)
	mockLogger := new(core.MockLogger)
	mockLogger.On("Info", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Debug", mock.Anything, mock.Anything).Return().Maybe()

	useCase := NewUseCase(repo, entity.NewAccrualRates(86400, 4.8), mockTimeProvider, mockLogger, 5*coreport.Second)

	const claimers = 20
	rewards := make([]float64, claimers)
	var wg sync.WaitGroup
	wg.Add(claimers)
	for i := 0; i < claimers; i++ {
		go func(i int) {
			defer wg.Done()
			reward, err := useCase.Claim(context.Background(), userID)
			assert.NoError(t, err)
			rewards[i] = reward
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, reward := range rewards {
		if reward > 0 {
			granted++
			assert.InDelta(t, 0.2, reward, 1e-9)
		}
	}
	assert.Equal(t, 1, granted, "exactly one claim should win the checkpoint race")
	assert.InDelta(t, 0.2, repo.state.Balance, 1e-9)
}
