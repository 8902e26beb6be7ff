package mining

import (
	"context"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/domain/port/persistence"
)

// UseCase owns the session state machine and the claim coordinator. All
// coordination between concurrent requests happens through the store's
// conditional writes; this type holds no per-user state.
type UseCase struct {
	miningRepo   persistence.MiningRepository
	rates        entity.AccrualRates
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	storeTimeout coreport.Duration
}

// NewUseCase creates the mining use case.
func NewUseCase(
	miningRepo persistence.MiningRepository,
	rates entity.AccrualRates,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	storeTimeout coreport.Duration,
) *UseCase {
	if storeTimeout <= 0 {
		storeTimeout = 5 * coreport.Second
	}
	return &UseCase{
		miningRepo:   miningRepo,
		rates:        rates,
		timeProvider: timeProvider,
		logger:       logger,
		storeTimeout: storeTimeout,
	}
}

// Status returns the current mining state together with the projected balance
// (authoritative balance plus unclaimed accrual). Read-only.
func (u *UseCase) Status(ctx context.Context, userID string) (*entity.MiningState, float64, error) {
	ctx, cancel := u.timeProvider.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	state, err := u.miningRepo.Get(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return state, u.rates.Project(state, u.timeProvider.Now()), nil
}
