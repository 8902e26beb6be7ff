package migration

import (
	"context"
	"errors"

	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
	accountUseCase "github.com/astromine-app/reward-ledger/internal/domain/usecase/account"
	"github.com/google/uuid"
)

// Demo usernames provisioned in development environments
var demoUsernames = []string{
	"alice",
	"bob",
	"carol",
}

// SeedDemoAccounts provisions a few accounts so a fresh development database
// has something to poke at. Account ids are random; re-running the seed adds
// new accounts rather than failing on existing ones.
func SeedDemoAccounts(ctx context.Context, accounts *accountUseCase.UseCase) error {
	for _, username := range demoUsernames {
		_, err := accounts.CreateAccount(ctx, accountUseCase.CreateAccountRequest{
			UserID:   uuid.NewString(),
			Username: username,
		})
		if err != nil && !errors.Is(err, errs.ErrDuplicateAccount) {
			return err
		}
	}

	return nil
}
