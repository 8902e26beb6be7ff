package attester

import (
	"context"

	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
	"github.com/astromine-app/reward-ledger/internal/domain/port/core"
)

// TrustedAttester accepts the client's completion flag at face value.
// There is no server-side ad network callback, so a truthful flag is all
// the ledger can check. Swap this adapter out if an SSV integration lands.
type TrustedAttester struct {
	logger core.Logger
}

// NewTrustedAttester creates an attester that trusts the caller
func NewTrustedAttester(logger core.Logger) core.AdAttester {
	return &TrustedAttester{logger: logger}
}

// Confirm returns ErrAdNotCompleted when the caller reports an unfinished ad
func (a *TrustedAttester) Confirm(ctx context.Context, userID string, completed bool) error {
	if !completed {
		a.logger.Debug("ad view not completed", map[string]any{
			"userId": userID,
		})
		return errs.ErrAdNotCompleted
	}
	return nil
}
