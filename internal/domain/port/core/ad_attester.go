package core

import "context"

// AdAttester confirms that a rewarded ad was fully watched before an ad-gated
// bonus is granted. The ledger has no independent verification; the production
// implementation trusts the caller's completion flag, and tests substitute a
// fake. This is an explicit trust boundary.
type AdAttester interface {
	// Confirm returns nil when the ad view is attested complete.
	Confirm(ctx context.Context, userID string, completed bool) error
}
