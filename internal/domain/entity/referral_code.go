package entity

import (
	"crypto/rand"
	"fmt"

	errs "github.com/astromine-app/reward-ledger/internal/domain/error"
)

// Referral codes are uppercase base-36 strings between 6 and 8 characters.
const (
	referralAlphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	MinReferralCodeLength = 6
	MaxReferralCodeLength = 8
)

// NewReferralCode generates a random referral code of the given length.
// Uniqueness is enforced by the store, not here; callers retry on collision.
func NewReferralCode(length int) (string, error) {
	if length < MinReferralCodeLength || length > MaxReferralCodeLength {
		return "", fmt.Errorf("%w: length must be %d-%d, got %d",
			errs.ErrInvalidReferralCode, MinReferralCodeLength, MaxReferralCodeLength, length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("referral code entropy: %w", err)
	}
	for i, b := range buf {
		buf[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return string(buf), nil
}

// ValidateReferralCode checks the code's length and alphabet.
func ValidateReferralCode(code string) error {
	if len(code) < MinReferralCodeLength || len(code) > MaxReferralCodeLength {
		return fmt.Errorf("%w: bad length %d", errs.ErrInvalidReferralCode, len(code))
	}
	for _, c := range code {
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return fmt.Errorf("%w: invalid character %q", errs.ErrInvalidReferralCode, c)
		}
	}
	return nil
}
