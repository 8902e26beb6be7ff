package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Test to ensure all base error types are defined properly
	if ErrInvalidUserID.Error() != "user id must not be empty" {
		t.Errorf("ErrInvalidUserID has unexpected message: %s", ErrInvalidUserID.Error())
	}
	if ErrCooldown.Error() != "bonus is on cooldown" {
		t.Errorf("ErrCooldown has unexpected message: %s", ErrCooldown.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidUserID", ErrInvalidUserID, 4001},
		{"InvalidReferralCode", ErrInvalidReferralCode, 4002},
		{"AdNotCompleted", ErrAdNotCompleted, 4003},
		{"AlreadyActive", ErrAlreadyActive, 4090},
		{"Cooldown", ErrCooldown, 4091},
		{"ConcurrentModification", ErrConcurrentModification, 4092},
		{"LimitReached", ErrLimitReached, 4290},
		{"AccountNotFound", ErrAccountNotFound, 4040},
		{"ReferralNotFound", ErrReferralNotFound, 4041},
		{"DuplicateAccount", ErrDuplicateAccount, 4094},
		{"ReferralExhausted", ErrReferralExhausted, 5003},
		{"StorageTimeout", ErrStorageTimeout, 5002},
		{"Storage", ErrStorage, 5001},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrCooldown), 4091},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestGrantError(t *testing.T) {
	grantErr := &GrantError{
		UserID: "user-123",
		Engine: "daily",
		Amount: 0.5,
		Err:    ErrCooldown,
	}

	// Test Error method
	expectedErrMsg := "reward grant failed for user user-123 (engine: daily, amount: 0.5): bonus is on cooldown"
	if grantErr.Error() != expectedErrMsg {
		t.Errorf("GrantError.Error() = %s, want %s", grantErr.Error(), expectedErrMsg)
	}

	// Test Unwrap method
	if !errors.Is(grantErr, ErrCooldown) {
		t.Error("GrantError should unwrap to its base error")
	}

	// Test LogFields method
	fields := grantErr.LogFields()
	if fields["user_id"] != "user-123" {
		t.Errorf("LogFields user_id = %v, want user-123", fields["user_id"])
	}
	if fields["engine"] != "daily" {
		t.Errorf("LogFields engine = %v, want daily", fields["engine"])
	}
	if fields["error_code"] != CodeCooldown {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeCooldown)
	}

	// Test NewGrantError constructor
	err := NewGrantError("user-456", "mining", 1.2, ErrStorage)
	var ge *GrantError
	if !errors.As(err, &ge) {
		t.Fatal("NewGrantError should return a *GrantError")
	}
	if ge.Engine != "mining" || ge.Amount != 1.2 {
		t.Errorf("NewGrantError fields = %+v", ge)
	}
}

func TestErrorPredicates(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		predicate func(error) bool
		expected  bool
	}{
		{"AlreadyActive is business rejection", ErrAlreadyActive, IsBusinessRejection, true},
		{"Cooldown is business rejection", ErrCooldown, IsBusinessRejection, true},
		{"LimitReached is business rejection", ErrLimitReached, IsBusinessRejection, true},
		{"AdNotCompleted is business rejection", ErrAdNotCompleted, IsBusinessRejection, true},
		{"Storage is not business rejection", ErrStorage, IsBusinessRejection, false},
		{"AccountNotFound is not found", ErrAccountNotFound, IsNotFoundError, true},
		{"ReferralNotFound is not found", ErrReferralNotFound, IsNotFoundError, true},
		{"Cooldown is not not-found", ErrCooldown, IsNotFoundError, false},
		{"Storage is storage error", ErrStorage, IsStorageError, true},
		{"StorageTimeout is storage error", ErrStorageTimeout, IsStorageError, true},
		{"Cooldown is not storage error", ErrCooldown, IsStorageError, false},
		{"ConcurrentModification matches", ErrConcurrentModification, IsConcurrentModificationError, true},
		{"Wrapped concurrent modification matches", fmt.Errorf("claim: %w", ErrConcurrentModification), IsConcurrentModificationError, true},
		{"Storage is not concurrent modification", ErrStorage, IsConcurrentModificationError, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.predicate(tc.err); got != tc.expected {
				t.Errorf("predicate(%v) = %v, want %v", tc.err, got, tc.expected)
			}
		})
	}
}
