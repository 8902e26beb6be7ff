package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client and business-rule rejections
	CodeInvalidUserID       = 4001
	CodeInvalidReferralCode = 4002
	CodeAdNotCompleted      = 4003
	CodeAlreadyActive       = 4090
	CodeCooldown            = 4091
	CodeConcurrentUpdate    = 4092
	CodeLimitReached        = 4290
	CodeAccountNotFound     = 4040
	CodeReferralNotFound    = 4041
	CodeDuplicateAccount    = 4094

	// 5xxx - Server and infrastructure errors
	CodeInternalServer    = 5000
	CodeStorage           = 5001
	CodeStorageTimeout    = 5002
	CodeReferralExhausted = 5003
)

var (
	// ErrInvalidUserID is returned when the user id is empty
	ErrInvalidUserID = errors.New("user id must not be empty")

	// ErrInvalidReferralCode is returned when a referral code fails validation
	ErrInvalidReferralCode = errors.New("invalid referral code")

	// ErrAccountNotFound is returned when an account or one of its sub-records
	// is missing; rows are provisioned at creation, so this is a provisioning
	// defect rather than a user error
	ErrAccountNotFound = errors.New("account not found")

	// ErrReferralNotFound is returned when no account owns the given referral code
	ErrReferralNotFound = errors.New("referral code not found")

	// ErrDuplicateAccount is returned when creating an account whose user id already exists
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrReferralCodeTaken is returned when an insert collides on the referral
	// code's unique index; the issuer regenerates and retries
	ErrReferralCodeTaken = errors.New("referral code already taken")

	// ErrReferralExhausted is returned when code generation keeps colliding;
	// it implies the code space is unexpectedly saturated
	ErrReferralExhausted = errors.New("referral code generation attempts exhausted")

	// ErrAlreadyActive is returned when starting a session that is already mining
	ErrAlreadyActive = errors.New("mining session already active")

	// ErrCooldown is returned when a rate-limited bonus is claimed too soon
	ErrCooldown = errors.New("bonus is on cooldown")

	// ErrLimitReached is returned when a bonus has no slots left in its window
	ErrLimitReached = errors.New("bonus limit reached for the current window")

	// ErrAdNotCompleted is returned when an ad-gated bonus is claimed without
	// a confirmed ad view
	ErrAdNotCompleted = errors.New("ad view not completed")

	// ErrConcurrentModification is returned when a conditional write affected
	// zero rows; the caller may retry, nothing was granted
	ErrConcurrentModification = errors.New("state changed concurrently")

	// ErrStorage is returned for store failures that are not timeouts
	ErrStorage = errors.New("storage error")

	// ErrStorageTimeout is returned when a store call exceeded its deadline;
	// state is unchanged, the write either fully applied or not at all
	ErrStorageTimeout = errors.New("storage operation timed out")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns the standardized code for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidReferralCode):
		return CodeInvalidReferralCode
	case errors.Is(err, ErrAdNotCompleted):
		return CodeAdNotCompleted
	case errors.Is(err, ErrAlreadyActive):
		return CodeAlreadyActive
	case errors.Is(err, ErrCooldown):
		return CodeCooldown
	case errors.Is(err, ErrConcurrentModification):
		return CodeConcurrentUpdate
	case errors.Is(err, ErrLimitReached):
		return CodeLimitReached
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrReferralNotFound):
		return CodeReferralNotFound
	case errors.Is(err, ErrDuplicateAccount):
		return CodeDuplicateAccount
	case errors.Is(err, ErrReferralExhausted):
		return CodeReferralExhausted
	case errors.Is(err, ErrStorageTimeout):
		return CodeStorageTimeout
	case errors.Is(err, ErrStorage):
		return CodeStorage
	default:
		return CodeInternalServer
	}
}

// GrantError carries context about a failed reward grant
type GrantError struct {
	UserID string
	Engine string // "mining", "daily", "boost", "watch"
	Amount float64
	Err    error
}

// Error implements the error interface
func (e *GrantError) Error() string {
	return fmt.Sprintf("reward grant failed for user %s (engine: %s, amount: %g): %v",
		e.UserID, e.Engine, e.Amount, e.Err)
}

// Unwrap returns the underlying error
func (e *GrantError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *GrantError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "grant_error",
		"user_id":    e.UserID,
		"engine":     e.Engine,
		"amount":     e.Amount,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewGrantError creates a detailed grant error
func NewGrantError(userID, engine string, amount float64, err error) error {
	return &GrantError{UserID: userID, Engine: engine, Amount: amount, Err: err}
}

// IsBusinessRejection reports whether the error is an expected business-rule
// rejection (informational to the UI, zero reward) rather than a failure.
func IsBusinessRejection(err error) bool {
	return errors.Is(err, ErrAlreadyActive) ||
		errors.Is(err, ErrCooldown) ||
		errors.Is(err, ErrLimitReached) ||
		errors.Is(err, ErrAdNotCompleted)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrReferralNotFound)
}

// IsStorageError checks if the error originated in the store
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage) || errors.Is(err, ErrStorageTimeout)
}

// IsConcurrentModificationError checks if a conditional write lost its race
func IsConcurrentModificationError(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
