package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/astromine-app/reward-ledger/internal/domain/error"
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidReferralCode):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrAdNotCompleted):
		return http.StatusForbidden
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrAlreadyActive),
		errors.Is(err, domainerr.ErrCooldown),
		errors.Is(err, domainerr.ErrDuplicateAccount),
		domainerr.IsConcurrentModificationError(err):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrLimitReached):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error response. Business rejections
// are part of normal traffic and are not logged as errors.
func respondError(c *gin.Context, logger coreport.Logger, err error, userID string) {
	status := statusForError(err)

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"userId": userID,
			"path":   c.Request.URL.Path,
			"error":  err.Error(),
		})
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
