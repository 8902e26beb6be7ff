package handler

import (
	"net/http"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/domain/usecase/account"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles account and referral HTTP requests
type AccountHandler struct {
	accountUseCase *account.UseCase
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accountUseCase *account.UseCase, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

func accountToResponse(acct *entity.Account) dto.AccountResponse {
	return dto.AccountResponse{
		UserID:       acct.UserID,
		Username:     acct.Username,
		AvatarURL:    acct.AvatarURL,
		ReferralCode: acct.ReferralCode,
		ReferredBy:   acct.ReferredBy,
		CreatedAt:    acct.CreatedAt,
	}
}

// CreateAccount handles the POST /user endpoint
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
		return
	}

	acct, err := h.accountUseCase.CreateAccount(c.Request.Context(), account.CreateAccountRequest{
		UserID:     req.UserID,
		Username:   req.Username,
		AvatarURL:  req.AvatarURL,
		ReferredBy: req.ReferredBy,
	})
	if err != nil {
		respondError(c, h.logger, err, req.UserID)
		return
	}

	c.JSON(http.StatusCreated, accountToResponse(acct))
}

// GetUserData handles the GET /user/{userId} endpoint
func (h *AccountHandler) GetUserData(c *gin.Context) {
	userID := c.Param("userId")

	data, err := h.accountUseCase.GetUserData(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.UserDataResponse{
		Account: accountToResponse(data.Account),
		Mining: dto.MiningStateResponse{
			UserID:       data.Mining.UserID,
			MiningActive: data.Mining.MiningActive,
			LastStart:    data.Mining.LastStart,
			LastClaim:    data.Mining.LastClaim,
			Balance:      data.Mining.Balance,
		},
		Daily: dto.DailyStreakResponse{
			LastClaim:   data.Daily.LastClaim,
			Streak:      data.Daily.Streak,
			TotalEarned: data.Daily.TotalEarned,
		},
		Boost: dto.BoostStateResponse{
			UsedToday: data.Boost.UsedToday,
			LastReset: data.Boost.LastReset,
			Balance:   data.Boost.Balance,
		},
		WatchEarn: dto.WatchEarnResponse{
			TotalWatched: data.WatchEarn.TotalWatched,
			TotalEarned:  data.WatchEarn.TotalEarned,
			LastWatch:    data.WatchEarn.LastWatch,
		},
		Referrals: dto.ReferralStateResponse{
			TotalReferred: data.Referrals.TotalReferred,
			ReferredUsers: data.Referrals.ReferredUsers,
		},
	})
}

// GetReferralCode handles the GET /user/{userId}/referral-code endpoint
func (h *AccountHandler) GetReferralCode(c *gin.Context) {
	userID := c.Param("userId")

	code, err := h.accountUseCase.IssueReferralCode(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.ReferralCodeResponse{
		UserID:       userID,
		ReferralCode: code,
	})
}

// RegisterReferral handles the POST /referral/{code}/register endpoint
func (h *AccountHandler) RegisterReferral(c *gin.Context) {
	code := c.Param("code")

	var req dto.RegisterReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
		return
	}

	if err := h.accountUseCase.RegisterReferral(c.Request.Context(), code, req.UserID); err != nil {
		respondError(c, h.logger, err, req.UserID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"registered": true})
}
