package handler

import (
	"net/http"

	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/domain/usecase/bonus"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// BonusHandler handles bonus engine HTTP requests
type BonusHandler struct {
	engine *bonus.Engine
	logger coreport.Logger
}

// NewBonusHandler creates a new bonus handler instance
func NewBonusHandler(engine *bonus.Engine, logger coreport.Logger) *BonusHandler {
	return &BonusHandler{
		engine: engine,
		logger: logger,
	}
}

// ClaimDaily handles the POST /user/{userId}/bonus/daily endpoint
func (h *BonusHandler) ClaimDaily(c *gin.Context) {
	userID := c.Param("userId")

	result, err := h.engine.ClaimDaily(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.DailyClaimResponse{
		UserID:    userID,
		Reward:    result.Reward,
		Streak:    result.Streak,
		LastClaim: result.LastClaim,
	})
}

// ClaimBoost handles the POST /user/{userId}/bonus/boost endpoint
func (h *BonusHandler) ClaimBoost(c *gin.Context) {
	userID := c.Param("userId")

	var req dto.AdClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
		return
	}

	result, err := h.engine.ClaimBoost(c.Request.Context(), userID, req.AdCompleted)
	if err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.BoostClaimResponse{
		UserID:    userID,
		Reward:    result.Reward,
		UsedToday: result.UsedToday,
	})
}

// ClaimWatch handles the POST /user/{userId}/bonus/watch endpoint
func (h *BonusHandler) ClaimWatch(c *gin.Context) {
	userID := c.Param("userId")

	var req dto.AdClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
		return
	}

	reward, err := h.engine.ClaimWatchEarn(c.Request.Context(), userID, req.AdCompleted)
	if err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.WatchClaimResponse{
		UserID: userID,
		Reward: reward,
	})
}
