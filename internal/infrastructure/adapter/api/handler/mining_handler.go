package handler

import (
	"net/http"

	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/domain/usecase/mining"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// MiningHandler handles mining session HTTP requests
type MiningHandler struct {
	miningUseCase *mining.UseCase
	logger        coreport.Logger
}

// NewMiningHandler creates a new mining handler instance
func NewMiningHandler(miningUseCase *mining.UseCase, logger coreport.Logger) *MiningHandler {
	return &MiningHandler{
		miningUseCase: miningUseCase,
		logger:        logger,
	}
}

// Start handles the POST /user/{userId}/mining/start endpoint
func (h *MiningHandler) Start(c *gin.Context) {
	userID := c.Param("userId")

	if err := h.miningUseCase.Start(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	state, projected, err := h.miningUseCase.Status(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:           userID,
		Balance:          state.Balance,
		ProjectedBalance: projected,
	})
}

// Stop handles the POST /user/{userId}/mining/stop endpoint
func (h *MiningHandler) Stop(c *gin.Context) {
	userID := c.Param("userId")

	if err := h.miningUseCase.Stop(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "miningActive": false})
}

// Claim handles the POST /user/{userId}/mining/claim endpoint. A zero reward
// is a success: nothing had accrued, or a concurrent claim got there first.
func (h *MiningHandler) Claim(c *gin.Context) {
	userID := c.Param("userId")

	reward, err := h.miningUseCase.Claim(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.ClaimResponse{
		UserID: userID,
		Reward: reward,
	})
}

// GetBalance handles the GET /user/{userId}/balance endpoint
func (h *MiningHandler) GetBalance(c *gin.Context) {
	userID := c.Param("userId")

	state, projected, err := h.miningUseCase.Status(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, userID)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:           userID,
		Balance:          state.Balance,
		ProjectedBalance: projected,
	})
}
