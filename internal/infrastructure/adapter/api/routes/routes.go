package routes

import (
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	miningHandler *handler.MiningHandler,
	bonusHandler *handler.BonusHandler,
	accountHandler *handler.AccountHandler,
) {
	// POST /user
	router.POST("/user", accountHandler.CreateAccount)

	userRoutes := router.Group("/user/:userId")
	{
		// GET /user/:userId
		userRoutes.GET("", accountHandler.GetUserData)

		// GET /user/:userId/balance
		userRoutes.GET("/balance", miningHandler.GetBalance)

		// GET /user/:userId/referral-code
		userRoutes.GET("/referral-code", accountHandler.GetReferralCode)

		// POST /user/:userId/mining/{start,stop,claim}
		userRoutes.POST("/mining/start", miningHandler.Start)
		userRoutes.POST("/mining/stop", miningHandler.Stop)
		userRoutes.POST("/mining/claim", miningHandler.Claim)

		// POST /user/:userId/bonus/{daily,boost,watch}
		userRoutes.POST("/bonus/daily", bonusHandler.ClaimDaily)
		userRoutes.POST("/bonus/boost", bonusHandler.ClaimBoost)
		userRoutes.POST("/bonus/watch", bonusHandler.ClaimWatch)
	}

	// POST /referral/:code/register
	router.POST("/referral/:code/register", accountHandler.RegisterReferral)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
