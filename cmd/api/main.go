package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/astromine-app/reward-ledger/internal/domain/entity"
	coreport "github.com/astromine-app/reward-ledger/internal/domain/port/core"
	accountUseCase "github.com/astromine-app/reward-ledger/internal/domain/usecase/account"
	bonusUseCase "github.com/astromine-app/reward-ledger/internal/domain/usecase/bonus"
	miningUseCase "github.com/astromine-app/reward-ledger/internal/domain/usecase/mining"

	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/attester"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/database"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/logger"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/astromine-app/reward-ledger/internal/infrastructure/adapter/time"
	"github.com/astromine-app/reward-ledger/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbConfig := database.NewConfig(cfg)
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.MigrationManager().MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Repositories and unit of work
	miningRepo := repository.NewMiningRepository(dbManager.DB(), tp, appLogger)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Use cases
	storeTimeout := coreport.Duration(cfg.Database.QueryTimeout)
	rates := entity.NewAccrualRates(cfg.Rewards.DaySeconds, cfg.Rewards.DailyMax)
	rules := bonusUseCase.Rules{
		StreakStep:        cfg.Rewards.StreakStep,
		StreakWeeklyBonus: cfg.Rewards.StreakWeeklyBonus,
		StreakCooldown:    cfg.Rewards.StreakCooldown,
		StreakResetAfter:  cfg.Rewards.StreakResetAfter,
		BoostReward:       cfg.Rewards.BoostReward,
		BoostDailyLimit:   cfg.Rewards.BoostDailyLimit,
		BoostResetAfter:   cfg.Rewards.BoostResetAfter,
		WatchReward:       cfg.Rewards.WatchReward,
		WatchCooldown:     cfg.Rewards.WatchCooldown,
	}

	adAttester := attester.NewTrustedAttester(appLogger)

	miningSvc := miningUseCase.NewUseCase(miningRepo, rates, tp, appLogger, storeTimeout)
	bonusEngine := bonusUseCase.NewEngine(uow, adAttester, rules, tp, appLogger, storeTimeout)
	accountSvc := accountUseCase.NewUseCase(uow, tp, appLogger, storeTimeout,
		cfg.Rewards.ReferralCodeLength, cfg.Rewards.ReferralMaxAttempts)

	// Seed demo accounts for local development
	if cfg.Environment == config.Development {
		if err := migration.SeedDemoAccounts(context.Background(), accountSvc); err != nil {
			appLogger.Error("Failed to seed demo accounts", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// API handlers
	miningHandler := handler.NewMiningHandler(miningSvc, appLogger)
	bonusHandler := handler.NewBonusHandler(bonusEngine, appLogger)
	accountHandler := handler.NewAccountHandler(accountSvc, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, miningHandler, bonusHandler, accountHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		if cfg.Environment == config.Production && os.Getenv("RL_DB_HOST") == "" {
			missingConfigs = append(missingConfigs, "database.host (or RL_DB_HOST environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.host")
		}
	}
	if cfg.Database.Username == "" {
		if cfg.Environment == config.Production && os.Getenv("RL_DB_USERNAME") == "" {
			missingConfigs = append(missingConfigs, "database.username (or RL_DB_USERNAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.username")
		}
	}
	if cfg.Database.Password == "" {
		if cfg.Environment == config.Production && os.Getenv("RL_DB_PASSWORD") == "" {
			missingConfigs = append(missingConfigs, "database.password (or RL_DB_PASSWORD environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.password")
		}
	}
	if cfg.Database.Database == "" {
		if cfg.Environment == config.Production && os.Getenv("RL_DB_NAME") == "" {
			missingConfigs = append(missingConfigs, "database.database (or RL_DB_NAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.database")
		}
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Rewards.DaySeconds <= 0 {
		missingConfigs = append(missingConfigs, "rewards.daySeconds")
	}
	if cfg.Rewards.DailyMax <= 0 {
		missingConfigs = append(missingConfigs, "rewards.dailyMax")
	}
	if cfg.Rewards.BoostDailyLimit <= 0 {
		missingConfigs = append(missingConfigs, "rewards.boostDailyLimit")
	}
	if cfg.Rewards.ReferralCodeLength < entity.MinReferralCodeLength ||
		cfg.Rewards.ReferralCodeLength > entity.MaxReferralCodeLength {
		missingConfigs = append(missingConfigs, "rewards.referralCodeLength")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}

		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
