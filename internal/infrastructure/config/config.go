package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Rewards     RewardsConfig  `mapstructure:"rewards"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// RewardsConfig contains the reward schedule for accrual and bonus engines
type RewardsConfig struct {
	DaySeconds          int64         `mapstructure:"daySeconds"`
	DailyMax            float64       `mapstructure:"dailyMax"`
	StreakStep          float64       `mapstructure:"streakStep"`
	StreakWeeklyBonus   float64       `mapstructure:"streakWeeklyBonus"`
	StreakCooldown      time.Duration `mapstructure:"streakCooldown"`   // hours
	StreakResetAfter    time.Duration `mapstructure:"streakResetAfter"` // hours
	BoostReward         float64       `mapstructure:"boostReward"`
	BoostDailyLimit     int           `mapstructure:"boostDailyLimit"`
	BoostResetAfter     time.Duration `mapstructure:"boostResetAfter"` // hours
	WatchReward         float64       `mapstructure:"watchReward"`
	WatchCooldown       time.Duration `mapstructure:"watchCooldown"` // seconds
	ReferralCodeLength  int           `mapstructure:"referralCodeLength"`
	ReferralMaxAttempts int           `mapstructure:"referralMaxAttempts"`
}
