package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Lending   LendingConfig   `mapstructure:"lending"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"DATABASE_HOST"`
	Port         string `mapstructure:"DATABASE_PORT"`
	Name         string `mapstructure:"DATABASE_NAME"`
	User         string `mapstructure:"DATABASE_USER"`
	Password     string `mapstructure:"DATABASE_PASSWORD"`
	SSLMode      string `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	FineAccrualSpec string `mapstructure:"FINE_ACCRUAL_CRON"`
	Timezone        string `mapstructure:"SCHEDULER_TIMEZONE"`
}

// LendingConfig carries the lending policy constants the core reads but does
// not own.
type LendingConfig struct {
	MaxBorrowedBooks   int    `mapstructure:"MAX_BORROWED_BOOKS"`
	BorrowDurationDays int    `mapstructure:"BORROW_DURATION_DAYS"`
	DailyFineAmount    string `mapstructure:"DAILY_FINE_AMOUNT"`
}

type CacheConfig struct {
	BookTTL string `mapstructure:"BOOK_CACHE_TTL"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_NAME", "library")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("MAX_BORROWED_BOOKS", 5)
	viper.SetDefault("BORROW_DURATION_DAYS", 14)
	viper.SetDefault("DAILY_FINE_AMOUNT", "0.50")
	viper.SetDefault("FINE_ACCRUAL_CRON", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "UTC")
	viper.SetDefault("BOOK_CACHE_TTL", "1h")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("DATABASE_HOST and DATABASE_NAME are required")
	}

	if c.Lending.MaxBorrowedBooks <= 0 {
		return fmt.Errorf("MAX_BORROWED_BOOKS must be greater than 0")
	}

	if c.Lending.BorrowDurationDays <= 0 {
		return fmt.Errorf("BORROW_DURATION_DAYS must be greater than 0")
	}

	// Validate daily fine amount
	fine, err := decimal.NewFromString(c.Lending.DailyFineAmount)
	if err != nil {
		return fmt.Errorf("DAILY_FINE_AMOUNT must be a valid decimal: %w", err)
	}
	if fine.IsNegative() {
		return fmt.Errorf("DAILY_FINE_AMOUNT must not be negative")
	}

	// Validate book cache TTL
	if _, err := time.ParseDuration(c.Cache.BookTTL); err != nil {
		return fmt.Errorf("BOOK_CACHE_TTL must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetDailyFineAmount returns the daily fine amount as decimal
func (c *Config) GetDailyFineAmount() decimal.Decimal {
	fine, _ := decimal.NewFromString(c.Lending.DailyFineAmount)
	return fine
}

// GetBookCacheTTL returns the book cache TTL as duration
func (c *Config) GetBookCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Cache.BookTTL)
	return ttl
}

// DSN builds the Postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}
