// Package config provides configuration management for the wallet persona
// service. It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Provider  ProviderConfig
	Pricing   PricingConfig
	Narrative NarrativeConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host           string
	Port           string
	Password       string
	DB             int
	MaxConnections int
}

// CacheConfig holds collaborator response cache configuration
type CacheConfig struct {
	PriceTTL     time.Duration
	NarrativeTTL time.Duration
	PersonaTTL   time.Duration
}

// ProviderConfig holds chain data provider configuration
type ProviderConfig struct {
	BaseURL           string
	APIKey            string
	RequestsPerSecond float64
	FetchTimeout      time.Duration // per-collaborator-call deadline
	MaxTransactions   int
}

// PricingConfig holds the reference price source configuration
type PricingConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NarrativeConfig holds the narrative generator configuration. An empty
// APIKey disables the collaborator; personas then carry the deterministic
// default analysis.
type NarrativeConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// RateLimitConfig holds API rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	// .env file is optional - environment variables can be set directly
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			MaxConnections: getEnvAsInt("REDIS_MAX_CONNECTIONS", 50),
		},
		Cache: CacheConfig{
			PriceTTL:     getEnvAsDuration("CACHE_PRICE_TTL", 60*time.Second),
			NarrativeTTL: getEnvAsDuration("CACHE_NARRATIVE_TTL", 10*time.Minute),
			PersonaTTL:   getEnvAsDuration("CACHE_PERSONA_TTL", 5*time.Minute),
		},
		Provider: ProviderConfig{
			BaseURL:           getEnv("PROVIDER_BASE_URL", "https://api.etherscan.io/api"),
			APIKey:            getEnv("PROVIDER_API_KEY", ""),
			RequestsPerSecond: getEnvAsFloat("PROVIDER_RPS", 3),
			FetchTimeout:      getEnvAsDuration("PROVIDER_FETCH_TIMEOUT", 15*time.Second),
			MaxTransactions:   getEnvAsInt("PROVIDER_MAX_TRANSACTIONS", 1000),
		},
		Pricing: PricingConfig{
			BaseURL: getEnv("PRICING_BASE_URL", "https://api.coingecko.com/api/v3"),
			Timeout: getEnvAsDuration("PRICING_TIMEOUT", 10*time.Second),
		},
		Narrative: NarrativeConfig{
			BaseURL: getEnv("NARRATIVE_BASE_URL", ""),
			APIKey:  getEnv("NARRATIVE_API_KEY", ""),
			Model:   getEnv("NARRATIVE_MODEL", "default"),
			Timeout: getEnvAsDuration("NARRATIVE_TIMEOUT", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsInt("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat gets an environment variable as a float with a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
