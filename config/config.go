package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores runtime configuration of the HTTP API.
type Config struct {
	Server    ServerConfig
	RateLimit RateLimitConfig
	LogLevel  string

	// BatchMaxRows limits rows accepted by the batch endpoint.
	BatchMaxRows int
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// RateLimitConfig controls global and per-client limits.
type RateLimitConfig struct {
	// per client
	RPS   float64
	Burst int

	// shared by all clients
	GlobalRPS   float64
	GlobalBurst int

	// TrustProxy makes the limiter key clients by the last X-Forwarded-For
	// hop. Enable only behind a reverse proxy that appends that header.
	TrustProxy bool
}

// Load reads configuration from the environment, after applying a .env file if present.
func Load() (*Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RPS:         getEnvFloat("RATE_LIMIT_RPS", 50),
			Burst:       getEnvInt("RATE_LIMIT_BURST", 100),
			GlobalRPS:   getEnvFloat("RATE_LIMIT_GLOBAL_RPS", 500),
			GlobalBurst: getEnvInt("RATE_LIMIT_GLOBAL_BURST", 1000),
			TrustProxy:  getEnvBool("RATE_LIMIT_TRUST_PROXY", false),
		},
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
		BatchMaxRows: getEnvInt("BATCH_MAX_ROWS", 10000),
	}

	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return nil, fmt.Errorf("SERVER_READ_TIMEOUT and SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.RateLimit.RPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if cfg.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}
	if cfg.RateLimit.GlobalRPS <= 0 || cfg.RateLimit.GlobalBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_GLOBAL_RPS and RATE_LIMIT_GLOBAL_BURST must be positive")
	}
	if cfg.BatchMaxRows <= 0 {
		return nil, fmt.Errorf("BATCH_MAX_ROWS must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}
