package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	JWT     JWTConfig
	HRISAPI HRISAPIConfig
	Demo    DemoConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	FrontendURL string
}

// JWTConfig holds the secret shared with the HRIS backend that issues access tokens
type JWTConfig struct {
	Secret string
}

// HRISAPIConfig points at the HRIS REST backend
type HRISAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DemoConfig controls the in-memory task demo data
type DemoConfig struct {
	Seed       int64
	TasksFile  string
	ResetDaily bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8081"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", timepolicy.DefaultZone),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// HRIS backend
	timeout, err := time.ParseDuration(getEnv("HRIS_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRIS_API_TIMEOUT: %w", err)
	}

	config.HRISAPI = HRISAPIConfig{
		BaseURL: strings.TrimRight(getEnv("HRIS_API_BASE_URL", "http://localhost:8080"), "/"),
		Timeout: timeout,
	}

	// Demo data
	seed, err := strconv.ParseInt(getEnv("DEMO_SEED", "42"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEMO_SEED: %w", err)
	}
	resetDaily, err := strconv.ParseBool(getEnv("DEMO_RESET_DAILY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEMO_RESET_DAILY: %w", err)
	}

	config.Demo = DemoConfig{
		Seed:       seed,
		TasksFile:  getEnv("DEMO_TASKS_FILE", ""),
		ResetDaily: resetDaily,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.HRISAPI.BaseURL == "" {
		return fmt.Errorf("HRIS_API_BASE_URL is required")
	}
	if c.HRISAPI.Timeout <= 0 {
		return fmt.Errorf("HRIS_API_TIMEOUT must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE %q is not a known timezone: %w", c.App.Timezone, err)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
