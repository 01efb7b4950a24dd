// Package config loads runtime settings from the environment and the frozen
// game tunables that parameterize the engine. Tunables are read once and
// never mutated by the core.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for a simulation run
type Config struct {
	CatalogPath  string
	TunablesPath string
	LogLevel     string
	Seed         int64
	Rounds       int
	GameLength   int
	DevMode      bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		CatalogPath:  getEnv("CATALOG_PATH", "./data/catalog.db"),
		TunablesPath: getEnv("TUNABLES_PATH", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Seed:         getEnvAsInt64("SIM_SEED", 1),
		Rounds:       getEnvAsInt("SIM_ROUNDS", 12),
		GameLength:   getEnvAsInt("GAME_LENGTH", 40),
		DevMode:      getEnvAsBool("DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.GameLength <= 0 {
		return fmt.Errorf("GAME_LENGTH must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
