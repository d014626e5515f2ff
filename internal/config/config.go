package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Redis      RedisConfig
	Content    ContentConfig
	Simulation SimulationConfig
}

// RedisConfig holds Redis-specific configuration.
// URL wins over Addr when both are set.
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis profile store was configured
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Addr != ""
}

// ContentConfig points at the data files the engine loads
type ContentConfig struct {
	BalanceFile string
	CatalogFile string
}

// SimulationConfig drives cmd/simulate
type SimulationConfig struct {
	Combats   int
	Workers   int
	MaxFrames int
	Seed      int64
	ProfileID string
	EnemyID   string

	// VictoryGold is credited to the profile for each simulated win
	VictoryGold int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Content: ContentConfig{
			BalanceFile: os.Getenv("BALANCE_FILE"),
			CatalogFile: getEnvOrDefault("CATALOG_FILE", "content/catalog.yaml"),
		},
		Simulation: SimulationConfig{
			Combats:   getEnvAsIntOrDefault("SIM_COMBATS", 100),
			Workers:   getEnvAsIntOrDefault("SIM_WORKERS", 4),
			MaxFrames: getEnvAsIntOrDefault("SIM_MAX_FRAMES", 20000),
			Seed:      int64(getEnvAsIntOrDefault("SIM_SEED", 1)),
			ProfileID: getEnvOrDefault("PROFILE_ID", "local"),
			EnemyID:   os.Getenv("SIM_ENEMY"),

			VictoryGold: getEnvAsIntOrDefault("SIM_VICTORY_GOLD", 0),
		},
	}

	if cfg.Simulation.Combats < 1 {
		return nil, fmt.Errorf("SIM_COMBATS must be positive, got %d", cfg.Simulation.Combats)
	}
	if cfg.Simulation.Workers < 1 {
		return nil, fmt.Errorf("SIM_WORKERS must be positive, got %d", cfg.Simulation.Workers)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
