// ==============================================================================
// CONFIG PACKAGE - pkg/config/config.go
// ==============================================================================
package config

import (
	"os"
	"strconv"
	"time"

	"tornbank/pkg/validator"
)

type Config struct {
	Demo DemoConfig
}

type DemoConfig struct {
	BalanceA       int64         `validate:"gte=0"`
	BalanceB       int64         `validate:"gte=0"`
	TransferAmount int64         `validate:"gt=0"`
	TransferDelay  time.Duration `validate:"gte=0"`
	Workers        int           `validate:"gte=1"`
}

func Load() *Config {
	return &Config{
		Demo: DemoConfig{
			BalanceA:       getInt64Env("DEMO_BALANCE_A", 4000),
			BalanceB:       getInt64Env("DEMO_BALANCE_B", 6000),
			TransferAmount: getInt64Env("DEMO_TRANSFER_AMOUNT", 100),
			TransferDelay:  getDurationEnv("DEMO_TRANSFER_DELAY", 10*time.Second),
			Workers:        getIntEnv("DEMO_WORKERS", 8),
		},
	}
}

func (c *Config) Validate() error {
	return validator.New().Validate(c.Demo)
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
