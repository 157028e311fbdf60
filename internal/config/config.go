// Package config provides runtime configuration values for the CLI.
package config

import (
	"os"
	"strconv"
)

// Config holds the ambient knobs of a session. There are no command-line
// flags; everything comes from the environment.
type Config struct {
	ServiceName       string
	Env               string
	LogLevel          string
	LogFile           string
	MetricsTextfile   string
	LowStockThreshold int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load collects configuration from environment with defaults.
func Load() Config {
	threshold := atoienv("LOW_STOCK_THRESHOLD", 0)
	if threshold < 0 {
		threshold = 0
	}
	return Config{
		ServiceName:       getenv("SERVICE_NAME", "minishop-cli"),
		Env:               getenv("ENV", "dev"),
		LogLevel:          getenv("LOG_LEVEL", "warn"),
		LogFile:           getenv("LOG_FILE", ""),
		MetricsTextfile:   getenv("METRICS_TEXTFILE", ""),
		LowStockThreshold: threshold,
	}
}
