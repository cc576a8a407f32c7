// Package config loads process configuration from a .env file plus the
// environment, following the teacher's getEnv/parse* pattern rather than a
// struct-tag binding library (envconfig et al. are reasonable too, but
// nothing in this repo's corpus reaches for one — the teacher hand-rolls
// this exact shape).
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the kernel's process-level settings. Posting policy
// (default account mappings, journal reference prefix) lives in
// AccountingConfig, a separate process-wide value loaded from a JSON file.
type Config struct {
	DatabaseDriver string // "sqlite", "postgres", "mysql"
	DatabaseDSN    string

	Environment string
	LogLevel    string

	// ReportCurrencySymbol, ReportDecimalSep and ReportThousandSep are the
	// money.FormatConfig settings used for text and PDF report output.
	ReportCurrencySymbol  string
	ReportDecimalSep      string
	ReportThousandSep     string
}

// Load reads .env (if present) then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return &Config{
		DatabaseDriver:       getEnv("DB_DRIVER", "sqlite"),
		DatabaseDSN:          getEnv("DB_DSN", "finledger.db"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		ReportCurrencySymbol: getEnv("REPORT_CURRENCY_SYMBOL", ""),
		ReportDecimalSep:     getEnv("REPORT_DECIMAL_SEPARATOR", "."),
		ReportThousandSep:    getEnv("REPORT_THOUSAND_SEPARATOR", ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
