package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	JWTSecret   string
	CORSOrigins []string

	JournalServiceURL   string
	JournalServiceToken string
	CompanyServiceURL   string

	RegimeRulesPath    string
	OverdueRefreshCron string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),

		JournalServiceURL:   getEnv("JOURNAL_SERVICE_URL", ""),
		JournalServiceToken: getEnv("JOURNAL_SERVICE_TOKEN", ""),
		CompanyServiceURL:   getEnv("COMPANY_SERVICE_URL", ""),

		RegimeRulesPath:    getEnv("REGIME_RULES_PATH", ""),
		OverdueRefreshCron: getEnv("OVERDUE_REFRESH_CRON", "30 0 * * *"),
	}

	// Assemble the DSN from DB_* parts when DATABASE_URL is not set directly.
	if cfg.DatabaseURL == "" {
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbUser := getEnv("DB_USER", "postgres")
		dbPassword := getEnv("DB_PASSWORD", "postgres")
		dbName := getEnv("DB_NAME", "postgres")
		dbSslMode := getEnv("DB_SSLMODE", "disable")
		cfg.DatabaseURL = "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
