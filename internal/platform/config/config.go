package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend selects which store the ledger talks to.
type Backend string

const (
	BackendRemote   Backend = "remote"
	BackendPostgres Backend = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	Backend      Backend

	// Remote accounting service
	APIBaseURL       string
	APIToken         string
	APITimeout       time.Duration
	StrictEntryFetch bool

	// Direct postgres store
	DatabaseURL   string
	EnableDBCheck bool
	RunMigrations bool

	RateLimit          string
	CORSAllowedOrigins []string
	SessionIdleTTL     time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LEDGER_BACKEND", string(BackendRemote))
	viper.SetDefault("LEDGER_API_BASE_URL", "http://localhost:3000/api")
	viper.SetDefault("LEDGER_API_TOKEN", "")
	viper.SetDefault("LEDGER_API_TIMEOUT", "15s")
	viper.SetDefault("STRICT_ENTRY_FETCH", false)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("SESSION_IDLE_TTL", "30m")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		Backend:          Backend(strings.ToLower(strings.TrimSpace(viper.GetString("LEDGER_BACKEND")))),
		APIBaseURL:       strings.TrimSpace(viper.GetString("LEDGER_API_BASE_URL")),
		APIToken:         viper.GetString("LEDGER_API_TOKEN"),
		StrictEntryFetch: viper.GetBool("STRICT_ENTRY_FETCH"),
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		EnableDBCheck:    viper.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:    viper.GetBool("RUN_MIGRATIONS"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.APITimeout = durationOrDefault("LEDGER_API_TIMEOUT", 15*time.Second)
	cfg.SessionIdleTTL = durationOrDefault("SESSION_IDLE_TTL", 30*time.Minute)

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.Backend {
	case BackendRemote:
		if cfg.APIBaseURL == "" {
			return nil, fmt.Errorf("LEDGER_API_BASE_URL must be set for the %s backend", BackendRemote)
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set for the %s backend", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown LEDGER_BACKEND %q (want %s or %s)", cfg.Backend, BackendRemote, BackendPostgres)
	}

	return cfg, nil
}

// durationOrDefault parses key as a duration, falling back to def with a warning.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
