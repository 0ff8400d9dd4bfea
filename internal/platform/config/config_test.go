package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendRemote, cfg.Backend)
	assert.Equal(t, "http://localhost:3000/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.False(t, cfg.StrictEntryFetch)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", " Postgres ")
	t.Setenv("PGSQL_URL", "postgres://ledger@localhost/ledger")
	t.Setenv("LEDGER_API_TIMEOUT", "not-a-duration")
	t.Setenv("SESSION_IDLE_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("STRICT_ENTRY_FETCH", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, 15*time.Second, cfg.APITimeout, "invalid durations fall back")
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.StrictEntryFetch)
}

func TestLoadConfig_BackendRequirements(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "postgres")
	t.Setenv("PGSQL_URL", "")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "PGSQL_URL")

	t.Setenv("LEDGER_BACKEND", "remote")
	t.Setenv("LEDGER_API_BASE_URL", "  ")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "LEDGER_API_BASE_URL")

	t.Setenv("LEDGER_BACKEND", "sqlite")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "unknown LEDGER_BACKEND")
}
