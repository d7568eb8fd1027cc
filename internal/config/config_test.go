package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclip/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.HostSnapshot, cfg.Browser.Host)
	assert.Equal(t, 64, cfg.Browser.SnapshotCapacity)
	assert.Equal(t, 30*time.Second, cfg.Browser.FetchTimeout)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 0, cfg.LLM.TimeoutSecs)
	assert.Equal(t, 256, cfg.Relay.TabCapacity)
	assert.Equal(t, "data/settings.yml", cfg.Settings.Path)
	assert.Equal(t, "jobclip", cfg.JWT.Issuer)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JOBCLIP_BROWSER_HOST", "Playwright")
	t.Setenv("JOBCLIP_LLM_TIMEOUT_SECS", "45")
	t.Setenv("JOBCLIP_CORS_ALLOWED_ORIGINS", "chrome-extension://abcdef, ,http://localhost:3000")
	t.Setenv("JOBCLIP_SETTINGS_PATH", "/var/lib/jobclip/settings.yml")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.HostPlaywright, cfg.Browser.Host)
	assert.Equal(t, 45, cfg.LLM.TimeoutSecs)
	assert.Equal(t, []string{"chrome-extension://abcdef", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "/var/lib/jobclip/settings.yml", cfg.Settings.Path)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_ExplicitPortWins(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JOBCLIP_SERVER_PORT", ":7000")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_RejectsUnknownHost(t *testing.T) {
	t.Setenv("JOBCLIP_BROWSER_HOST", "selenium")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", db.DSN())
}
