package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=risk dbname=risk")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("APP_ENV", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("APP_BASE_URL", "")
	t.Setenv("MAGIC_LINK_TTL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("CHROME_NO_SANDBOX", "")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 15*time.Minute, cfg.MagicLinkTTL)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.ChromeNoSandbox)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("APP_BASE_URL", "https://risk.example.com/")
	t.Setenv("MAGIC_LINK_TTL", "5m")
	t.Setenv("CHROME_NO_SANDBOX", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://risk.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.MagicLinkTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.ChromeNoSandbox)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing dsn", "DB_DSN", ""},
		{"missing secret", "SESSION_SECRET", ""},
		{"bad ttl", "MAGIC_LINK_TTL", "soon"},
		{"negative ttl", "MAGIC_LINK_TTL", "-1m"},
		{"bad bool", "CHROME_NO_SANDBOX", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestValidate_ShortSecretInProduction(t *testing.T) {
	cfg := &Config{Env: "production", DBDSN: "x", SessionSecret: "short", MagicLinkTTL: time.Minute}
	assert.Error(t, cfg.Validate())
}
