package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	DBDSN         string
	ServerPort    string
	SessionSecret string
	BaseURL       string
	MagicLinkTTL  time.Duration

	LogLevel  string
	LogFormat string
	LogOutput string

	ChromeRemoteURL string
	ChromeNoSandbox bool

	// empty SMTPAddr means login links are only logged
	SMTPAddr     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (if any) and the process environment. Missing required
// values stop the process.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:             envOr("APP_ENV", "development"),
		DBDSN:           os.Getenv("DB_DSN"),
		ServerPort:      envOr("SERVER_PORT", "8080"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		BaseURL:         os.Getenv("APP_BASE_URL"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogFormat:       os.Getenv("LOG_FORMAT"),
		LogOutput:       envOr("LOG_OUTPUT", "stdout"),
		ChromeRemoteURL: os.Getenv("CHROME_REMOTE_URL"),
		MagicLinkTTL:    15 * time.Minute,
		SMTPAddr:        os.Getenv("SMTP_ADDR"),
		SMTPFrom:        envOr("SMTP_FROM", "noreply@localhost"),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.ServerPort
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	if v := os.Getenv("MAGIC_LINK_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("MAGIC_LINK_TTL: %w", err)
		}
		cfg.MagicLinkTTL = ttl
	}

	if v := os.Getenv("CHROME_NO_SANDBOX"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CHROME_NO_SANDBOX: %w", err)
		}
		cfg.ChromeNoSandbox = b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBDSN == "" {
		return errors.New("DB_DSN is not set")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	// cookie store wants at least 32 bytes for the auth key
	if c.IsProduction() && len(c.SessionSecret) < 32 {
		return errors.New("SESSION_SECRET must be at least 32 bytes in production")
	}
	if c.MagicLinkTTL <= 0 {
		return errors.New("MAGIC_LINK_TTL must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
