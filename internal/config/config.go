package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS      float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int      `mapstructure:"RATE_LIMIT_BURST"`
	AIGatewayURL      string   `mapstructure:"AI_GATEWAY_URL"`
	AIGatewayKey      string   `mapstructure:"AI_GATEWAY_KEY"`
	AIModel           string   `mapstructure:"AI_MODEL"`
	MedicationCatalog string   `mapstructure:"MEDICATION_CATALOG"`
	SessionTTLMinutes int      `mapstructure:"SESSION_TTL_MINUTES"`
	BodyLimit         string   `mapstructure:"BODY_LIMIT"`
	RequestTimeoutSec int      `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	CacheTTLSec       int      `mapstructure:"CACHE_TTL_SECONDS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev")
	v.SetDefault("AI_MODEL", "google/gemini-2.5-flash")
	v.SetDefault("MEDICATION_CATALOG", "./data/medicaments.csv")
	v.SetDefault("SESSION_TTL_MINUTES", 60)
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 90)
	v.SetDefault("CACHE_TTL_SECONDS", 300)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("AI_GATEWAY_URL")
	v.BindEnv("AI_GATEWAY_KEY")
	v.BindEnv("AI_MODEL")
	v.BindEnv("MEDICATION_CATALOG")
	v.BindEnv("SESSION_TTL_MINUTES")
	v.BindEnv("BODY_LIMIT")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")
	v.BindEnv("CACHE_TTL_SECONDS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SessionTTL returns the screening session time-to-live as a duration.
func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// RequestTimeout returns the per-request deadline. It must exceed the AI
// gateway client timeout so slow gateway calls fail with a gateway error
// rather than a blanket 504.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return 90 * time.Second
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// CacheTTL returns how long public listing responses stay cached.
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLSec <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CacheTTLSec) * time.Second
}

// Validate checks that the configuration is safe to run. The AI gateway key is
// required in production; without it the gateway-backed lookups answer 503
// while the deterministic modules keep working, which is acceptable only in
// development.
func (c *Config) Validate() error {
	if c.IsProduction() && c.AIGatewayKey == "" {
		return fmt.Errorf("AI_GATEWAY_KEY is required in production")
	}
	if c.AIGatewayURL == "" {
		return fmt.Errorf("AI_GATEWAY_URL must not be empty")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	return nil
}
