package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: session signing and password hashing
//   - database.go: Postgres, Redis and listing cache
//   - http.go: HTTP server
//   - observability.go: logging
type AppConfig struct {
	// Env is the deployment environment. "production" (or "prod") enables Secure cookies
	// and hides internal error detail. NODE_ENV is consulted when APP_ENV is unset.
	Env string `env:"APP_ENV" envDefault:""`

	Auth AuthConfig

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Cache    CacheConfig

	HTTP HTTPConfig

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.detectEnv()
	c.Auth.Sanitize()
	c.Redis.Sanitize()
	c.Cache.Sanitize()
	c.HTTP.Sanitize()
	c.Observability.Sanitize()
}

// detectEnv normalizes Env, falling back to NODE_ENV (common in frontend tooling).
func (c *AppConfig) detectEnv() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = strings.ToLower(strings.TrimSpace(os.Getenv("NODE_ENV")))
	}
}

// IsProduction reports whether the service runs in production.
func (c *AppConfig) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "production", "prod":
		return true
	default:
		return false
	}
}

// RedisEnabled reports whether a Redis endpoint is configured. Without one the listing cache is off.
func (c *AppConfig) RedisEnabled() bool {
	return c.Redis.URI != "" || (c.Redis.UseSentinel && len(c.Redis.SentinelNodes) > 0)
}
