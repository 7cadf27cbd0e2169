package config

import (
	"strings"
	"time"
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"antly"`
	Password string `env:"PASSWORD" envDefault:"antly"`
	Name     string `env:"NAME"     envDefault:"antly"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
	MaxOpenConns         int  `env:"MAX_OPEN_CONNS"          envDefault:"25"`
	MaxIdleConns         int  `env:"MAX_IDLE_CONNS"          envDefault:"5"`
}

// RedisConfig contains Redis configuration. An empty URI disables Redis.
type RedisConfig struct {
	// URI is either host:port or a redis:// / rediss:// URL.
	URI                string   `env:"URI"                  envDefault:""`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:""`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
}

// Sanitize trims addresses and drops empty sentinel entries.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	nodes := r.SentinelNodes[:0]
	for _, n := range r.SentinelNodes {
		if n = strings.TrimSpace(n); n != "" {
			nodes = append(nodes, n)
		}
	}
	r.SentinelNodes = nodes
}

// CacheConfig controls the public listing cache.
type CacheConfig struct {
	// ListingTTL bounds how stale a cached page of approved ads may get.
	ListingTTL time.Duration `env:"CACHE_LISTING_TTL"        envDefault:"60s"`
	KeyPrefix  string        `env:"CACHE_LISTING_KEY_PREFIX" envDefault:"antly:ads:"`
}

// Sanitize applies defaults to non-positive or empty values.
func (c *CacheConfig) Sanitize() {
	if c.ListingTTL <= 0 {
		c.ListingTTL = time.Minute
	}
	if strings.TrimSpace(c.KeyPrefix) == "" {
		c.KeyPrefix = "antly:ads:"
	}
}
