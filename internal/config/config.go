package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type FetcherConfig struct {
	UserAgent        string `yaml:"userAgent"`
	TimeoutMs        int    `yaml:"timeoutMs"`
	MaxContentLength int64  `yaml:"maxContentLength"`
	RespectRobots    bool   `yaml:"respectRobots"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

// CacheConfig controls the optional Redis-backed preview cache. The cache is
// only active when enabled here and a Redis URL is configured.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttlMinutes"`
}

// DatabaseConfig holds the Postgres DSN for the lookup history store. An
// empty DSN disables history entirely.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type AuthConfig struct {
	Enabled bool     `yaml:"enabled"`
	APIKeys []string `yaml:"apiKeys"`
}

type RateLimitConfig struct {
	DefaultPerMinute int `yaml:"defaultPerMinute"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Redis     RedisConfig     `yaml:"redis"`
	Cache     CacheConfig     `yaml:"cache"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
}

// Reference defaults applied when the config file omits a value.
const (
	DefaultTimeoutMs        = 10_000
	DefaultMaxContentLength = 5 * 1024 * 1024
	DefaultUserAgent        = "Mozilla/5.0 (compatible; Unfurl/1.0; +https://github.com/ncecere/unfurl)"
	DefaultCacheTTLMinutes  = 60
)

func Load(path string) *Config {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open config file: %v", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config: %v", err)
	}

	cfg.ApplyDefaults()
	return &cfg
}

// ApplyDefaults fills in the reference values for anything the file left
// unset. Exposed so tests can build configs without a file on disk.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Fetcher.TimeoutMs <= 0 {
		c.Fetcher.TimeoutMs = DefaultTimeoutMs
	}
	if c.Fetcher.MaxContentLength <= 0 {
		c.Fetcher.MaxContentLength = DefaultMaxContentLength
	}
	if c.Fetcher.UserAgent == "" {
		c.Fetcher.UserAgent = DefaultUserAgent
	}
	if c.Cache.TTLMinutes <= 0 {
		c.Cache.TTLMinutes = DefaultCacheTTLMinutes
	}
}
