package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kbukum/ghusers/config"
	"github.com/kbukum/ghusers/github"
	"github.com/kbukum/ghusers/observability"
	"github.com/kbukum/ghusers/version"
)

// CacheConfig configures the on-disk HTTP response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Directory string        `yaml:"directory" mapstructure:"directory"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults places the cache under the user cache directory and keeps
// entries for a week.
func (c *CacheConfig) ApplyDefaults() {
	if c.Directory == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			c.Directory = filepath.Join(dir, version.Name, "http")
		} else {
			c.Directory = filepath.Join(".cache", version.Name, "http")
		}
	}
	if c.TTL == 0 {
		c.TTL = 7 * 24 * time.Hour
	}
}

// Config is the complete ghusers configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	GitHub    github.Config        `yaml:"github" mapstructure:"github"`
	Cache     CacheConfig          `yaml:"cache" mapstructure:"cache"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills zero-value fields in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = version.Name
	}
	c.ServiceConfig.ApplyDefaults()
	c.GitHub.ApplyDefaults()
	c.Cache.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	c.Telemetry.ServiceName = c.Name
	c.Telemetry.Environment = c.Environment
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.GitHub.Validate(); err != nil {
		return fmt.Errorf("github: %w", err)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative (got: %v)", c.Cache.TTL)
	}
	return c.Telemetry.Validate()
}

// TokenEnv is the unprefixed variable read for the API token.
const TokenEnv = "GITHUB_TOKEN"

// loadConfig reads the configuration from path and envFile when they are
// set. Environment variables are bound only with the GHUSERS_ prefix, plus
// TokenEnv.
func loadConfig(path, envFile string) (*Config, error) {
	opts := []config.LoaderOption{config.WithEnvAlias("github.token", TokenEnv)}
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	var cfg Config
	if err := config.LoadConfig(version.Name, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
