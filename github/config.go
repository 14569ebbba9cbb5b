package github

import (
	"time"

	"github.com/kbukum/ghusers/validation"
)

const (
	DefaultBaseURL = "https://api.github.com"
	// MaxPerPage is the largest page size the API accepts.
	MaxPerPage = 100

	apiVersion  = "2022-11-28"
	acceptMedia = "application/vnd.github+json"
)

// Config configures access to the GitHub API.
type Config struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url" json:"base_url" validate:"required,url"`
	Token   string        `yaml:"token" mapstructure:"token" json:"token"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" json:"timeout" validate:"gte=0"`
	PerPage int           `yaml:"per_page" mapstructure:"per_page" json:"per_page" validate:"min=1,max=100"`

	// RatePerSecond and Burst pace requests client-side.
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second" json:"rate_per_second" validate:"gte=0"`
	Burst         int     `yaml:"burst" mapstructure:"burst" json:"burst" validate:"gte=0"`
	// MaxWait bounds how long a request waits for quota before failing.
	MaxWait time.Duration `yaml:"max_wait" mapstructure:"max_wait" json:"max_wait" validate:"gte=0"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.PerPage == 0 {
		c.PerPage = MaxPerPage
	}
	if c.RatePerSecond == 0 {
		c.RatePerSecond = 10
	}
	if c.Burst == 0 {
		c.Burst = 10
	}
	if c.MaxWait == 0 {
		c.MaxWait = time.Minute
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
