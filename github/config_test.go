package github

import (
	"testing"
	"time"

	"github.com/kbukum/ghusers/errors"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.BaseURL != DefaultBaseURL || cfg.PerPage != 100 || cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"per page too large", Config{BaseURL: DefaultBaseURL, PerPage: 101}},
		{"per page zero", Config{BaseURL: DefaultBaseURL}},
		{"bad url", Config{BaseURL: "not a url", PerPage: 10}},
		{"negative burst", Config{BaseURL: DefaultBaseURL, PerPage: 10, Burst: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.IsInvalidInput(err) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}
