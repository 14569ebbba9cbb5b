package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type testGitHub struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	PerPage int           `mapstructure:"per_page"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	GitHub        testGitHub `mapstructure:"github"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "ghusers"}
	cfg.ApplyDefaults()
	if cfg.Environment != "production" {
		t.Errorf("expected 'production', got %q", cfg.Environment)
	}
	if cfg.Logging.ServiceName != "ghusers" {
		t.Errorf("expected logging service name to follow Name, got %q", cfg.Logging.ServiceName)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected logging defaults applied, got level %q", cfg.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		c := ServiceConfig{Name: "ghusers"}
		c.ApplyDefaults()
		return c
	}
	tests := []struct {
		name   string
		mutate func(*ServiceConfig)
		errMsg string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "environment must be one of"},
		{"invalid logging", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "logging:"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
name: ghusers
environment: staging
github:
  base_url: https://ghe.example.com/api/v3
  per_page: 50
  timeout: 10s
`)

	var cfg testConfig
	if err := LoadConfig("ghusers", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "ghusers" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.GitHub.BaseURL != "https://ghe.example.com/api/v3" {
		t.Errorf("unexpected base url %q", cfg.GitHub.BaseURL)
	}
	if cfg.GitHub.PerPage != 50 {
		t.Errorf("expected per_page 50, got %d", cfg.GitHub.PerPage)
	}
	if cfg.GitHub.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.GitHub.Timeout)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "github:\n  token: from-file\n  per_page: 10\n")
	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("GHUSERS_GITHUB_PER_PAGE", "30")

	var cfg testConfig
	err := LoadConfig("ghusers", &cfg, WithConfigFile(path), WithEnvAlias("github.token", "GITHUB_TOKEN"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.GitHub.Token != "from-env" {
		t.Errorf("expected env token, got %q", cfg.GitHub.Token)
	}
	if cfg.GitHub.PerPage != 30 {
		t.Errorf("expected per_page 30, got %d", cfg.GitHub.PerPage)
	}
}

func TestLoadConfigIgnoresUnprefixedEnv(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "name: ghusers\nenvironment: staging\ngithub:\n  per_page: 10\n")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("NAME", "someone-else")
	t.Setenv("GITHUB_PER_PAGE", "30")
	t.Setenv("GITHUB_TOKEN", "not-bound-without-alias")

	var cfg testConfig
	if err := LoadConfig("ghusers", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "staging" || cfg.Name != "ghusers" {
		t.Errorf("unprefixed variables leaked into %+v", cfg.ServiceConfig)
	}
	if cfg.GitHub.PerPage != 10 || cfg.GitHub.Token != "" {
		t.Errorf("unprefixed variables leaked into %+v", cfg.GitHub)
	}
}

func TestLoadConfigPrefixedEnv(t *testing.T) {
	t.Setenv("GHUSERS_ENVIRONMENT", "development")
	t.Setenv("MYTOOL_ENVIRONMENT", "staging")

	var cfg testConfig
	if err := LoadConfig("ghusers", &cfg, WithFileSystem(&mockFS{})); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected GHUSERS_ENVIRONMENT, got %q", cfg.Environment)
	}

	cfg = testConfig{}
	if err := LoadConfig("ghusers", &cfg, WithFileSystem(&mockFS{}), WithEnvPrefix("MYTOOL_")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected MYTOOL_ENVIRONMENT, got %q", cfg.Environment)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yml", "name: ghusers\n")
	envPath := writeFile(t, dir, ".env", "GHUSERS_TEST_ENVFILE_KEY=loaded\n")
	t.Cleanup(func() { os.Unsetenv("GHUSERS_TEST_ENVFILE_KEY") })

	var cfg map[string]any
	if err := LoadConfig("ghusers", &cfg, WithConfigFile(cfgPath), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if os.Getenv("GHUSERS_TEST_ENVFILE_KEY") != "loaded" {
		t.Error("expected .env file to be loaded into the environment")
	}
}

func TestLoadConfigExplicitFileMissing(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("ghusers", &cfg, WithConfigFile("/nonexistent/config.yml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "github: [unclosed\n")
	var cfg testConfig
	if err := LoadConfig("ghusers", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfigNothingFound(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("ghusers", &cfg, WithFileSystem(&mockFS{}))
	if err != nil {
		t.Fatalf("expected success with no files, got %v", err)
	}
}

func TestResolverSearchOrder(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]bool
		wantConfig string
		wantEnv    string
	}{
		{"none", nil, "", ""},
		{"program file wins", map[string]bool{"./ghusers.yml": true, "./config.yml": true}, "./ghusers.yml", ""},
		{"user config dir", map[string]bool{"/home/u/.config/ghusers/config.yml": true}, "/home/u/.config/ghusers/config.yml", ""},
		{"env file never discovered", map[string]bool{".env.ghusers": true, ".env": true}, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := &Resolver{FileSystem: &mockFS{files: tc.files, configDir: "/home/u/.config"}}
			got := r.ResolveFiles("ghusers", LoaderConfig{})
			if got.ConfigFile != tc.wantConfig || got.EnvFile != tc.wantEnv {
				t.Errorf("ResolveFiles = %+v, want config %q env %q", got, tc.wantConfig, tc.wantEnv)
			}
		})
	}
}

func TestResolverExplicitPathsKept(t *testing.T) {
	r := &Resolver{FileSystem: &mockFS{files: map[string]bool{"./config.yml": true}}}
	got := r.ResolveFiles("ghusers", LoaderConfig{ConfigFile: "/etc/ghusers.yml", EnvFile: "/etc/ghusers.env"})
	if got.ConfigFile != "/etc/ghusers.yml" || got.EnvFile != "/etc/ghusers.env" {
		t.Errorf("explicit paths not kept: %+v", got)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("GITHUB_PER_PAGE")
	want := []string{"github_per_page", "github.per_page", "github.per.page"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("envKeyVariants = %v, want %v", got, want)
	}
	if got := envKeyVariants("HOME"); len(got) != 1 || got[0] != "home" {
		t.Errorf("single-part key: %v", got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("X_")(&lc)
	WithEnvAlias("github.token", "GITHUB_TOKEN")(&lc)
	if lc.FileSystem != fs || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("options not applied: %+v", lc)
	}
	if lc.EnvPrefix != "X_" || lc.EnvAliases["github.token"] != "GITHUB_TOKEN" {
		t.Errorf("env options not applied: %+v", lc)
	}
}

type mockFS struct {
	files     map[string]bool
	configDir string
}

func (m *mockFS) Exists(path string) bool        { return m.files[path] }
func (m *mockFS) LoadEnv(string) error           { return nil }
func (m *mockFS) UserConfigDir() (string, error) { return m.configDir, nil }
