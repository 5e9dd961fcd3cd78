// Package config loads depscope's process-wide settings.
//
// Values are resolved in three layers, each overriding the previous one:
//
//  1. [Default]
//  2. a TOML file (explicit path, or $XDG_CONFIG_HOME/depscope/config.toml when present)
//  3. DEPSCOPE_* environment variables
//
// Command-line flags are applied on top by the CLI.
//
// Example file:
//
//	user_agent = "acme-audit"
//	http_timeout = "15s"
//	check_limit = 50
//
//	[history]
//	backend = "redis"
//	uri = "redis://localhost:6379/0"
//	retention = 100
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depscope/pkg/errors"
	"github.com/matzehuels/depscope/pkg/integrations"
	"github.com/matzehuels/depscope/pkg/integrations/github"
	"github.com/matzehuels/depscope/pkg/integrations/gitlab"
	"github.com/matzehuels/depscope/pkg/integrations/npm"
	"github.com/matzehuels/depscope/pkg/integrations/osv"
)

const (
	appName = "depscope"

	// DefaultUserAgent identifies depscope to the hosting and registry APIs.
	DefaultUserAgent = "depscope-remote-analyzer"

	// DefaultCheckLimit caps how many manifest entries are checked for
	// vulnerabilities and updates.
	DefaultCheckLimit = 50

	// DefaultListenAddr is where `depscope serve` listens.
	DefaultListenAddr = ":8080"

	// DefaultHistoryRetention is how many results the file and Redis
	// histories keep.
	DefaultHistoryRetention = 100
)

// History backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendMongo = "mongo"
	BackendRedis = "redis"
)

// Config is the resolved configuration.
type Config struct {
	GitHubAPIURL string   `toml:"github_api_url"`
	GitLabAPIURL string   `toml:"gitlab_api_url"`
	RegistryURL  string   `toml:"registry_url"`
	OSVURL       string   `toml:"osv_url"`
	UserAgent    string   `toml:"user_agent"`
	HTTPTimeout  Duration `toml:"http_timeout"`

	CheckLimit        int `toml:"check_limit"`
	UpdateConcurrency int `toml:"update_concurrency"` // 0 = unbounded

	History HistoryConfig `toml:"history"`
	Server  ServerConfig  `toml:"server"`
}

// HistoryConfig selects where completed results are recorded.
type HistoryConfig struct {
	Backend   string `toml:"backend"`
	URI       string `toml:"uri"`      // directory for file, connection URI otherwise
	Database  string `toml:"database"` // mongo database name
	Key       string `toml:"key"`      // mongo collection or redis list key
	Retention int    `toml:"retention"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GitHubAPIURL: github.DefaultBaseURL,
		GitLabAPIURL: gitlab.DefaultBaseURL,
		RegistryURL:  npm.DefaultBaseURL,
		OSVURL:       osv.DefaultBatchURL,
		UserAgent:    DefaultUserAgent,
		HTTPTimeout:  Duration{integrations.DefaultTimeout},
		CheckLimit:   DefaultCheckLimit,
		History: HistoryConfig{
			Backend:   BackendNone,
			Database:  appName,
			Key:       "analyses",
			Retention: DefaultHistoryRetention,
		},
		Server: ServerConfig{Addr: DefaultListenAddr},
	}
}

// Load resolves the configuration. An explicit path must exist; with an
// empty path the default location is read only if a file is there.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if p, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/depscope/config.toml).
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DataDir returns the directory for local state using the XDG standard
// (~/.local/share/depscope).
func DataDir() (string, error) {
	if home := os.Getenv("XDG_DATA_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	urls := []struct{ name, value string }{
		{"github_api_url", c.GitHubAPIURL},
		{"gitlab_api_url", c.GitLabAPIURL},
		{"registry_url", c.RegistryURL},
		{"osv_url", c.OSVURL},
	}
	for _, u := range urls {
		if err := errors.ValidateURL(u.value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", u.name)
		}
	}
	if c.HTTPTimeout.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http_timeout must be positive")
	}
	if c.CheckLimit <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "check_limit must be positive")
	}
	if c.UpdateConcurrency < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "update_concurrency cannot be negative")
	}

	switch c.History.Backend {
	case BackendNone, BackendFile, "":
	case BackendMongo, BackendRedis:
		if c.History.URI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "history.uri is required for the %s backend", c.History.Backend)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown history backend %q", c.History.Backend)
	}
	if c.History.Retention < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "history.retention cannot be negative")
	}
	return nil
}

// envPrefix namespaces every environment override.
const envPrefix = "DEPSCOPE_"

func applyEnv(c *Config) error {
	strs := map[string]*string{
		"GITHUB_API_URL":   &c.GitHubAPIURL,
		"GITLAB_API_URL":   &c.GitLabAPIURL,
		"REGISTRY_URL":     &c.RegistryURL,
		"OSV_URL":          &c.OSVURL,
		"USER_AGENT":       &c.UserAgent,
		"HISTORY_BACKEND":  &c.History.Backend,
		"HISTORY_URI":      &c.History.URI,
		"HISTORY_DATABASE": &c.History.Database,
		"HISTORY_KEY":      &c.History.Key,
		"LISTEN_ADDR":      &c.Server.Addr,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"CHECK_LIMIT":        &c.CheckLimit,
		"UPDATE_CONCURRENCY": &c.UpdateConcurrency,
		"HISTORY_RETENTION":  &c.History.Retention,
	}
	for name, dst := range ints {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", envPrefix, name)
		}
		*dst = n
	}

	if v, ok := lookup("HTTP_TIMEOUT"); ok {
		if err := c.HTTPTimeout.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sHTTP_TIMEOUT", envPrefix)
		}
	}
	return nil
}

// lookup returns a trimmed, non-empty DEPSCOPE_ variable.
func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
