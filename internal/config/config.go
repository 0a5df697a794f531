// Package config defines service configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config holding every default.
// - Load layers a YAML file and LOBBY_* environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCatalogURL is the version-pinned Data Dragon champion document.
const DefaultCatalogURL = "http://ddragon.leagueoflegends.com/cdn/12.14.1/data/en_US/champion.json"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogURL is fetched once at startup.
	CatalogURL string `koanf:"catalog_url"`

	// CatalogTimeoutMS bounds the startup catalog fetch.
	CatalogTimeoutMS int `koanf:"catalog_timeout_ms"`

	// IconDir holds <champion>.png files.
	IconDir string `koanf:"icon_dir"`

	// Seed feeds the roster sampler; equal seeds propose equal rosters.
	Seed uint64 `koanf:"seed"`

	// SessionCapacity bounds the number of sessions kept in memory.
	SessionCapacity int `koanf:"session_capacity"`

	// SessionTTLMinutes expires idle sessions.
	SessionTTLMinutes int `koanf:"session_ttl_minutes"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsDeployment, when set, labels every series deployment=<value>.
	MetricsDeployment string `koanf:"metrics_deployment"`

	// MetricsRefreshSeconds is how often system and session gauges refresh.
	MetricsRefreshSeconds int `koanf:"metrics_refresh_seconds"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8501",
		CatalogURL:        DefaultCatalogURL,
		CatalogTimeoutMS:  10_000,
		IconDir:           "img/Champion Icons",
		Seed:              1,
		SessionCapacity:   1_000,
		SessionTTLMinutes: 60,

		MetricsNamespace:      "lobby",
		MetricsRefreshSeconds: 10,
	}
}

// CatalogTimeout returns CatalogTimeoutMS as a duration.
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.CatalogTimeoutMS) * time.Millisecond
}

// MetricsRefresh returns MetricsRefreshSeconds as a duration.
func (c *Config) MetricsRefresh() time.Duration {
	return time.Duration(c.MetricsRefreshSeconds) * time.Second
}

// SessionTTL returns SessionTTLMinutes as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.CatalogURL) == "":
		return fmt.Errorf("%w: catalog_url must not be empty", ErrInvalidConfig)
	case c.CatalogTimeoutMS <= 0:
		return fmt.Errorf("%w: catalog_timeout_ms must be positive", ErrInvalidConfig)
	case c.SessionCapacity <= 0:
		return fmt.Errorf("%w: session_capacity must be positive", ErrInvalidConfig)
	case c.SessionTTLMinutes <= 0:
		return fmt.Errorf("%w: session_ttl_minutes must be positive", ErrInvalidConfig)
	case strings.TrimSpace(c.MetricsNamespace) == "":
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	case c.MetricsRefreshSeconds <= 0:
		return fmt.Errorf("%w: metrics_refresh_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}
