// Package config defines runtime configuration for clawd-guide.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds all settings read from the environment at startup.
// It is never modified after Load returns.
type Config struct {
	// Host is the network interface to bind the HTTP server to.
	Host string `env:"CLAWDBOT_GATEWAY_HOST" envDefault:"0.0.0.0"`

	// Port is the HTTP server port.
	Port int `env:"CLAWDBOT_GATEWAY_PORT" envDefault:"18789"`

	// GuidePath is the HTML template served at every non-health path.
	GuidePath string `env:"CLAWDBOT_GUIDE_PATH" envDefault:"/usr/local/share/clawd-guide/index.html"`

	// AuthChoice replaces {{AUTH_CHOICE}} in the template.
	AuthChoice string `env:"CLAWDBOT_AUTH_CHOICE" envDefault:"(auto)"`

	// MissingReason replaces {{MISSING_REASON}} and is shown on the fallback page.
	MissingReason string `env:"CLAWDBOT_MISSING_REASON" envDefault:"Provider key missing"`

	// CacheTTL keeps a successfully read template for this long.
	// Zero means the template is read from disk on every request.
	CacheTTL time.Duration `env:"CLAWDBOT_GUIDE_CACHE_TTL" envDefault:"0s"`
}

// Load parses a Config from environ, a list of KEY=VALUE pairs as returned
// by os.Environ. Variables set to the empty string count as unset.
func Load(environ []string) (Config, error) {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" {
			continue
		}
		vars[k] = v
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, errors.Wrap(err, "parse environment")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return Config{}, errors.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.CacheTTL < 0 {
		return Config{}, errors.Errorf("invalid cache ttl %s", cfg.CacheTTL)
	}
	return cfg, nil
}
