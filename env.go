package l10n

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds provider settings read from the environment.
type EnvConfig struct {
	Locations     []string      `env:"L10N_LOCATIONS" envSeparator:","`
	DefaultLocale string        `env:"L10N_DEFAULT_LOCALE"`
	CacheTTL      time.Duration `env:"L10N_CACHE_TTL" envDefault:"-1s"`
	BaseDir       string        `env:"L10N_BASE_DIR"`
}

// LoadEnvConfig parses EnvConfig from the process environment.
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("l10n: load env config: %w", err)
	}
	return cfg, nil
}

// LoadEnvConfigFrom parses EnvConfig from the given variables instead of the
// process environment.
func LoadEnvConfigFrom(environ map[string]string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return EnvConfig{}, fmt.Errorf("l10n: load env config: %w", err)
	}
	return cfg, nil
}

// Options converts the settings into config options. Empty values are
// skipped so explicit options can still be appended.
func (c EnvConfig) Options() []Option {
	opts := []Option{WithCacheTTL(c.CacheTTL)}
	if len(c.Locations) > 0 {
		opts = append(opts, WithLocations(c.Locations...))
	}
	if c.DefaultLocale != "" {
		opts = append(opts, WithDefaultLocale(c.DefaultLocale))
	}
	if c.BaseDir != "" {
		opts = append(opts, WithBaseDir(c.BaseDir))
	}
	return opts
}
