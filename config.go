package l10n

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Config captures provider setup
type Config struct {
	Locations     []string
	Loaders       []ResourceLoader
	ResourceFS    fs.FS
	BaseDir       string
	Parser        Parser
	CacheTTL      time.Duration
	Compiler      TemplateCompiler
	LocaleSource  LocaleSource
	DefaultLocale Locale
	Hooks         []LookupHook
	Logger        *slog.Logger

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	clock          func() time.Time
	pluralRules    map[string]PluralRule
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{CacheTTL: CacheForever}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.Locations) == 0 {
		return nil, ErrNoLocations
	}

	if cfg.ResourceFS == nil {
		cfg.ResourceFS = os.DirFS(".")
	}

	if len(cfg.Loaders) == 0 {
		cfg.Loaders = []ResourceLoader{
			NewFSLoader(SchemeClasspath, cfg.ResourceFS),
			NewFileLoader(cfg.BaseDir),
		}
	}

	if cfg.Parser == nil {
		cfg.Parser = NewExtensionParser(nil)
	}

	if cfg.Compiler == nil {
		cfg.Compiler = PrinterCompiler{}
	}

	if cfg.LocaleSource == nil {
		fallback := cfg.DefaultLocale
		cfg.LocaleSource = ContextLocaleSource{Default: &fallback}
	}

	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}

	return cfg, nil
}

// WithLocations appends base location templates such as
// "classpath:i18n/messages.properties". Earlier templates win lookups.
func WithLocations(templates ...string) Option {
	return func(c *Config) error {
		for _, template := range templates {
			template = strings.TrimSpace(template)
			if template == "" {
				continue
			}
			if _, _, err := SplitLocation(template); err != nil {
				return err
			}
			c.Locations = append(c.Locations, template)
		}
		return nil
	}
}

// WithLoaders replaces the default classpath and file loaders.
func WithLoaders(loaders ...ResourceLoader) Option {
	return func(c *Config) error {
		for _, loader := range loaders {
			if loader == nil {
				continue
			}
			c.Loaders = append(c.Loaders, loader)
		}
		return nil
	}
}

// WithResourceFS sets the filesystem backing "classpath:" locations,
// typically an embed.FS.
func WithResourceFS(fsys fs.FS) Option {
	return func(c *Config) error {
		c.ResourceFS = fsys
		return nil
	}
}

// WithBaseDir resolves relative "file:" locations against dir.
func WithBaseDir(dir string) Option {
	return func(c *Config) error {
		c.BaseDir = dir
		return nil
	}
}

func WithParser(parser Parser) Option {
	return func(c *Config) error {
		c.Parser = parser
		return nil
	}
}

// WithCacheTTLSeconds sets the resolved-resource lifetime in seconds; 0
// disables caching and negative values cache forever.
func WithCacheTTLSeconds(seconds int) Option {
	return func(c *Config) error {
		if seconds < 0 {
			c.CacheTTL = CacheForever
			return nil
		}
		c.CacheTTL = time.Duration(seconds) * time.Second
		return nil
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl < 0 {
			ttl = CacheForever
		}
		c.CacheTTL = ttl
		return nil
	}
}

func WithTemplateCompiler(compiler TemplateCompiler) Option {
	return func(c *Config) error {
		c.Compiler = compiler
		return nil
	}
}

func WithLocaleSource(source LocaleSource) Option {
	return func(c *Config) error {
		c.LocaleSource = source
		return nil
	}
}

// WithDefaultLocale sets the locale used when the context carries none. It
// has no effect when a custom LocaleSource is configured.
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		parsed, err := ParseLocale(locale)
		if err != nil {
			return err
		}
		c.DefaultLocale = parsed
		return nil
	}
}

// WithPluralRule overrides the plural rule of a language.
func WithPluralRule(lang string, rule PluralRule) Option {
	return func(c *Config) error {
		if rule == nil || normalizeLanguage(lang) == "" {
			return fmt.Errorf("%w: plural rule needs a language and a rule", ErrInvalidArgument)
		}
		if c.pluralRules == nil {
			c.pluralRules = make(map[string]PluralRule)
		}
		c.pluralRules[lang] = rule
		return nil
	}
}

func WithLookupHooks(hooks ...LookupHook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, filterHooks(hooks)...)
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) error {
		c.tracerProvider = tp
		return nil
	}
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Config) error {
		c.meterProvider = mp
		return nil
	}
}

// WithClock replaces time.Now for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Config) error {
		c.clock = now
		return nil
	}
}

// BuildProvider wires the loader chain, resolver, caches and plural rules.
func (cfg *Config) BuildProvider() (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidArgument)
	}
	if len(cfg.Locations) == 0 {
		return nil, ErrNoLocations
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}

	tel := newTelemetry(cfg.tracerProvider, cfg.meterProvider)
	loader := NewChainLoader(cfg.Loaders...)
	for _, location := range cfg.Locations {
		if !loader.Supports(location) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocation, location)
		}
	}

	resolver := NewResolver(loader, cfg.Parser,
		WithResolverLogger(cfg.Logger),
		withResolverTelemetry(tel))

	locations := append([]string(nil), cfg.Locations...)
	resources := NewResourceCache(func(ctx context.Context, locale Locale) (View, error) {
		return resolver.ResolveAll(ctx, locations, locale)
	},
		WithTTL(cfg.CacheTTL),
		WithCacheClock(cfg.clock),
		WithCacheLogger(cfg.Logger),
		withCacheTelemetry(tel))

	plurals := NewPluralRules()
	for lang, rule := range cfg.pluralRules {
		plurals.Register(lang, rule)
	}

	cfg.Logger.Debug("l10n: provider configured",
		"locations", locations,
		"cache_ttl", cfg.CacheTTL.String())

	return &Provider{
		locations: locations,
		resources: resources,
		compiler:  cfg.Compiler,
		locales:   cfg.LocaleSource,
		plurals:   plurals,
		hooks:     append([]LookupHook(nil), cfg.Hooks...),
		logger:    cfg.Logger,
	}, nil
}

// New is shorthand for NewConfig followed by BuildProvider.
func New(opts ...Option) (*Provider, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.BuildProvider()
}
