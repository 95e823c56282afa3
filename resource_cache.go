package l10n

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// CacheForever keeps resolved resources until they are invalidated.
const CacheForever time.Duration = -1

// LoadFunc resolves the resources of a single locale.
type LoadFunc func(ctx context.Context, locale Locale) (View, error)

type cacheEntry struct {
	view      View
	expiresAt time.Time
}

// ResourceCache memoizes resolved resources per locale. Concurrent misses for
// the same locale share one load; distinct locales never wait on each other.
// Failed loads are not cached, and loads still in flight when the cache is
// invalidated or purged are served to their callers but never stored.
type ResourceCache struct {
	load      LoadFunc
	ttl       time.Duration
	now       func() time.Time
	logger    *slog.Logger
	telemetry *telemetry

	mu      sync.RWMutex
	entries map[Locale]cacheEntry
	gen     uint64
	group   singleflight.Group
}

// CacheOption configures a ResourceCache.
type CacheOption func(*ResourceCache)

// WithTTL sets the entry lifetime. Negative values cache forever and zero
// disables caching so every call reloads.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *ResourceCache) {
		if ttl < 0 {
			ttl = CacheForever
		}
		c.ttl = ttl
	}
}

// WithCacheClock replaces time.Now for expiry checks.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *ResourceCache) {
		if now != nil {
			c.now = now
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *ResourceCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func withCacheTelemetry(t *telemetry) CacheOption {
	return func(c *ResourceCache) {
		if t != nil {
			c.telemetry = t
		}
	}
}

func NewResourceCache(load LoadFunc, opts ...CacheOption) *ResourceCache {
	c := &ResourceCache{
		load:      load,
		ttl:       CacheForever,
		now:       time.Now,
		logger:    discardLogger(),
		telemetry: defaultTelemetry(),
		entries:   make(map[Locale]cacheEntry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Get returns the cached resources for locale, loading them on a miss.
func (c *ResourceCache) Get(ctx context.Context, locale Locale) (View, error) {
	attrs := metric.WithAttributes(localeAttr(locale))

	if c.ttl == 0 {
		c.telemetry.misses.Add(ctx, 1, attrs)
		return c.resolve(ctx, locale, c.generation())
	}

	if view, ok := c.lookup(locale); ok {
		c.telemetry.hits.Add(ctx, 1, attrs)
		return view, nil
	}
	c.telemetry.misses.Add(ctx, 1, attrs)

	gen := c.generation()
	result, err, shared := c.group.Do(flightKey(locale, gen), func() (any, error) {
		if view, ok := c.lookup(locale); ok {
			return view, nil
		}
		// a caller giving up must not fail the callers sharing this load
		return c.resolve(context.WithoutCancel(ctx), locale, gen)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("l10n: shared resource load", "locale", locale.String())
	}
	view, ok := result.(View)
	if !ok || view == nil {
		return nil, fmt.Errorf("%w: no resources loaded for locale %q", ErrResourceNotFound, locale.String())
	}
	return view, nil
}

// flightKey separates loads by locale fields and cache generation so a load
// started before an invalidation is never joined after it.
func flightKey(locale Locale, gen uint64) string {
	return locale.Language + "\x00" + locale.Region + "\x00" + strconv.FormatUint(gen, 10)
}

func (c *ResourceCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *ResourceCache) lookup(locale Locale) (View, bool) {
	c.mu.RLock()
	entry, ok := c.entries[locale]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		if current, ok := c.entries[locale]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, locale)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.view, true
}

// resolve stores the loaded view only while the cache is still at gen.
func (c *ResourceCache) resolve(ctx context.Context, locale Locale, gen uint64) (View, error) {
	ctx, span := c.telemetry.tracer.Start(ctx, "l10n.resource_cache.load", trace.WithAttributes(localeAttr(locale)))
	defer span.End()

	attrs := metric.WithAttributes(localeAttr(locale))
	c.telemetry.loads.Add(ctx, 1, attrs)

	view, err := c.load(ctx, locale)
	if err != nil {
		c.telemetry.loadErrors.Add(ctx, 1, attrs)
		recordSpanError(span, err)
		c.logger.Warn("l10n: resource load failed", "locale", locale.String(), "error", err)
		return nil, err
	}
	if view == nil {
		err := fmt.Errorf("%w: no resources loaded for locale %q", ErrResourceNotFound, locale.String())
		c.telemetry.loadErrors.Add(ctx, 1, attrs)
		recordSpanError(span, err)
		return nil, err
	}

	if c.ttl != 0 {
		entry := cacheEntry{view: view}
		if c.ttl > 0 {
			entry.expiresAt = c.now().Add(c.ttl)
		}
		c.mu.Lock()
		stale := c.gen != gen
		if !stale {
			c.entries[locale] = entry
		}
		c.mu.Unlock()
		if stale {
			c.logger.Debug("l10n: discarded resources loaded before invalidation", "locale", locale.String())
		}
	}
	return view, nil
}

// Invalidate drops the entries of the given locales. Loads in flight for any
// locale are not stored.
func (c *ResourceCache) Invalidate(locales ...Locale) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for _, locale := range locales {
		delete(c.entries, locale)
	}
}

// Purge drops every entry. Loads still in flight are not stored.
func (c *ResourceCache) Purge() {
	c.mu.Lock()
	c.entries = make(map[Locale]cacheEntry)
	c.gen++
	c.mu.Unlock()
}

func (c *ResourceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Locales lists the cached locales, expired entries included until they are
// next looked up.
func (c *ResourceCache) Locales() []Locale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Locale, 0, len(c.entries))
	for locale := range c.entries {
		out = append(out, locale)
	}
	return out
}
