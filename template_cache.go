package l10n

import "context"

type templateKey struct {
	locale Locale
	key    string
}

type templateEntry struct {
	source   string
	compiled CompiledTemplate
}

// TemplateCache memoizes compiled templates by locale and resource key. It is
// not synchronized; each execution context owns its own instance.
type TemplateCache struct {
	entries map[templateKey]templateEntry
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{entries: make(map[templateKey]templateEntry)}
}

// get returns the compiled template for key, compiling again when the
// source text differs from the cached one.
func (c *TemplateCache) get(compiler TemplateCompiler, locale Locale, key, source string) (CompiledTemplate, error) {
	k := templateKey{locale: locale, key: key}
	if entry, ok := c.entries[k]; ok && entry.source == source {
		return entry.compiled, nil
	}

	compiled, err := compiler.Compile(locale, source)
	if err != nil {
		return nil, err
	}
	c.entries[k] = templateEntry{source: source, compiled: compiled}
	return compiled, nil
}

func (c *TemplateCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

func (c *TemplateCache) Reset() {
	if c == nil {
		return
	}
	clear(c.entries)
}

type templateCacheKey struct{}

// WithTemplateCache attaches a fresh template cache to ctx. Contexts carrying
// one must not be shared by goroutines formatting concurrently.
func WithTemplateCache(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, templateCacheKey{}, NewTemplateCache())
}

func TemplateCacheFrom(ctx context.Context) (*TemplateCache, bool) {
	if ctx == nil {
		return nil, false
	}
	cache, ok := ctx.Value(templateCacheKey{}).(*TemplateCache)
	return cache, ok && cache != nil
}
