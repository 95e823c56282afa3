package l10n

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Provider answers message and typed lookups for the caller's current locale
// from the configured resource locations.
type Provider struct {
	locations []string
	resources *ResourceCache
	compiler  TemplateCompiler
	locales   LocaleSource
	plurals   *PluralRules
	hooks     []LookupHook
	logger    *slog.Logger
}

var _ Translator = &Provider{}

// Locations returns the configured location templates.
func (p *Provider) Locations() []string {
	out := make([]string, len(p.locations))
	copy(out, p.locations)
	return out
}

// CurrentLocale resolves the caller's locale through the locale source.
func (p *Provider) CurrentLocale(ctx context.Context) (Locale, error) {
	if p.locales == nil {
		return Locale{}, ErrNoLocale
	}
	locale, ok := p.locales.CurrentLocale(ctx)
	if !ok {
		return Locale{}, ErrNoLocale
	}
	return locale, nil
}

// Resources returns the resolved view of the current locale.
func (p *Provider) Resources(ctx context.Context) (View, error) {
	locale, err := p.CurrentLocale(ctx)
	if err != nil {
		return nil, err
	}
	return p.ResourcesFor(ctx, locale)
}

// ResourcesFor returns the resolved view of locale, resolving it on first use.
func (p *Provider) ResourcesFor(ctx context.Context, locale Locale) (View, error) {
	return p.resources.Get(ctx, locale)
}

// PluralRule returns the rule used for lang.
func (p *Provider) PluralRule(lang string) PluralRule {
	return p.plurals.RuleFor(lang)
}

// Message formats the template at key. A missing key is reported with
// found=false and no error.
func (p *Provider) Message(ctx context.Context, key string, args ...any) (string, bool, error) {
	locale, err := p.CurrentLocale(ctx)
	if err != nil {
		return "", false, err
	}
	return p.MessageFor(ctx, locale, key, args...)
}

// MessageFor is Message with an explicit locale.
func (p *Provider) MessageFor(ctx context.Context, locale Locale, key string, args ...any) (string, bool, error) {
	lc := &LookupContext{Context: ctx, Operation: OpMessage, Locale: locale, Key: key, Args: args}
	return runHooked(p.hooks, lc, p.message)
}

// SelectedMessage formats the selector entry of the map at key. Without a
// map at key the plain template at key is used.
func (p *Provider) SelectedMessage(ctx context.Context, key, selector string, args ...any) (string, bool, error) {
	locale, err := p.CurrentLocale(ctx)
	if err != nil {
		return "", false, err
	}
	return p.SelectedMessageFor(ctx, locale, key, selector, args...)
}

func (p *Provider) SelectedMessageFor(ctx context.Context, locale Locale, key, selector string, args ...any) (string, bool, error) {
	lc := &LookupContext{Context: ctx, Operation: OpSelect, Locale: locale, Key: key, Selector: selector, Args: args}
	return runHooked(p.hooks, lc, p.selected)
}

// PluralMessage formats the entry for count of the map at key, trying the
// literal count before the plural category of the locale language. count is
// passed as the first argument.
func (p *Provider) PluralMessage(ctx context.Context, key string, count int, args ...any) (string, bool, error) {
	locale, err := p.CurrentLocale(ctx)
	if err != nil {
		return "", false, err
	}
	return p.PluralMessageFor(ctx, locale, key, count, args...)
}

func (p *Provider) PluralMessageFor(ctx context.Context, locale Locale, key string, count int, args ...any) (string, bool, error) {
	lc := &LookupContext{Context: ctx, Operation: OpPlural, Locale: locale, Key: key, Count: count, Args: args}
	return runHooked(p.hooks, lc, p.plural)
}

// Translate implements Translator for callers that carry the locale as a
// string. Missing keys return ErrMissingTranslation.
func (p *Provider) Translate(locale, key string, args ...any) (string, error) {
	parsed, err := ParseLocale(locale)
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	lc := &LookupContext{Context: ctx, Operation: OpTranslate, Locale: parsed, Key: key, Args: args}
	result, found, err := runHooked(p.hooks, lc, p.message)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrMissingTranslation
	}
	return result, nil
}

// Preload resolves the given locales concurrently.
func (p *Provider) Preload(ctx context.Context, locales ...Locale) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, locale := range locales {
		g.Go(func() error {
			if _, err := p.resources.Get(gctx, locale); err != nil {
				return fmt.Errorf("l10n: preload %q: %w", locale.String(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Invalidate drops the resolved resources of the given locales.
func (p *Provider) Invalidate(locales ...Locale) {
	p.resources.Invalidate(locales...)
}

// Purge drops every resolved resource.
func (p *Provider) Purge() {
	p.resources.Purge()
	p.logger.Debug("l10n: resource cache purged")
}

func (p *Provider) message(lc *LookupContext) (string, bool, error) {
	view, err := p.resources.Get(lc.Context, lc.Locale)
	if err != nil {
		return "", false, err
	}

	source, ok := view.Get(lc.Key)
	if !ok {
		return "", false, nil
	}
	return p.render(lc, lc.Key, source, lc.Args)
}

func (p *Provider) selected(lc *LookupContext) (string, bool, error) {
	view, err := p.resources.Get(lc.Context, lc.Locale)
	if err != nil {
		return "", false, err
	}

	entries, ok := view.Map(lc.Key)
	if !ok {
		return p.message(lc)
	}
	source, ok := entries[lc.Selector]
	if !ok {
		return "", false, nil
	}
	return p.render(lc, qualifiedKey(lc.Key, lc.Selector), source, lc.Args)
}

// plural does not fall back to the plain template when a map exists at the
// key but lacks both the category and "other".
func (p *Provider) plural(lc *LookupContext) (string, bool, error) {
	view, err := p.resources.Get(lc.Context, lc.Locale)
	if err != nil {
		return "", false, err
	}

	args := make([]any, 0, len(lc.Args)+1)
	args = append(args, lc.Count)
	args = append(args, lc.Args...)

	entries, ok := view.Map(lc.Key)
	if !ok {
		source, ok := view.Get(lc.Key)
		if !ok {
			return "", false, nil
		}
		return p.render(lc, lc.Key, source, args)
	}

	exact := strconv.Itoa(lc.Count)
	if source, ok := entries[exact]; ok {
		lc.SetMetadata(metadataPluralExact, true)
		return p.render(lc, qualifiedKey(lc.Key, exact), source, args)
	}

	category := p.plurals.RuleFor(lc.Locale.Language).Select(lc.Count)
	lc.SetMetadata(metadataPluralCategory, category)
	if source, ok := entries[string(category)]; ok {
		return p.render(lc, qualifiedKey(lc.Key, string(category)), source, args)
	}

	if category != PluralOther {
		if source, ok := entries[string(PluralOther)]; ok {
			lc.SetMetadata(metadataPluralFallback, PluralOther)
			return p.render(lc, qualifiedKey(lc.Key, string(PluralOther)), source, args)
		}
	}
	return "", false, nil
}

func (p *Provider) render(lc *LookupContext, resourceKey, source string, args []any) (string, bool, error) {
	lc.SetMetadata(metadataResourceKey, resourceKey)

	cache, ok := TemplateCacheFrom(lc.Context)
	if !ok {
		cache = NewTemplateCache()
	}

	compiled, err := cache.get(p.compiler, lc.Locale, resourceKey, source)
	if err != nil {
		return "", false, fmt.Errorf("l10n: compile %q: %w", resourceKey, err)
	}
	return compiled.Format(args...), true, nil
}
