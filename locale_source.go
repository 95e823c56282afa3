package l10n

import "context"

// LocaleSource reports the locale of the current caller.
type LocaleSource interface {
	CurrentLocale(ctx context.Context) (Locale, bool)
}

// LocaleSourceFunc adapts a function to LocaleSource.
type LocaleSourceFunc func(ctx context.Context) (Locale, bool)

func (fn LocaleSourceFunc) CurrentLocale(ctx context.Context) (Locale, bool) {
	return fn(ctx)
}

// StaticLocaleSource always reports the same locale.
func StaticLocaleSource(locale Locale) LocaleSource {
	return LocaleSourceFunc(func(context.Context) (Locale, bool) {
		return locale, true
	})
}

type localeKey struct{}

// WithLocale stores the caller locale on ctx for ContextLocaleSource.
func WithLocale(ctx context.Context, locale Locale) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFrom returns the locale stored by WithLocale.
func LocaleFrom(ctx context.Context) (Locale, bool) {
	if ctx == nil {
		return Locale{}, false
	}
	locale, ok := ctx.Value(localeKey{}).(Locale)
	return locale, ok
}

// ContextLocaleSource reads the locale attached with WithLocale, falling back
// to Default when set.
type ContextLocaleSource struct {
	Default *Locale
}

var _ LocaleSource = ContextLocaleSource{}

func (s ContextLocaleSource) CurrentLocale(ctx context.Context) (Locale, bool) {
	if locale, ok := LocaleFrom(ctx); ok {
		return locale, true
	}
	if s.Default != nil {
		return *s.Default, true
	}
	return Locale{}, false
}
