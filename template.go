package l10n

import (
	"context"
	"fmt"
)

const defaultLocaleKey = "locale"

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey is read from map template data to find the locale
	LocaleKey string
	// TemplateHelperKey renames the "translate" helper
	TemplateHelperKey string
	// OnMissing renders missing messages; the key is rendered when nil
	OnMissing func(locale, key string, args []any, err error) string
}

// TemplateHelpers exposes provider lookups for text/template and
// html/template. The first helper argument is a locale string, a Locale, a
// context.Context or a map holding the locale under LocaleKey.
func TemplateHelpers(p *Provider, cfg HelperConfig) map[string]any {
	if cfg.LocaleKey == "" {
		cfg.LocaleKey = defaultLocaleKey
	}
	translateKey := cfg.TemplateHelperKey
	if translateKey == "" {
		translateKey = "translate"
	}

	h := &helpers{provider: p, cfg: cfg}

	return map[string]any{
		translateKey: func(src any, key string, args ...any) string {
			return h.render(src, key, args, func(ctx context.Context, locale Locale) (string, bool, error) {
				return p.MessageFor(ctx, locale, key, args...)
			})
		},
		"translate_select": func(src any, key, selector string, args ...any) string {
			return h.render(src, key, args, func(ctx context.Context, locale Locale) (string, bool, error) {
				return p.SelectedMessageFor(ctx, locale, key, selector, args...)
			})
		},
		"translate_plural": func(src any, key string, count int, args ...any) string {
			return h.render(src, key, args, func(ctx context.Context, locale Locale) (string, bool, error) {
				return p.PluralMessageFor(ctx, locale, key, count, args...)
			})
		},
		"current_locale": func(src any) string {
			_, locale, ok := h.locale(src)
			if !ok {
				return ""
			}
			return locale.String()
		},
	}
}

type helpers struct {
	provider *Provider
	cfg      HelperConfig
}

func (h *helpers) render(src any, key string, args []any, lookup func(ctx context.Context, locale Locale) (string, bool, error)) string {
	ctx, locale, ok := h.locale(src)
	if h.provider == nil || !ok {
		return h.missing(locale, key, args, ErrMissingTranslation)
	}

	result, found, err := lookup(ctx, locale)
	if err != nil {
		return h.missing(locale, key, args, err)
	}
	if !found {
		return h.missing(locale, key, args, ErrMissingTranslation)
	}
	return result
}

func (h *helpers) missing(locale Locale, key string, args []any, err error) string {
	if h.cfg.OnMissing != nil {
		return h.cfg.OnMissing(locale.String(), key, args, err)
	}
	return key
}

func (h *helpers) locale(src any) (context.Context, Locale, bool) {
	ctx := context.Background()

	switch v := src.(type) {
	case nil:
		return ctx, Locale{}, false
	case Locale:
		return ctx, v, true
	case context.Context:
		if h.provider == nil {
			locale, ok := LocaleFrom(v)
			return v, locale, ok
		}
		locale, err := h.provider.CurrentLocale(v)
		return v, locale, err == nil
	case string:
		locale, ok := parseHelperLocale(v)
		return ctx, locale, ok
	case map[string]any:
		return h.locale(v[h.cfg.LocaleKey])
	case map[string]string:
		locale, ok := parseHelperLocale(v[h.cfg.LocaleKey])
		return ctx, locale, ok
	case fmt.Stringer:
		locale, ok := parseHelperLocale(v.String())
		return ctx, locale, ok
	default:
		return ctx, Locale{}, false
	}
}

func parseHelperLocale(value string) (Locale, bool) {
	if value == "" {
		return Locale{}, false
	}
	locale, err := ParseLocale(value)
	if err != nil {
		return Locale{}, false
	}
	return locale, true
}
