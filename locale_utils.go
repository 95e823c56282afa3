package l10n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// NewLocale builds a locale from raw language and region codes.
func NewLocale(lang, region string) (Locale, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	region = strings.ToUpper(strings.TrimSpace(region))
	if lang == "" && region != "" {
		return Locale{}, fmt.Errorf("%w: region %q without language", ErrInvalidLocale, region)
	}
	return Locale{Language: lang, Region: region}, nil
}

// ParseLocale parses identifiers such as "it", "it_IT" or "it-IT". The empty
// string yields Root. Regions are only kept when stated explicitly.
func ParseLocale(tag string) (Locale, error) {
	normalized := normalizeLocale(tag)
	if normalized == "" || strings.EqualFold(normalized, "und") {
		return Root, nil
	}

	parsed, err := language.Parse(normalized)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, tag, err)
	}

	base, confidence := parsed.Base()
	if confidence == language.No {
		return Locale{}, fmt.Errorf("%w: %q has no language", ErrInvalidLocale, tag)
	}

	var region string
	if r, conf := parsed.Region(); conf == language.Exact {
		region = r.String()
	}

	return NewLocale(base.String(), region)
}

// MustParseLocale is like ParseLocale but panics on error.
func MustParseLocale(tag string) Locale {
	locale, err := ParseLocale(tag)
	if err != nil {
		panic(err)
	}
	return locale
}

// Tag converts the locale into a BCP 47 tag, falling back to language.Und.
func (l Locale) Tag() language.Tag {
	if l.Language == "" {
		return language.Und
	}
	value := l.Language
	if l.Region != "" {
		value += "-" + l.Region
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und
	}
	return tag
}

// normalizeLocale replaces underscores with hyphens and trims whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// normalizeLanguage reduces a language code or locale identifier to its
// lower-case primary language subtag.
func normalizeLanguage(code string) string {
	code = strings.ToLower(normalizeLocale(code))
	if idx := strings.IndexByte(code, '-'); idx >= 0 {
		code = code[:idx]
	}
	return code
}
