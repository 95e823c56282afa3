package l10n

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLocation indicates that no configured loader understands a location scheme.
	ErrUnsupportedLocation = errors.New("l10n: unsupported location")

	// ErrResourceNotFound indicates that every fallback candidate for a location was missing.
	ErrResourceNotFound = errors.New("l10n: resource not found")

	// ErrParse marks malformed resource content.
	ErrParse = errors.New("l10n: parse error")

	// ErrTypeConversion is returned by typed getters when a present value cannot be converted.
	ErrTypeConversion = errors.New("l10n: type conversion failed")

	// ErrNoLocale indicates that the locale source could not provide a current locale.
	ErrNoLocale = errors.New("l10n: no current locale")

	// ErrInvalidLocation marks location templates that cannot be expanded.
	ErrInvalidLocation = errors.New("l10n: invalid location")

	// ErrInvalidLocale marks language/region pairs that violate the locale invariant.
	ErrInvalidLocale = errors.New("l10n: invalid locale")

	// ErrInvalidArgument signals a caller contract violation.
	ErrInvalidArgument = errors.New("l10n: invalid argument")

	// ErrNoLocations is returned when a provider is configured without base locations.
	ErrNoLocations = errors.New("l10n: no resource locations configured")

	// ErrMissingTranslation indicates that no translation was found for locale/key.
	ErrMissingTranslation = errors.New("l10n: missing translation")
)

// ParseError reports malformed resource content at a physical line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("l10n: parse error at line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// ConversionError reports a raw resource value that cannot be converted to the requested kind.
type ConversionError struct {
	Key   string
	Kind  Kind
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("l10n: convert %q (%q) to %s: %v", e.Key, e.Value, e.Kind, e.Err)
	}
	return fmt.Sprintf("l10n: convert %q (%q) to %s", e.Key, e.Value, e.Kind)
}

func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeConversion}
	}
	return []error{ErrTypeConversion, e.Err}
}
