package l10n

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CandidateLocations expands a location template for a locale, most specific
// first: {prefix}_{lang}_{region}{suffix}, {prefix}_{lang}{suffix}, then the
// root {prefix}{suffix}. The template is split at the last "." of its final
// path segment; the scheme, if any, is kept as part of the prefix.
func CandidateLocations(template string, locale Locale) ([]string, error) {
	if locale.Language == "" && locale.Region != "" {
		return nil, fmt.Errorf("%w: region %q without language", ErrInvalidLocale, locale.Region)
	}

	boundary := max(strings.LastIndexByte(template, '/'), strings.IndexByte(template, ':'))
	dot := strings.LastIndexByte(template, '.')
	if dot <= boundary || dot == len(template)-1 {
		return nil, fmt.Errorf("%w: %q has no file extension", ErrInvalidLocation, template)
	}

	prefix, suffix := template[:dot], template[dot:]
	candidates := make([]string, 0, 3)
	add := func(candidate string) {
		for _, existing := range candidates {
			if existing == candidate {
				return
			}
		}
		candidates = append(candidates, candidate)
	}

	if locale.Language != "" && locale.Region != "" {
		add(prefix + "_" + locale.Language + "_" + locale.Region + suffix)
	}
	if locale.Language != "" {
		add(prefix + "_" + locale.Language + suffix)
	}
	add(prefix + suffix)

	return candidates, nil
}

// Resolver finds and parses the most specific resource for a location template
// and locale.
type Resolver struct {
	loader    ResourceLoader
	parser    Parser
	logger    *slog.Logger
	telemetry *telemetry
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func withResolverTelemetry(t *telemetry) ResolverOption {
	return func(r *Resolver) {
		if t != nil {
			r.telemetry = t
		}
	}
}

func NewResolver(loader ResourceLoader, parser Parser, opts ...ResolverOption) *Resolver {
	if parser == nil {
		parser = NewExtensionParser(nil)
	}
	r := &Resolver{
		loader:    loader,
		parser:    parser,
		logger:    discardLogger(),
		telemetry: defaultTelemetry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve probes the candidate locations in order and parses the first one
// that opens.
func (r *Resolver) Resolve(ctx context.Context, template string, locale Locale) (*Properties, error) {
	ctx, span := r.telemetry.tracer.Start(ctx, "l10n.resolve", trace.WithAttributes(
		attribute.String("l10n.template", template),
		localeAttr(locale),
	))
	defer span.End()

	props, err := r.resolve(ctx, span, template, locale)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return props, nil
}

func (r *Resolver) resolve(ctx context.Context, span trace.Span, template string, locale Locale) (*Properties, error) {
	if r.loader == nil || !r.loader.Supports(template) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocation, template)
	}

	candidates, err := CandidateLocations(template, locale)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		props, err := r.load(ctx, candidate)
		if err == nil {
			span.SetAttributes(attribute.String("l10n.location", candidate))
			r.logger.Debug("l10n: resolved resource", "template", template, "locale", locale.String(), "location", candidate)
			return props, nil
		}
		if isNotFound(err) {
			r.logger.Debug("l10n: candidate missing", "location", candidate)
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("%w: %s for locale %q (tried %s)",
		ErrResourceNotFound, template, locale.String(), strings.Join(candidates, ", "))
}

// ResolveAll resolves every template for the same locale and chains the
// results in template order.
func (r *Resolver) ResolveAll(ctx context.Context, templates []string, locale Locale) (View, error) {
	if len(templates) == 0 {
		return nil, ErrNoLocations
	}

	views := make([]View, 0, len(templates))
	for _, template := range templates {
		props, err := r.Resolve(ctx, template, locale)
		if err != nil {
			return nil, err
		}
		views = append(views, props)
	}
	return NewChainedView(views...), nil
}

func (r *Resolver) load(ctx context.Context, location string) (*Properties, error) {
	rc, err := r.loader.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			r.logger.Debug("l10n: close resource", "location", location, "error", cerr)
		}
	}()

	props, err := r.parserFor(location).Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("l10n: parse %s: %w", location, err)
	}
	return props, nil
}

func (r *Resolver) parserFor(location string) Parser {
	if lp, ok := r.parser.(locationParser); ok {
		if parser := lp.ParserFor(location); parser != nil {
			return parser
		}
	}
	return r.parser
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
