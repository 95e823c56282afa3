package l10n

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Typed converts the value at key to kind. A missing key yields nil, nil.
func (p *Provider) Typed(ctx context.Context, key string, kind Kind) (any, error) {
	view, err := p.Resources(ctx)
	if err != nil {
		return nil, err
	}

	if kind == KindStringMap {
		if entries, ok := view.Map(key); ok {
			return entries, nil
		}
	}

	raw, ok := view.Get(key)
	if !ok {
		return nil, nil
	}
	return convertValue(key, raw, kind)
}

func (p *Provider) Bool(ctx context.Context, key string) (bool, bool, error) {
	return typedAs[bool](p, ctx, key, KindBool)
}

func (p *Provider) Int(ctx context.Context, key string) (int, bool, error) {
	return typedAs[int](p, ctx, key, KindInt)
}

func (p *Provider) Int64(ctx context.Context, key string) (int64, bool, error) {
	return typedAs[int64](p, ctx, key, KindInt64)
}

func (p *Provider) Float32(ctx context.Context, key string) (float32, bool, error) {
	return typedAs[float32](p, ctx, key, KindFloat32)
}

func (p *Provider) Float64(ctx context.Context, key string) (float64, bool, error) {
	return typedAs[float64](p, ctx, key, KindFloat64)
}

// StringValue returns the raw value at key without formatting it.
func (p *Provider) StringValue(ctx context.Context, key string) (string, bool, error) {
	return typedAs[string](p, ctx, key, KindString)
}

// Strings splits the value at key on commas.
func (p *Provider) Strings(ctx context.Context, key string) ([]string, bool, error) {
	return typedAs[[]string](p, ctx, key, KindStrings)
}

// StringMap returns the qualifier map at key, or parses "k=v" pairs from the
// plain value.
func (p *Provider) StringMap(ctx context.Context, key string) (map[string]string, bool, error) {
	return typedAs[map[string]string](p, ctx, key, KindStringMap)
}

func typedAs[T any](p *Provider, ctx context.Context, key string, kind Kind) (T, bool, error) {
	var zero T
	value, err := p.Typed(ctx, key, kind)
	if err != nil || value == nil {
		return zero, false, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false, &ConversionError{Key: key, Kind: kind, Value: fmt.Sprint(value)}
	}
	return typed, true, nil
}

func convertValue(key, raw string, kind Kind) (any, error) {
	text := strings.TrimSpace(raw)
	fail := func(err error) (any, error) {
		return nil, &ConversionError{Key: key, Kind: kind, Value: raw, Err: err}
	}

	switch kind {
	case KindString:
		return raw, nil
	case KindBool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return fail(err)
		}
		return v, nil
	case KindInt:
		v, err := strconv.Atoi(text)
		if err != nil {
			return fail(err)
		}
		return v, nil
	case KindInt64:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return fail(err)
		}
		return v, nil
	case KindFloat32:
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return fail(err)
		}
		return float32(v), nil
	case KindFloat64:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fail(err)
		}
		return v, nil
	case KindStrings:
		return splitList(raw), nil
	case KindStringMap:
		entries, err := parsePairs(raw)
		if err != nil {
			return fail(err)
		}
		return entries, nil
	default:
		return fail(fmt.Errorf("%w: unknown kind %d", ErrInvalidArgument, int(kind)))
	}
}

// splitList splits on commas, trimming items and dropping empty ones.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePairs(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, item := range splitList(raw) {
		k, v, ok := strings.Cut(item, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("malformed pair %q", item)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
