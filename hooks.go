package l10n

import "context"

// LookupOperation names the provider operation a hook observes.
type LookupOperation string

const (
	OpMessage   LookupOperation = "message"
	OpSelect    LookupOperation = "select"
	OpPlural    LookupOperation = "plural"
	OpTranslate LookupOperation = "translate"
)

const (
	metadataPluralCategory = "plural.category"
	metadataPluralExact    = "plural.exact"
	metadataPluralFallback = "plural.fallback"
	metadataResourceKey    = "resource.key"
)

// LookupHook observes message lookups. BeforeLookup may rewrite Key, Selector
// or Args; AfterLookup may rewrite Result, Found or Error.
type LookupHook interface {
	BeforeLookup(ctx *LookupContext)
	AfterLookup(ctx *LookupContext)
}

type LookupContext struct {
	Context   context.Context
	Operation LookupOperation
	Locale    Locale
	Key       string
	Selector  string
	Count     int
	Args      []any
	Result    string
	Found     bool
	Error     error
	Metadata  map[string]any
}

func (ctx *LookupContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *LookupContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *LookupContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// ResourceKey returns the effective resource key that produced the result,
// e.g. "items[one]" for a plural lookup.
func (ctx *LookupContext) ResourceKey() string {
	if value, ok := ctx.MetadataValue(metadataResourceKey); ok {
		if key, okCast := value.(string); okCast {
			return key
		}
	}
	return ""
}

// PluralMetadata returns plural-specific hook metadata if present.
func (ctx *LookupContext) PluralMetadata() (PluralHookMetadata, bool) {
	if ctx == nil || len(ctx.Metadata) == 0 {
		return PluralHookMetadata{}, false
	}

	meta := PluralHookMetadata{Count: ctx.Count}
	seen := false

	if value, ok := ctx.Metadata[metadataPluralCategory]; ok {
		if category, okCast := asPluralCategory(value); okCast {
			meta.Category = category
			seen = true
		}
	}

	if value, ok := ctx.Metadata[metadataPluralExact]; ok {
		if exact, okCast := value.(bool); okCast {
			meta.Exact = exact
			seen = true
		}
	}

	if value, ok := ctx.Metadata[metadataPluralFallback]; ok {
		if fallback, okCast := asPluralCategory(value); okCast {
			meta.Fallback = fallback
			seen = true
		}
	}

	return meta, seen
}

func asPluralCategory(value any) (PluralCategory, bool) {
	switch v := value.(type) {
	case PluralCategory:
		return v, true
	case string:
		return parsePluralCategory(v)
	default:
		return "", false
	}
}

type PluralHookMetadata struct {
	Category PluralCategory
	Count    int
	// Exact is set when an entry for the literal count was used
	Exact bool
	// Fallback is set when the rule category was missing from the map
	Fallback PluralCategory
}

type LookupHookFuncs struct {
	Before func(ctx *LookupContext)
	After  func(ctx *LookupContext)
}

var _ LookupHook = LookupHookFuncs{}

func (h LookupHookFuncs) BeforeLookup(ctx *LookupContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h LookupHookFuncs) AfterLookup(ctx *LookupContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

func filterHooks(hooks []LookupHook) []LookupHook {
	var filtered []LookupHook
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		filtered = append(filtered, hook)
	}
	return filtered
}

// runHooked wraps fn with the before/after hooks.
func runHooked(hooks []LookupHook, lc *LookupContext, fn func(lc *LookupContext) (string, bool, error)) (string, bool, error) {
	for _, hook := range hooks {
		hook.BeforeLookup(lc)
	}

	lc.Result, lc.Found, lc.Error = fn(lc)

	for _, hook := range hooks {
		hook.AfterLookup(lc)
	}

	return lc.Result, lc.Found, lc.Error
}
