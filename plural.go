package l10n

import (
	"math"
	"sort"
	"sync"
)

// PluralRule maps a count to the plural category its language uses for it.
// Rules are immutable and safe for concurrent use.
type PluralRule interface {
	Select(n int) PluralCategory
	// Categories lists the categories the rule can produce, other included
	Categories() []PluralCategory
}

type pluralRule struct {
	name       string
	categories []PluralCategory
	fn         func(n int) PluralCategory
}

var _ PluralRule = &pluralRule{}

// NewPluralRule wraps a selection function. PluralOther is always part of the
// declared categories and is returned whenever fn yields an empty category.
func NewPluralRule(name string, fn func(n int) PluralCategory, categories ...PluralCategory) PluralRule {
	seen := map[PluralCategory]bool{PluralOther: true}
	declared := []PluralCategory{PluralOther}
	for _, category := range categories {
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		declared = append(declared, category)
	}
	sort.Slice(declared, func(i, j int) bool {
		return pluralCategoryOrder(declared[i]) < pluralCategoryOrder(declared[j])
	})
	if fn == nil {
		fn = func(int) PluralCategory { return PluralOther }
	}
	return &pluralRule{name: name, categories: declared, fn: fn}
}

func (r *pluralRule) Select(n int) PluralCategory {
	if n < 0 {
		if n == math.MinInt {
			n = math.MaxInt
		} else {
			n = -n
		}
	}
	if category := r.fn(n); category != "" {
		return category
	}
	return PluralOther
}

func (r *pluralRule) Categories() []PluralCategory {
	out := make([]PluralCategory, len(r.categories))
	copy(out, r.categories)
	return out
}

func (r *pluralRule) String() string {
	return r.name
}

// PluralRules resolves and memoizes the rule of each language code. Unknown
// codes get the default rule where 1 is "one" and anything else "other".
type PluralRules struct {
	mu        sync.RWMutex
	overrides map[string]PluralRule
	memo      sync.Map
}

func NewPluralRules() *PluralRules {
	return &PluralRules{overrides: make(map[string]PluralRule)}
}

// RuleFor never fails; lang may be a bare language code or a full locale
// identifier.
func (r *PluralRules) RuleFor(lang string) PluralRule {
	code := normalizeLanguage(lang)
	if cached, ok := r.memo.Load(code); ok {
		return cached.(PluralRule)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.overrides[code]
	if !ok {
		rule = lookupPluralRule(code)
	}
	actual, _ := r.memo.LoadOrStore(code, rule)
	return actual.(PluralRule)
}

// Register overrides the rule of a language code.
func (r *PluralRules) Register(lang string, rule PluralRule) {
	code := normalizeLanguage(lang)
	if rule == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[code] = rule
	r.memo.Delete(code)
}

func lookupPluralRule(code string) PluralRule {
	if rule, ok := pluralRegistry[code]; ok {
		return rule
	}
	return ruleOne
}

// PluralLanguages lists the language codes with a built-in rule.
func PluralLanguages() []string {
	out := make([]string, 0, len(pluralRegistry))
	for code := range pluralRegistry {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
