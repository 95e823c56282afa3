package l10n

import "strings"

// Locale is a language/region pair. Either part may be empty, but a region
// never appears without a language.
type Locale struct {
	Language string
	Region   string
}

// Root is the empty locale addressing the base resource of a location.
var Root = Locale{}

func (l Locale) String() string {
	switch {
	case l.Language == "":
		return ""
	case l.Region == "":
		return l.Language
	default:
		return l.Language + "_" + l.Region
	}
}

func (l Locale) IsRoot() bool {
	return l.Language == "" && l.Region == ""
}

// PluralCategory is a grammatical plural qualifier.
type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

func parsePluralCategory(raw string) (PluralCategory, bool) {
	switch PluralCategory(strings.ToLower(strings.TrimSpace(raw))) {
	case PluralZero:
		return PluralZero, true
	case PluralOne:
		return PluralOne, true
	case PluralTwo:
		return PluralTwo, true
	case PluralFew:
		return PluralFew, true
	case PluralMany:
		return PluralMany, true
	case PluralOther:
		return PluralOther, true
	default:
		return "", false
	}
}

func pluralCategoryOrder(category PluralCategory) int {
	switch category {
	case PluralZero:
		return 0
	case PluralOne:
		return 1
	case PluralTwo:
		return 2
	case PluralFew:
		return 3
	case PluralMany:
		return 4
	case PluralOther:
		return 5
	default:
		return 99
	}
}

// Kind selects the primitive type a typed lookup converts to.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindInt64
	KindFloat32
	KindFloat64
	KindStrings
	KindStringMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindStrings:
		return "[]string"
	case KindStringMap:
		return "map[string]string"
	default:
		return "unknown"
	}
}
