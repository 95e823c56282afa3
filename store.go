package l10n

import (
	"sort"
	"strings"
)

// View exposes read only access to resolved resource values.
type View interface {
	// Get returns the raw value for key and ok=false if missing
	Get(key string) (string, bool)
	// Map returns the qualifier map stored as "key[qualifier]" entries
	Map(key string) (map[string]string, bool)
	// Keys returns the known keys in document order
	Keys() []string
}

// Properties is an ordered key/value mapping, read only after parsing.
type Properties struct {
	keys   []string
	values map[string]string
	maps   map[string]map[string]string
}

var _ View = &Properties{}

func newProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

// NewProperties builds a sealed mapping from plain key/value pairs, ordering
// keys lexically.
func NewProperties(values map[string]string) *Properties {
	props := newProperties()
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		props.set(key, values[key])
	}
	props.seal()
	return props
}

// set keeps the first-seen position of a key and the last value written.
func (p *Properties) set(key, value string) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// seal indexes "key[qualifier]" entries into qualifier maps.
func (p *Properties) seal() {
	p.maps = nil
	for _, key := range p.keys {
		base, qualifier, ok := splitQualifiedKey(key)
		if !ok {
			continue
		}
		if p.maps == nil {
			p.maps = make(map[string]map[string]string)
		}
		entries := p.maps[base]
		if entries == nil {
			entries = make(map[string]string)
			p.maps[base] = entries
		}
		entries[qualifier] = p.values[key]
	}
}

func (p *Properties) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	value, ok := p.values[key]
	return value, ok
}

// Map returns a copy of the qualifier map at key.
func (p *Properties) Map(key string) (map[string]string, bool) {
	if p == nil || p.maps == nil {
		return nil, false
	}
	entries, ok := p.maps[key]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(entries))
	for qualifier, value := range entries {
		out[qualifier] = value
	}
	return out, true
}

func (p *Properties) Keys() []string {
	if p == nil || len(p.keys) == 0 {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Values returns a copy of the plain key/value pairs.
func (p *Properties) Values() map[string]string {
	if p == nil {
		return nil
	}
	out := make(map[string]string, len(p.values))
	for key, value := range p.values {
		out[key] = value
	}
	return out
}

// Equal reports whether both mappings hold the same keys, order and values.
func (p *Properties) Equal(other *Properties) bool {
	if p.Len() != other.Len() {
		return false
	}
	for i, key := range p.Keys() {
		if other.keys[i] != key || other.values[key] != p.values[key] {
			return false
		}
	}
	return true
}

// ChainedView answers lookups from the first member view that has the key.
type ChainedView struct {
	views []View
}

var _ View = &ChainedView{}

// NewChainedView returns the single member directly when only one is given.
func NewChainedView(views ...View) View {
	filtered := make([]View, 0, len(views))
	for _, view := range views {
		if view != nil {
			filtered = append(filtered, view)
		}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &ChainedView{views: filtered}
}

func (c *ChainedView) Get(key string) (string, bool) {
	for _, view := range c.views {
		if value, ok := view.Get(key); ok {
			return value, true
		}
	}
	return "", false
}

// Map returns the whole map of the first view defining one; maps from later
// views are not merged in.
func (c *ChainedView) Map(key string) (map[string]string, bool) {
	for _, view := range c.views {
		if entries, ok := view.Map(key); ok {
			return entries, true
		}
	}
	return nil, false
}

func (c *ChainedView) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, view := range c.views {
		for _, key := range view.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}

func splitQualifiedKey(key string) (base, qualifier string, ok bool) {
	if !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	open := strings.LastIndexByte(key, '[')
	if open <= 0 || open >= len(key)-2 {
		return "", "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

func qualifiedKey(base, qualifier string) string {
	return base + "[" + qualifier + "]"
}
