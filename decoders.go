package l10n

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// locationParser lets a parser pick a format specific parser per concrete location.
type locationParser interface {
	ParserFor(location string) Parser
}

// ExtensionParser selects a parser by the extension of the concrete location
// being parsed and falls back to PropertiesParser.
type ExtensionParser struct {
	parsers  map[string]Parser
	fallback Parser
}

var (
	_ Parser         = &ExtensionParser{}
	_ locationParser = &ExtensionParser{}
)

// NewExtensionParser registers the built-in formats. A nil fallback selects PropertiesParser.
func NewExtensionParser(fallback Parser) *ExtensionParser {
	if fallback == nil {
		fallback = PropertiesParser{}
	}
	p := &ExtensionParser{parsers: make(map[string]Parser), fallback: fallback}
	p.Register(".properties", PropertiesParser{})
	p.Register(".yaml", YAMLParser{})
	p.Register(".yml", YAMLParser{})
	p.Register(".json", JSONParser{})
	p.Register(".toml", TOMLParser{})
	p.Register(".ini", INIParser{})
	return p
}

// Register maps an extension such as ".yaml" to a parser.
func (p *ExtensionParser) Register(ext string, parser Parser) *ExtensionParser {
	if p == nil || parser == nil {
		return p
	}
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return p
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	p.parsers[ext] = parser
	return p
}

func (p *ExtensionParser) ParserFor(location string) Parser {
	if parser, ok := p.parsers[strings.ToLower(path.Ext(location))]; ok {
		return parser
	}
	return p.fallback
}

func (p *ExtensionParser) Parse(r io.Reader) (*Properties, error) {
	return p.fallback.Parse(r)
}

// YAMLParser reads nested YAML documents.
type YAMLParser struct{}

func (YAMLParser) Parse(r io.Reader) (*Properties, error) {
	data, err := readResource(r)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return newSealedProperties(), nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrParse, err)
	}
	return flattenDocument(raw), nil
}

// JSONParser reads nested JSON objects.
type JSONParser struct{}

func (JSONParser) Parse(r io.Reader) (*Properties, error) {
	data, err := readResource(r)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return newSealedProperties(), nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrParse, err)
	}
	return flattenDocument(raw), nil
}

// TOMLParser reads TOML documents; tables behave like nested maps.
type TOMLParser struct{}

func (TOMLParser) Parse(r io.Reader) (*Properties, error) {
	data, err := readResource(r)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return newSealedProperties(), nil
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: toml: %v", ErrParse, err)
	}
	return flattenDocument(raw), nil
}

// INIParser reads INI files. Keys of section "s" become "s.key" and the
// section doubles as the qualifier map at "s".
type INIParser struct{}

func (INIParser) Parse(r io.Reader) (*Properties, error) {
	data, err := readResource(r)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return newSealedProperties(), nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: ini: %v", ErrParse, err)
	}

	props := newProperties()
	for _, section := range file.Sections() {
		name := section.Name()
		for _, key := range section.Keys() {
			if name == ini.DefaultSection {
				props.set(key.Name(), key.Value())
				continue
			}
			props.set(name+"."+key.Name(), key.Value())
			props.set(qualifiedKey(name, key.Name()), key.Value())
		}
	}
	props.seal()
	return props, nil
}

func readResource(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("l10n: read resource: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

func newSealedProperties() *Properties {
	props := newProperties()
	props.seal()
	return props
}

func flattenDocument(raw map[string]any) *Properties {
	props := newProperties()
	flattenInto(props, "", raw)
	props.seal()
	return props
}

// flattenInto joins nested keys with "." and additionally exposes scalar
// children of a nested map as "parent[child]" qualifier entries.
func flattenInto(props *Properties, prefix string, node map[string]any) {
	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch value := node[key].(type) {
		case map[string]any:
			flattenInto(props, full, value)
			continue
		case map[any]any:
			converted := make(map[string]any, len(value))
			for k, v := range value {
				converted[fmt.Sprint(k)] = v
			}
			flattenInto(props, full, converted)
			continue
		default:
			text := scalarText(value)
			props.set(full, text)
			if prefix != "" {
				props.set(qualifiedKey(prefix, key), text)
			}
		}
	}
}

func scalarText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, scalarText(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
