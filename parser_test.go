package l10n

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, input string) *Properties {
	t.Helper()
	props, err := PropertiesParser{}.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return props
}

func TestPropertiesParserContinuation(t *testing.T) {
	props := parseString(t, "fruits  apple, \\\n  banana")

	assert.Equal(t, map[string]string{"fruits": "apple, banana"}, props.Values())
}

func TestPropertiesParserSeparators(t *testing.T) {
	props := parseString(t, "a=1\nb:2\nc 3\nd = 4\ne\t:\t5\nf")

	assert.Equal(t, map[string]string{
		"a": "1",
		"b": "2",
		"c": "3",
		"d": "4",
		"e": "5",
		"f": "",
	}, props.Values())
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, props.Keys())
}

func TestPropertiesParserComments(t *testing.T) {
	props := parseString(t, "# heading\n! bang comment\n\n   \n  # indented\nkey=value\n")

	assert.Equal(t, map[string]string{"key": "value"}, props.Values())
}

func TestPropertiesParserEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  string
	}{
		{name: "tab newline return", input: `k=a\tb\nc\rd`, key: "k", want: "a\tb\nc\rd"},
		{name: "unicode", input: `k=caf\u00e9`, key: "k", want: "café"},
		{name: "surrogate pair", input: `k=\uD83D\uDE00`, key: "k", want: "😀"},
		{name: "unpaired high surrogate", input: `k=\uD83Dx`, key: "k", want: "\uFFFDx"},
		{name: "lone low surrogate", input: `k=\uDE00`, key: "k", want: "\uFFFD"},
		{name: "literal escape", input: `k=\q\\`, key: "k", want: `q\`},
		{name: "escaped blank in key", input: `a\ b=c`, key: "a b", want: "c"},
		{name: "escaped separator in key", input: `a\=b=c`, key: "a=b", want: "c"},
		{name: "separator inside value", input: `url = http://example.com/a=b`, key: "url", want: "http://example.com/a=b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			props := parseString(t, tc.input)
			got, ok := props.Get(tc.key)
			require.True(t, ok, "key %q missing in %v", tc.key, props.Values())
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPropertiesParserLineEndings(t *testing.T) {
	props := parseString(t, "k=one\\\r\n   two\r\nz=1\rlast=\\")

	assert.Equal(t, map[string]string{
		"k":    "onetwo",
		"z":    "1",
		"last": "",
	}, props.Values())
}

func TestPropertiesParserDuplicateKeysLastWins(t *testing.T) {
	props := parseString(t, "a=1\nb=2\na=3")

	got, _ := props.Get("a")
	assert.Equal(t, "3", got)
	assert.Equal(t, []string{"a", "b"}, props.Keys())
}

func TestPropertiesParserMalformedUnicode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "bad digit", input: `k=\u12G4`, line: 1},
		{name: "truncated", input: `k=\u12`, line: 1},
		{name: "second line", input: "a=1\nk=\\uZZZZ", line: 2},
		{name: "after continuation", input: "a=x\\\n  y\nk=\\u00", line: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PropertiesParser{}.Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse))

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.line, perr.Line)
		})
	}
}

func TestPropertiesParserQualifierMaps(t *testing.T) {
	props := parseString(t, "items[one]=one item\nitems[other]=%d items\nitems=plain")

	entries, ok := props.Map("items")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"one": "one item", "other": "%d items"}, entries)

	plain, ok := props.Get("items")
	require.True(t, ok)
	assert.Equal(t, "plain", plain)

	raw, ok := props.Get("items[one]")
	require.True(t, ok)
	assert.Equal(t, "one item", raw)

	_, ok = props.Map("missing")
	assert.False(t, ok)
}

func TestPropertiesParserIdempotent(t *testing.T) {
	input := "# c\nb=2\na=\\u0041\\\n   continued\nitems[one]=x\n"

	first := parseString(t, input)
	second := parseString(t, input)

	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Values(), second.Values())
}

func TestPropertiesParserEmpty(t *testing.T) {
	props := parseString(t, "")

	assert.Equal(t, 0, props.Len())
	assert.Nil(t, props.Keys())
}

func TestParserFunc(t *testing.T) {
	var seen string
	parser := ParserFunc(func(r io.Reader) (*Properties, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		seen = string(data)
		return NewProperties(map[string]string{"k": "v"}), nil
	})

	props, err := parser.Parse(strings.NewReader("raw"))
	require.NoError(t, err)
	assert.Equal(t, "raw", seen)
	assert.Equal(t, map[string]string{"k": "v"}, props.Values())
}
