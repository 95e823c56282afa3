package l10n

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Parser converts a resource stream into an ordered key/value mapping.
type Parser interface {
	Parse(r io.Reader) (*Properties, error)
}

// ParserFunc adapts a bare function to Parser.
type ParserFunc func(r io.Reader) (*Properties, error)

func (fn ParserFunc) Parse(r io.Reader) (*Properties, error) {
	return fn(r)
}

// PropertiesParser reads the line-oriented properties format: "key = value"
// pairs, '#' and '!' comment lines, \uXXXX, \t, \n and \r escapes, and a
// trailing backslash continuing the logical line.
type PropertiesParser struct{}

var _ Parser = PropertiesParser{}

func (PropertiesParser) Parse(r io.Reader) (*Properties, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("l10n: read resource: %w", err)
	}

	s := &propertiesScanner{src: []rune(string(data)), line: 1}
	props := newProperties()

	for {
		s.skipBlanks()
		c, ok := s.peek()
		if !ok {
			break
		}

		switch {
		case isLineTerminator(c):
			s.consumeTerminator()
			continue
		case c == '#' || c == '!':
			s.skipLine()
			continue
		}

		key, err := s.readToken(true)
		if err != nil {
			return nil, err
		}

		s.skipBlanks()
		if c, ok := s.peek(); ok && isSeparator(c) {
			s.pos++
			s.skipBlanks()
		}

		value, err := s.readToken(false)
		if err != nil {
			return nil, err
		}
		props.set(key, value)
	}

	props.seal()
	return props, nil
}

type propertiesScanner struct {
	src  []rune
	pos  int
	line int
}

func (s *propertiesScanner) peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *propertiesScanner) skipBlanks() {
	for s.pos < len(s.src) && isBlank(s.src[s.pos]) {
		s.pos++
	}
}

func (s *propertiesScanner) skipLine() {
	for s.pos < len(s.src) && !isLineTerminator(s.src[s.pos]) {
		s.pos++
	}
}

func (s *propertiesScanner) consumeTerminator() {
	if s.pos >= len(s.src) {
		return
	}
	if s.src[s.pos] == '\r' {
		s.pos++
		if s.pos < len(s.src) && s.src[s.pos] == '\n' {
			s.pos++
		}
	} else {
		s.pos++
	}
	s.line++
}

// readToken reads a key (stopping at a separator or blank) or a value
// (stopping at the end of the logical line). The line terminator is left
// for the caller.
func (s *propertiesScanner) readToken(key bool) (string, error) {
	var w unitWriter

	for {
		c, ok := s.peek()
		if !ok || isLineTerminator(c) {
			break
		}
		if key && (isSeparator(c) || isBlank(c)) {
			break
		}

		s.pos++
		if c != '\\' {
			w.writeRune(c)
			continue
		}

		next, ok := s.peek()
		if !ok {
			break
		}
		if isLineTerminator(next) {
			s.consumeTerminator()
			s.skipBlanks()
			continue
		}

		s.pos++
		switch next {
		case 'u':
			unit, err := s.readCodeUnit()
			if err != nil {
				return "", err
			}
			w.writeUnit(unit)
		case 't':
			w.writeRune('\t')
		case 'n':
			w.writeRune('\n')
		case 'r':
			w.writeRune('\r')
		default:
			w.writeRune(next)
		}
	}

	return w.String(), nil
}

func (s *propertiesScanner) readCodeUnit() (rune, error) {
	var unit rune
	for i := 0; i < 4; i++ {
		c, ok := s.peek()
		if !ok {
			return 0, &ParseError{Line: s.line, Msg: "truncated \\uXXXX escape"}
		}
		digit := hexValue(c)
		if digit < 0 {
			return 0, &ParseError{Line: s.line, Msg: fmt.Sprintf("malformed \\uXXXX escape: unexpected %q", c)}
		}
		unit = unit<<4 | rune(digit)
		s.pos++
	}
	return unit, nil
}

// unitWriter accumulates output and joins UTF-16 surrogate pairs produced by
// consecutive \u escapes. Unpaired surrogates become U+FFFD.
type unitWriter struct {
	b    strings.Builder
	high rune
}

func (w *unitWriter) writeUnit(unit rune) {
	switch {
	case unit >= 0xD800 && unit <= 0xDBFF:
		w.flush()
		w.high = unit
	case unit >= 0xDC00 && unit <= 0xDFFF:
		if w.high != 0 {
			w.b.WriteRune(utf16.DecodeRune(w.high, unit))
			w.high = 0
			return
		}
		w.b.WriteRune(utf8.RuneError)
	default:
		w.writeRune(unit)
	}
}

func (w *unitWriter) writeRune(r rune) {
	w.flush()
	w.b.WriteRune(r)
}

func (w *unitWriter) flush() {
	if w.high != 0 {
		w.b.WriteRune(utf8.RuneError)
		w.high = 0
	}
}

func (w *unitWriter) String() string {
	w.flush()
	return w.b.String()
}

func isLineTerminator(c rune) bool {
	return c == '\n' || c == '\r'
}

func isBlank(c rune) bool {
	return c == ' ' || c == '\t' || c == '\f'
}

func isSeparator(c rune) bool {
	return c == '=' || c == ':'
}

func hexValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}
