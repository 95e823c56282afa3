package l10n

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// TemplateCompiler turns a raw message template into a reusable formatter.
type TemplateCompiler interface {
	Compile(locale Locale, template string) (CompiledTemplate, error)
}

// CompiledTemplate formats a compiled message. Implementations need not be
// safe for concurrent use.
type CompiledTemplate interface {
	Format(args ...any) string
}

// TemplateCompilerFunc adapts a function to TemplateCompiler.
type TemplateCompilerFunc func(locale Locale, template string) (CompiledTemplate, error)

func (fn TemplateCompilerFunc) Compile(locale Locale, template string) (CompiledTemplate, error) {
	return fn(locale, template)
}

// PrinterCompiler formats templates with a locale bound x/text printer using
// printf verbs, positional arguments via %[n]v. Arguments beyond those the
// template consumes are dropped so plural forms may omit the count. With a
// Catalog the template is used as the catalog key and args pass through
// untouched.
//
// Called without args a compiled template returns its source verbatim, so
// escapes such as %% are only collapsed when args are given: "100%% sure"
// formats as "100%% sure" with no args and "100% sure" with any.
type PrinterCompiler struct {
	Catalog catalog.Catalog
}

var _ TemplateCompiler = PrinterCompiler{}

func (c PrinterCompiler) Compile(locale Locale, template string) (CompiledTemplate, error) {
	var opts []message.Option
	if c.Catalog != nil {
		opts = append(opts, message.Catalog(c.Catalog))
	}

	arity, indexed := printfArity(template)
	return &printerTemplate{
		printer: message.NewPrinter(locale.Tag(), opts...),
		source:  template,
		arity:   arity,
		trim:    c.Catalog == nil && !indexed,
	}, nil
}

type printerTemplate struct {
	printer *message.Printer
	source  string
	arity   int
	trim    bool
}

// Format returns the template verbatim when called without args.
func (t *printerTemplate) Format(args ...any) string {
	if len(args) == 0 {
		return t.source
	}
	if t.trim && len(args) > t.arity {
		args = args[:t.arity]
	}
	return t.printer.Sprintf(t.source, args...)
}

// printfArity reports how many arguments a printf template consumes and
// whether it addresses any of them explicitly with [n].
func printfArity(format string) (arity int, indexed bool) {
	argNum := 0
	consume := func() {
		argNum++
		arity = max(arity, argNum)
	}

	for i := 0; i < len(format); {
		if format[i] != '%' {
			i++
			continue
		}
		i++

		for i < len(format) && strings.IndexByte("#0+- ", format[i]) >= 0 {
			i++
		}

		i = printfIndex(format, i, &argNum, &indexed)
		i = printfWidth(format, i, consume)
		if i < len(format) && format[i] == '.' {
			i = printfIndex(format, i+1, &argNum, &indexed)
			i = printfWidth(format, i, consume)
		}
		i = printfIndex(format, i, &argNum, &indexed)

		if i >= len(format) {
			break
		}
		verb, size := utf8.DecodeRuneInString(format[i:])
		i += size
		if verb != '%' {
			consume()
		}
	}
	return arity, indexed
}

func printfIndex(format string, i int, argNum *int, indexed *bool) int {
	if i >= len(format) || format[i] != '[' {
		return i
	}
	end := strings.IndexByte(format[i:], ']')
	if end < 0 {
		*indexed = true
		return i
	}
	*indexed = true
	if n, err := strconv.Atoi(format[i+1 : i+end]); err == nil && n > 0 {
		*argNum = n - 1
	}
	return i + end + 1
}

func printfWidth(format string, i int, consume func()) int {
	if i < len(format) && format[i] == '*' {
		consume()
		return i + 1
	}
	for i < len(format) && format[i] >= '0' && format[i] <= '9' {
		i++
	}
	return i
}
