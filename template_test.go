package l10n

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"text/template"
)

type stringerLocale string

func (s stringerLocale) String() string { return string(s) }

func TestTemplateHelpersTranslateInferredLocale(t *testing.T) {
	p := newTestProvider(t)
	helpers := TemplateHelpers(p, HelperConfig{LocaleKey: "current_locale"})

	translate, ok := helpers["translate"].(func(any, string, ...any) string)
	if !ok {
		t.Fatalf("translate helper signature mismatch: %T", helpers["translate"])
	}

	cases := []struct {
		name string
		src  any
		want string
	}{
		{name: "map", src: map[string]any{"current_locale": "it"}, want: "Ciao, Ann!"},
		{name: "string map", src: map[string]string{"current_locale": "it_IT"}, want: "Ciao, Ann!"},
		{name: "string", src: "en", want: "Hello, Ann!"},
		{name: "locale", src: MustParseLocale("it"), want: "Ciao, Ann!"},
		{name: "context", src: inLocale("it"), want: "Ciao, Ann!"},
		{name: "stringer", src: stringerLocale("it"), want: "Ciao, Ann!"},
	}

	for _, tc := range cases {
		if got := translate(tc.src, "greeting", "Ann"); got != tc.want {
			t.Fatalf("%s: translate = %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestTemplateHelpersSelectAndPlural(t *testing.T) {
	helpers := TemplateHelpers(newTestProvider(t), HelperConfig{})

	sel := helpers["translate_select"].(func(any, string, string, ...any) string)
	if got := sel("en", "gender", "female", "Ada"); got != "She is Ada" {
		t.Fatalf("translate_select = %q", got)
	}

	plural := helpers["translate_plural"].(func(any, string, int, ...any) string)
	if got := plural("it", "items", 1); got != "un elemento" {
		t.Fatalf("translate_plural(1) = %q", got)
	}
	if got := plural("it", "items", 4); got != "4 elementi" {
		t.Fatalf("translate_plural(4) = %q", got)
	}

	current := helpers["current_locale"].(func(any) string)
	if got := current(map[string]any{"locale": "it-IT"}); got != "it_IT" {
		t.Fatalf("current_locale = %q", got)
	}
	if got := current(42); got != "" {
		t.Fatalf("current_locale(42) = %q", got)
	}
}

func TestTemplateHelpersMissingTranslationHandler(t *testing.T) {
	var gotErr error
	helpers := TemplateHelpers(newTestProvider(t), HelperConfig{
		TemplateHelperKey: "t",
		OnMissing: func(locale, key string, args []any, err error) string {
			gotErr = err
			return "[" + locale + ":" + key + "]"
		},
	})

	translate := helpers["t"].(func(any, string, ...any) string)
	if got := translate("it", "nothing"); got != "[it:nothing]" {
		t.Fatalf("missing translation = %q", got)
	}
	if !errors.Is(gotErr, ErrMissingTranslation) {
		t.Fatalf("OnMissing err = %v", gotErr)
	}

	if got := translate(nil, "greeting"); got != "[:greeting]" {
		t.Fatalf("missing locale = %q", got)
	}
}

func TestTemplateHelpersDefaultMissingRendersKey(t *testing.T) {
	helpers := TemplateHelpers(nil, HelperConfig{})
	translate := helpers["translate"].(func(any, string, ...any) string)
	if got := translate("en", "home.title"); got != "home.title" {
		t.Fatalf("translate without provider = %q", got)
	}

	current := helpers["current_locale"].(func(any) string)
	if got := current(WithLocale(context.Background(), MustParseLocale("fr"))); got != "fr" {
		t.Fatalf("current_locale from context = %q", got)
	}
}

func TestTemplateHelpersInTextTemplate(t *testing.T) {
	funcs := template.FuncMap(TemplateHelpers(newTestProvider(t), HelperConfig{}))
	tmpl := template.Must(template.New("page").Funcs(funcs).Parse(
		`{{translate . "greeting" .name}} {{translate_plural . "items" .count}}`))

	var buf bytes.Buffer
	data := map[string]any{"locale": "it", "name": "Ugo", "count": 3}
	if err := tmpl.Execute(&buf, data); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := buf.String(); got != "Ciao, Ugo! 3 elementi" {
		t.Fatalf("rendered %q", got)
	}
}
