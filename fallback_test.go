package l10n

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestCandidateLocations(t *testing.T) {
	tests := []struct {
		name     string
		template string
		locale   Locale
		want     []string
	}{
		{
			name:     "language and region",
			template: "a/b.properties",
			locale:   Locale{Language: "it", Region: "IT"},
			want:     []string{"a/b_it_IT.properties", "a/b_it.properties", "a/b.properties"},
		},
		{
			name:     "language only",
			template: "classpath:i18n/messages.properties",
			locale:   Locale{Language: "it"},
			want:     []string{"classpath:i18n/messages_it.properties", "classpath:i18n/messages.properties"},
		},
		{
			name:     "root",
			template: "file:messages.yaml",
			locale:   Root,
			want:     []string{"file:messages.yaml"},
		},
		{
			name:     "dots in directories",
			template: "file:/opt/app.v2/i18n/messages.properties",
			locale:   Locale{Language: "fr", Region: "CA"},
			want: []string{
				"file:/opt/app.v2/i18n/messages_fr_CA.properties",
				"file:/opt/app.v2/i18n/messages_fr.properties",
				"file:/opt/app.v2/i18n/messages.properties",
			},
		},
		{
			name:     "last dot splits",
			template: "classpath:messages.en.properties",
			locale:   Locale{Language: "de"},
			want:     []string{"classpath:messages.en_de.properties", "classpath:messages.en.properties"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CandidateLocations(tc.template, tc.locale)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCandidateLocationsRejectsInvalidInput(t *testing.T) {
	for _, template := range []string{"a/b", "a.b/c", "classpath:messages", "file:messages.", "classpath.d:x"} {
		_, err := CandidateLocations(template, Locale{Language: "it"})
		assert.ErrorIs(t, err, ErrInvalidLocation, template)
	}

	_, err := CandidateLocations("a/b.properties", Locale{Region: "IT"})
	assert.ErrorIs(t, err, ErrInvalidLocale)
}

func messagesFS() fstest.MapFS {
	return fstest.MapFS{
		"i18n/messages.properties":       &fstest.MapFile{Data: []byte("greeting=Hello\nfarewell=Goodbye\n")},
		"i18n/messages_it.properties":    &fstest.MapFile{Data: []byte("greeting=Ciao\n")},
		"i18n/messages_it_IT.properties": &fstest.MapFile{Data: []byte("farewell=Arrivederci\n")},
		"i18n/extra.properties":          &fstest.MapFile{Data: []byte("greeting=Extra\nfooter=Extra footer\n")},
		"i18n/app_it.yaml":               &fstest.MapFile{Data: []byte("title: Titolo\n")},
	}
}

func newTestResolver(fsys fs.FS, opts ...ResolverOption) *Resolver {
	return NewResolver(NewChainLoader(NewFSLoader(SchemeClasspath, fsys)), nil, opts...)
}

func TestResolverPicksMostSpecificCandidate(t *testing.T) {
	resolver := newTestResolver(messagesFS())
	ctx := context.Background()

	props, err := resolver.Resolve(ctx, "classpath:i18n/messages.properties", Locale{Language: "it", Region: "IT"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"farewell": "Arrivederci"}, props.Values(),
		"only the first openable candidate is parsed")

	props, err = resolver.Resolve(ctx, "classpath:i18n/messages.properties", Locale{Language: "it", Region: "CH"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"greeting": "Ciao"}, props.Values())

	props, err = resolver.Resolve(ctx, "classpath:i18n/messages.properties", Locale{Language: "de"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"greeting": "Hello", "farewell": "Goodbye"}, props.Values())

	props, err = resolver.Resolve(ctx, "classpath:i18n/app.yaml", Locale{Language: "it"})
	require.NoError(t, err)
	title, _ := props.Get("title")
	assert.Equal(t, "Titolo", title)
}

func TestResolverErrors(t *testing.T) {
	resolver := newTestResolver(messagesFS())
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, "bundle:i18n/messages.properties", Root)
	assert.ErrorIs(t, err, ErrUnsupportedLocation)

	_, err = resolver.Resolve(ctx, "classpath:i18n/missing.properties", Locale{Language: "it"})
	require.ErrorIs(t, err, ErrResourceNotFound)
	assert.Contains(t, err.Error(), "classpath:i18n/missing_it.properties")

	_, err = resolver.Resolve(ctx, "classpath:i18n/messages", Root)
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestResolverParseErrorStopsFallback(t *testing.T) {
	fsys := messagesFS()
	fsys["i18n/messages_fr.properties"] = &fstest.MapFile{Data: []byte("bad=\\uZZZZ")}

	_, err := newTestResolver(fsys).Resolve(context.Background(), "classpath:i18n/messages.properties", Locale{Language: "fr"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrResourceNotFound)
}

type closeErrorReader struct {
	io.Reader
	closed *bool
}

func (r closeErrorReader) Close() error {
	*r.closed = true
	return errors.New("close failed")
}

func TestResolverLoaderErrors(t *testing.T) {
	ioErr := errors.New("disk on fire")
	var closed bool

	loader := ResourceLoaderFuncs{
		SupportsFunc: func(location string) bool { return strings.HasPrefix(location, "mem:") },
		OpenFunc: func(_ context.Context, location string) (io.ReadCloser, error) {
			switch location {
			case "mem:broken_it.properties":
				return nil, ioErr
			case "mem:ok.properties":
				return closeErrorReader{Reader: strings.NewReader("k=v"), closed: &closed}, nil
			default:
				return nil, fs.ErrNotExist
			}
		},
	}
	resolver := NewResolver(loader, PropertiesParser{})

	_, err := resolver.Resolve(context.Background(), "mem:broken.properties", Locale{Language: "it"})
	assert.ErrorIs(t, err, ioErr)

	props, err := resolver.Resolve(context.Background(), "mem:ok.properties", Locale{Language: "it"})
	require.NoError(t, err, "close errors are not returned")
	assert.True(t, closed)
	got, _ := props.Get("k")
	assert.Equal(t, "v", got)
}

func TestResolverResolveAll(t *testing.T) {
	resolver := newTestResolver(messagesFS())
	ctx := context.Background()
	locale := Locale{Language: "de"}

	view, err := resolver.ResolveAll(ctx, []string{
		"classpath:i18n/messages.properties",
		"classpath:i18n/extra.properties",
	}, locale)
	require.NoError(t, err)

	greeting, _ := view.Get("greeting")
	assert.Equal(t, "Hello", greeting)
	footer, _ := view.Get("footer")
	assert.Equal(t, "Extra footer", footer)

	_, err = resolver.ResolveAll(ctx, []string{
		"classpath:i18n/messages.properties",
		"classpath:i18n/missing.properties",
	}, locale)
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = resolver.ResolveAll(ctx, nil, locale)
	assert.ErrorIs(t, err, ErrNoLocations)
}

func TestResolverRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	resolver := newTestResolver(messagesFS(), withResolverTelemetry(newTelemetry(tp, nil)))

	_, err := resolver.Resolve(context.Background(), "classpath:i18n/messages.properties", Locale{Language: "it"})
	require.NoError(t, err)
	_, err = resolver.Resolve(context.Background(), "classpath:i18n/missing.properties", Root)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "l10n.resolve", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("l10n.locale", "it"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("l10n.location", "classpath:i18n/messages_it.properties"))

	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
