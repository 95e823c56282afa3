package l10n

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestSplitLocation(t *testing.T) {
	scheme, p, err := SplitLocation("classpath:i18n/messages.properties")
	require.NoError(t, err)
	assert.Equal(t, "classpath", scheme)
	assert.Equal(t, "i18n/messages.properties", p)

	scheme, p, err = SplitLocation("file:C:/dir/messages.properties")
	require.NoError(t, err)
	assert.Equal(t, "file", scheme)
	assert.Equal(t, "C:/dir/messages.properties", p)

	for _, location := range []string{"messages.properties", ":messages.properties", ""} {
		_, _, err := SplitLocation(location)
		assert.ErrorIs(t, err, ErrInvalidLocation, location)
	}
}

func TestFSLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"i18n/messages.properties": &fstest.MapFile{Data: []byte("k=v")},
	}
	loader := NewFSLoader("", fsys)

	assert.True(t, loader.Supports("classpath:i18n/messages.properties"))
	assert.True(t, loader.Supports("CLASSPATH:i18n/messages.properties"))
	assert.False(t, loader.Supports("file:i18n/messages.properties"))
	assert.False(t, loader.Supports("i18n/messages.properties"))

	rc, err := loader.Open(context.Background(), "classpath:/i18n/messages.properties")
	require.NoError(t, err)
	assert.Equal(t, "k=v", readAll(t, rc))

	_, err = loader.Open(context.Background(), "classpath:i18n/missing.properties")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, isNotFound(err))

	_, err = loader.Open(context.Background(), "classpath:../outside.properties")
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = loader.Open(context.Background(), "file:i18n/messages.properties")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFSLoaderWithoutFilesystem(t *testing.T) {
	loader := NewFSLoader("bundle", nil)
	assert.False(t, loader.Supports("bundle:messages.properties"))
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.properties"), []byte("k=file"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.properties"), 0o755))

	loader := NewFileLoader(dir)
	assert.True(t, loader.Supports("file:messages.properties"))
	assert.False(t, loader.Supports("classpath:messages.properties"))

	rc, err := loader.Open(context.Background(), "file:messages.properties")
	require.NoError(t, err)
	assert.Equal(t, "k=file", readAll(t, rc))

	abs := "file:" + filepath.ToSlash(filepath.Join(dir, "messages.properties"))
	rc, err = NewFileLoader("").Open(context.Background(), abs)
	require.NoError(t, err)
	assert.Equal(t, "k=file", readAll(t, rc))

	_, err = loader.Open(context.Background(), "file:missing.properties")
	assert.True(t, isNotFound(err))

	_, err = loader.Open(context.Background(), "file:nested.properties")
	assert.True(t, isNotFound(err), "directories count as missing")
}

func TestChainLoaderDelegatesToFirstSupporting(t *testing.T) {
	var calls []string
	memory := func(name, scheme string) ResourceLoader {
		return ResourceLoaderFuncs{
			SupportsFunc: func(location string) bool {
				return strings.HasPrefix(location, scheme+":")
			},
			OpenFunc: func(_ context.Context, location string) (io.ReadCloser, error) {
				calls = append(calls, name)
				return io.NopCloser(strings.NewReader(name)), nil
			},
		}
	}

	inner := NewChainLoader(memory("first", "mem"), nil)
	chain := NewChainLoader(inner, memory("second", "mem"), memory("other", "other"))

	assert.Len(t, chain.Loaders(), 3)
	assert.True(t, chain.Supports("mem:x"))
	assert.True(t, chain.Supports("other:x"))
	assert.False(t, chain.Supports("none:x"))

	rc, err := chain.Open(context.Background(), "mem:x")
	require.NoError(t, err)
	assert.Equal(t, "first", readAll(t, rc))

	rc, err = chain.Open(context.Background(), "other:x")
	require.NoError(t, err)
	assert.Equal(t, "other", readAll(t, rc))

	_, err = chain.Open(context.Background(), "none:x")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, []string{"first", "other"}, calls)
}

func TestResourceLoaderFuncsZeroValue(t *testing.T) {
	var loader ResourceLoaderFuncs

	assert.False(t, loader.Supports("mem:x"))
	_, err := loader.Open(context.Background(), "mem:x")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
