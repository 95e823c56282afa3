package l10n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// SchemeFile addresses resources on the local filesystem.
	SchemeFile = "file"
	// SchemeClasspath addresses resources bundled with the binary, usually via embed.FS.
	SchemeClasspath = "classpath"
)

// ResourceLoader opens byte streams for the location schemes it understands.
//
// Open reports a missing resource with an error matching fs.ErrNotExist. Any
// other error is treated as an I/O failure. Callers close the returned stream.
type ResourceLoader interface {
	Supports(location string) bool
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// ResourceLoaderFuncs adapts plain functions to ResourceLoader.
type ResourceLoaderFuncs struct {
	SupportsFunc func(location string) bool
	OpenFunc     func(ctx context.Context, location string) (io.ReadCloser, error)
}

func (f ResourceLoaderFuncs) Supports(location string) bool {
	if f.SupportsFunc == nil {
		return false
	}
	return f.SupportsFunc(location)
}

func (f ResourceLoaderFuncs) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if f.OpenFunc == nil {
		return nil, fmt.Errorf("%w: no open func for %s", ErrInvalidArgument, location)
	}
	return f.OpenFunc(ctx, location)
}

// SplitLocation separates a "scheme:path" location at its first colon.
func SplitLocation(location string) (scheme, p string, err error) {
	idx := strings.IndexByte(location, ':')
	if idx <= 0 {
		return "", "", fmt.Errorf("%w: %q has no scheme", ErrInvalidLocation, location)
	}
	return location[:idx], location[idx+1:], nil
}

func hasScheme(location, scheme string) bool {
	s, _, err := SplitLocation(location)
	return err == nil && strings.EqualFold(s, scheme)
}

// FileLoader opens "file:" locations from the local filesystem. Relative
// paths are resolved against the base directory when one is set.
type FileLoader struct {
	scheme  string
	baseDir string
}

var _ ResourceLoader = &FileLoader{}

func NewFileLoader(baseDir string) *FileLoader {
	return &FileLoader{scheme: SchemeFile, baseDir: baseDir}
}

func (l *FileLoader) Supports(location string) bool {
	return l != nil && hasScheme(location, l.scheme)
}

func (l *FileLoader) Open(_ context.Context, location string) (io.ReadCloser, error) {
	if !l.Supports(location) {
		return nil, fmt.Errorf("%w: file loader cannot open %q", ErrInvalidArgument, location)
	}
	_, p, _ := SplitLocation(location)
	p = filepath.FromSlash(p)
	if l.baseDir != "" && !filepath.IsAbs(p) {
		p = filepath.Join(l.baseDir, p)
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("l10n: open %s: %w", location, err)
	}

	info, err := f.Stat()
	if err == nil && info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("l10n: open %s: %w", location, fs.ErrNotExist)
	}
	return f, nil
}

// FSLoader opens locations of a single scheme from an fs.FS. With embed.FS it
// plays the role of bundled, classpath-style resources.
type FSLoader struct {
	scheme string
	fsys   fs.FS
}

var _ ResourceLoader = &FSLoader{}

func NewFSLoader(scheme string, fsys fs.FS) *FSLoader {
	if scheme == "" {
		scheme = SchemeClasspath
	}
	return &FSLoader{scheme: scheme, fsys: fsys}
}

func (l *FSLoader) Supports(location string) bool {
	return l != nil && l.fsys != nil && hasScheme(location, l.scheme)
}

func (l *FSLoader) Open(_ context.Context, location string) (io.ReadCloser, error) {
	if !l.Supports(location) {
		return nil, fmt.Errorf("%w: %s loader cannot open %q", ErrInvalidArgument, l.scheme, location)
	}
	_, p, _ := SplitLocation(location)
	name := path.Clean(strings.TrimLeft(p, "/"))
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q is not a valid %s path", ErrInvalidLocation, location, l.scheme)
	}

	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("l10n: open %s: %w", location, err)
	}
	return f, nil
}

// ChainLoader delegates to the first member that supports a location.
type ChainLoader struct {
	loaders []ResourceLoader
}

var _ ResourceLoader = &ChainLoader{}

// NewChainLoader flattens nested chains and drops nil members.
func NewChainLoader(loaders ...ResourceLoader) *ChainLoader {
	flattened := make([]ResourceLoader, 0, len(loaders))
	for _, loader := range loaders {
		if loader == nil {
			continue
		}
		if chain, ok := loader.(*ChainLoader); ok {
			flattened = append(flattened, chain.loaders...)
			continue
		}
		flattened = append(flattened, loader)
	}
	return &ChainLoader{loaders: flattened}
}

func (c *ChainLoader) Supports(location string) bool {
	return c.loaderFor(location) != nil
}

func (c *ChainLoader) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	loader := c.loaderFor(location)
	if loader == nil {
		return nil, fmt.Errorf("%w: no loader supports %q", ErrInvalidArgument, location)
	}
	return loader.Open(ctx, location)
}

// Loaders returns the chain members in delegation order.
func (c *ChainLoader) Loaders() []ResourceLoader {
	if c == nil {
		return nil
	}
	return append([]ResourceLoader(nil), c.loaders...)
}

func (c *ChainLoader) loaderFor(location string) ResourceLoader {
	if c == nil {
		return nil
	}
	for _, loader := range c.loaders {
		if loader.Supports(location) {
			return loader
		}
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrResourceNotFound)
}
