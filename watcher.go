package l10n

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

var watchedExtensions = map[string]bool{
	".properties": true,
	".yaml":       true,
	".yml":        true,
	".json":       true,
	".toml":       true,
	".ini":        true,
}

// WatchDirs purges the provider's resolved resources whenever a resource file
// in one of dirs is created, written, removed or renamed. It blocks until ctx
// is done.
func WatchDirs(ctx context.Context, p *Provider, dirs ...string) error {
	if p == nil {
		return fmt.Errorf("%w: nil provider", ErrInvalidArgument)
	}
	return watchDirs(ctx, p.Purge, p.logger, nil, dirs...)
}

// watchDirs signals ready, when non-nil, once every directory is watched.
func watchDirs(ctx context.Context, purge func(), logger *slog.Logger, ready chan<- struct{}, dirs ...string) error {
	if len(dirs) == 0 {
		return fmt.Errorf("%w: no directories to watch", ErrInvalidArgument)
	}
	if logger == nil {
		logger = discardLogger()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("l10n: create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("l10n: watch %s: %w", dir, err)
		}
	}

	if ready != nil {
		ready <- struct{}{}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watchedExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("l10n: resource changed", "file", event.Name, "op", event.Op.String())
			purge()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("l10n: watcher error", "error", err)
		}
	}
}
