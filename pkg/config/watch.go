package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 250 * time.Millisecond

// ReloadFunc receives the reloaded configuration, or the reason it could not
// be loaded.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads the configuration at path whenever it changes and passes the
// result to fn. It blocks until ctx is cancelled. The parent directory is
// watched so files replaced by rename are still seen.
func Watch(ctx context.Context, path string, policy schema.Policy, debounce time.Duration, fn ReloadFunc) error {
	logger := logging.GetLogger("config.watch")

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", path)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot watch %s", filepath.Dir(abs)).
			WithDetail("path", abs)
	}
	logger.Info().Str("path", abs).Msg("Watching configuration")

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug().Str("event", event.Op.String()).Msg("Configuration changed")
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("File watcher error")

		case <-timer.C:
			cfg, err := Load(abs, policy)
			if err != nil {
				logger.Error().Err(err).Msg("Reloading configuration failed")
			}
			fn(cfg, err)
		}
	}
}
