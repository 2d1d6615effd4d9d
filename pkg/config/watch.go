package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch watches the config file and reloads the global configuration when it
// changes. Invalid edits are logged and skipped; the previous configuration
// stays in effect. Watch blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself so that
// rename-based writes (editors, configmap updates) keep being observed.
func Watch(ctx context.Context, log *logrus.Logger) error {
	cfg := Get()
	path := cfg.ConfigFilePath()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	log.WithField("path", path).Info("Watching config file for changes")

	var debounce *time.Timer
	reload := func() {
		next, err := Load()
		if err != nil {
			log.WithError(err).Warn("Ignoring config change: reload failed")
			return
		}
		if err := next.Validate(); err != nil {
			log.WithError(err).Warn("Ignoring config change: validation failed")
			return
		}
		if err := Reload(); err != nil {
			log.WithError(err).Warn("Failed to apply config change")
			return
		}
		log.Info("Configuration reloaded")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Editors fire several events per save.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Config watcher error")
		}
	}
}
