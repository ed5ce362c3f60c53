package server

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchConfig reloads the default model when the config file is rewritten,
// so the page can switch models without a restart. Listen address and
// backend URL changes still require one. The watcher is shut down by Close.
func (s *Server) WatchConfig(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory; editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				s.reloadModel(path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}()

	s.logger.Info("watching config", zap.String("path", path))
	return nil
}

func (s *Server) reloadModel(path string) {
	cfg, err := LoadConfig(path)
	if err != nil {
		s.logger.Warn("config reload failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	changed := cfg.Model != s.config.Model
	s.config.Model = cfg.Model
	s.mu.Unlock()

	if changed {
		s.logger.Info("default model updated", zap.String("model", cfg.Model))
	}
}
