package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/alchemy/compiler/gen"
	"github.com/syssam/alchemy/dialect"
)

// debounce is how long Watch waits for a burst of file events to settle.
var debounce = 200 * time.Millisecond

// Watch generates the package of the configuration file at path, then
// regenerates it whenever the configuration, the snapshot it reads or the
// SQLite database it reflects changes. Every run is reported to fn. Watch
// returns when ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func(*gen.Report, error)) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("compiler: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("compiler: create watcher: %w", err)
	}
	defer w.Close()

	files := make(map[string]bool)
	run := func() {
		cfg, err := LoadConfig(path)
		if err != nil {
			fn(nil, err)
			return
		}
		for _, f := range watched(path, cfg) {
			if files[f] {
				continue
			}
			// Directories are watched since editors replace files on save.
			if err := w.Add(filepath.Dir(f)); err != nil {
				logger.Warn("cannot watch file", "path", f, "error", err)
				continue
			}
			files[f] = true
		}
		fn(Generate(ctx, cfg, logger))
	}
	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			run()
		}
	}
}

// watched returns the absolute paths of the inputs of cfg, loaded from
// the configuration file at path.
func watched(path string, cfg *Config) []string {
	files := []string{path}
	if cfg.Source.Dialect == "" && cfg.Snapshot != "" {
		files = append(files, filepath.Clean(cfg.Snapshot))
	}
	if cfg.Source.Dialect == dialect.SQLite {
		files = append(files, filepath.Clean(cfg.Source.Path))
	}
	return files
}
