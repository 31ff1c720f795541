package app

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"lucidepre/internal/core/watcher"
	"os"
	"time"
)

func (a *App) StartWatcher(ctx context.Context) error {
	a.mu.RLock()
	cfg := a.Config
	a.mu.RUnlock()

	w, err := watcher.NewWatcher(
		cfg.Watch.Debounce,
		cfg.Exclude.Dirs,
		cfg.Exclude.Files,
		func(paths []string) { a.HandleChanges(ctx, paths) },
	)
	if err != nil {
		return err
	}
	w.SetExtensions(cfg.Files.Extensions)
	w.SetIgnore(func(path string) bool { return a.currentTransformer().Ignored(path) })

	a.mu.Lock()
	a.activeWatcher = w
	a.mu.Unlock()

	slog.Info("watching for changes", "paths", cfg.WatchPaths, "mode", a.Mode.String())
	return w.Watch(cfg.WatchPaths)
}

// HandleChanges processes a debounced batch of changed paths. Files removed before
// the batch fires drop out of the output cache.
func (a *App) HandleChanges(ctx context.Context, paths []string) {
	slog.Info("detected changes", "count", len(paths))
	start := time.Now()
	changed := 0

	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
			a.outputs.Remove(path)
			continue
		}

		res, err := a.ProcessFile(ctx, path)
		if err != nil {
			slog.Warn("failed to re-process file", "path", path, "error", err)
			continue
		}
		if !res.Changed {
			continue
		}
		changed++
		if res.Diff != "" {
			slog.Info("file would change", "path", path, "statements", res.Statements, "icons", res.Icons, "diff", res.Diff)
		} else if !res.Written {
			slog.Info("file would change", "path", path, "statements", res.Statements, "icons", res.Icons)
		}
	}

	slog.Info("changes processed", "changed", changed, "duration", time.Since(start))
}
