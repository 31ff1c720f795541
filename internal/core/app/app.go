package app

import (
	"context"
	"fmt"
	"log/slog"
	"lucidepre/internal/core/config"
	"lucidepre/internal/core/errors"
	"lucidepre/internal/core/ports"
	"lucidepre/internal/core/watcher"
	"lucidepre/internal/engine/plugin"
	"lucidepre/internal/engine/rewrite"
	"lucidepre/internal/shared/util"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"
)

type App struct {
	Config *config.Config
	Mode   ports.RewriteMode

	mu          sync.RWMutex
	transformer ports.Transformer
	limiter     *util.Limiter
	dirGlobs    []glob.Glob
	fileGlobs   []glob.Glob
	extensions  map[string]bool

	// outputs maps a path to the hash of content known to need no rewrite,
	// which includes every file this process wrote.
	outputs *lru.Cache[string, uint64]

	activeWatcher *watcher.Watcher
}

// New builds an App from a validated configuration. Relative paths in cfg are used
// as given; callers resolve them against the project root first.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidationError, "config is required")
	}

	a := &App{Config: cfg}
	if err := a.configure(cfg); err != nil {
		return nil, err
	}

	outputs, err := lru.New[string, uint64](cfg.Write.CacheEntries)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid cache size")
	}
	a.outputs = outputs
	return a, nil
}

// Reload swaps in a new configuration. Watch paths and the watcher debounce keep
// their current values until the next start.
func (a *App) Reload(cfg *config.Config) error {
	if err := a.configure(cfg); err != nil {
		return err
	}
	a.outputs.Purge()
	slog.Info("configuration applied", "import_mode", cfg.ImportMode)
	return nil
}

func (a *App) configure(cfg *config.Config) error {
	transformer, err := newTransformer(cfg)
	if err != nil {
		return err
	}

	dirGlobs, err := compilePatterns(cfg.Exclude.Dirs, "exclude dir")
	if err != nil {
		return err
	}
	fileGlobs, err := compilePatterns(cfg.Exclude.Files, "exclude file")
	if err != nil {
		return err
	}

	extensions := make(map[string]bool, len(cfg.Files.Extensions))
	for _, ext := range cfg.Files.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.Config = cfg
	a.transformer = transformer
	a.limiter = util.NewLimiter(cfg.Write.RatePerSecond, cfg.Write.Concurrency)
	a.dirGlobs = dirGlobs
	a.fileGlobs = fileGlobs
	a.extensions = extensions
	return nil
}

func newTransformer(cfg *config.Config) (*plugin.Plugin, error) {
	opts := plugin.Options{
		ImportMode:   cfg.ImportMode,
		IgnoredPaths: cfg.Exclude.Paths,
		IgnoredGlobs: cfg.Exclude.Globs,
	}
	if cfg.RenamesFile != "" {
		extra, err := rewrite.LoadRenameFile(cfg.RenamesFile)
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeValidationError, "failed to load rename table"),
				errors.CtxPath, cfg.RenamesFile,
			)
		}
		opts.Renames = extra.Entries()
	}

	p, err := plugin.New(opts)
	if err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeValidationError, "invalid plugin options"),
			errors.CtxConfig, "exclude",
		)
	}
	return p, nil
}

func compilePatterns(patterns []string, kind string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid %s pattern %q", kind, p))
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func (a *App) currentTransformer() ports.Transformer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.transformer
}

func (a *App) currentLimiter() *util.Limiter {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.limiter
}

// Close stops the file watcher if one is running.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	w := a.activeWatcher
	a.activeWatcher = nil
	a.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Close()
}
