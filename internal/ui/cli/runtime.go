package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	coreapp "lucidepre/internal/core/app"
	"lucidepre/internal/core/config"
	"lucidepre/internal/core/errors"
	"lucidepre/internal/core/ports"
	"lucidepre/internal/shared/observability"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func Run(args []string) int {
	return run(args, os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return exitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, "lucidepre v%s\n", versionString)
		return exitOK
	}

	mode, err := opts.rewriteMode()
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitUsage
	}

	configureLogging(stderr, opts.verbose, uuid.NewString())

	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("failed to detect working directory", "error", err)
		return exitFailure
	}

	cfg, cfgPath, err := loadConfig(opts.configPath, cwd)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return exitFailure
	}
	config.ApplyEnvOverrides(cfg)
	applyModeOptions(opts, cfg, cwd)
	if err := prepareConfig(cfg, cwd); err != nil {
		slog.Error("invalid configuration", "error", err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    "lucidepre",
		ServiceVersion: versionString,
		OTLPEndpoint:   cfg.Observability.OTLPEndpoint,
		OTLPInsecure:   cfg.Observability.Insecure(),
	})
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		return exitFailure
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	service, err := initializeRewrite(cfg, mode, coreRewriteFactory{})
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return exitFailure
	}
	defer service.Close(context.Background())

	if opts.stdin {
		if err := service.TransformStream(ctx, stdin, stdout, opts.path); err != nil {
			slog.Error("failed to transform stdin", "error", err)
			return exitFailure
		}
		return exitOK
	}

	app, _ := unwrapApp(service)
	if cfg.Observability.Enabled && app != nil {
		server := NewObservabilityServer(cfg.Observability.Address, coreapp.NewHealthService(app))
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return exitFailure
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(shutdownCtx)
		}()
	}

	summary, err := service.RunScan(ctx, ports.ScanRequest{})
	if err != nil {
		slog.Error("scan failed", "error", err)
		return exitFailure
	}
	printSummary(stdout, summary, mode)

	if !opts.watch {
		return summaryExitCode(summary, mode)
	}

	if cfgPath != "" && app != nil {
		cfgWatcher := config.NewWatcher(cfgPath, func(next *config.Config) {
			applyModeOptions(opts, next, cwd)
			if err := prepareConfig(next, cwd); err != nil {
				slog.Error("reloaded configuration is unusable", "error", err)
				return
			}
			if err := app.Reload(next); err != nil {
				slog.Error("failed to apply reloaded configuration", "error", err)
			}
		})
		if err := cfgWatcher.Start(ctx); err != nil {
			slog.Warn("config watcher unavailable", "path", cfgPath, "error", err)
		} else {
			defer cfgWatcher.Stop()
		}
	}

	watch := service.WatchService()
	if err := watch.Start(ctx); err != nil {
		slog.Error("failed to start watcher", "error", err)
		return exitFailure
	}
	defer watch.Stop()

	<-ctx.Done()
	slog.Info("shutting down")
	return exitOK
}

// summaryExitCode fails check runs that found pending rewrites, and any run with
// per-file failures.
func summaryExitCode(summary ports.ScanResult, mode ports.RewriteMode) int {
	if len(summary.Warnings) > 0 {
		return exitFailure
	}
	if mode == ports.ModeCheck && summary.FilesChanged > 0 {
		return exitFailure
	}
	return exitOK
}

func printSummary(w io.Writer, summary ports.ScanResult, mode ports.RewriteMode) {
	for _, res := range summary.Changed {
		switch mode {
		case ports.ModeWrite:
			fmt.Fprintf(w, "rewrote %s (%d statements, %d icons)\n", res.Path, res.Statements, res.Icons)
		case ports.ModeDiff:
			fmt.Fprint(w, res.Diff)
		default:
			fmt.Fprintf(w, "would rewrite %s (%d statements, %d icons)\n", res.Path, res.Statements, res.Icons)
		}
	}
	for _, warning := range summary.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	fmt.Fprintf(w, "%d files scanned, %d changed, %d statements, %d icons in %s\n",
		summary.FilesScanned, summary.FilesChanged, summary.Statements, summary.Icons,
		summary.Duration.Round(time.Millisecond))
}

// applyModeOptions folds command line overrides into cfg. Positional paths are
// taken relative to the working directory.
func applyModeOptions(opts cliOptions, cfg *config.Config, cwd string) {
	if mode := strings.ToLower(strings.TrimSpace(opts.importMode)); mode != "" {
		cfg.ImportMode = mode
	}
	if len(opts.args) > 0 {
		paths := make([]string, 0, len(opts.args))
		for _, arg := range opts.args {
			paths = append(paths, config.ResolveRelative(cwd, arg))
		}
		cfg.WatchPaths = paths
	}
}

// prepareConfig validates cfg and anchors its paths at the project root.
func prepareConfig(cfg *config.Config, cwd string) error {
	if err := config.Validate(cfg); err != nil {
		return errors.Wrap(err, errors.CodeValidationError, "invalid configuration")
	}
	paths, err := config.ResolvePaths(cfg, cwd)
	if err != nil {
		return errors.AddContext(err, errors.CtxOperation, "resolve_paths")
	}
	cfg.WatchPaths = paths.WatchPaths
	cfg.RenamesFile = paths.RenamesFile
	cfg.Paths.ProjectRoot = paths.ProjectRoot
	return nil
}

// loadConfig reads the config file. A missing file at the default location falls
// back to the built-in defaults and an empty path.
func loadConfig(path, cwd string) (*config.Config, string, error) {
	if path != defaultConfigPath {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, "", errors.AddContext(err, errors.CtxConfig, path)
		}
		return cfg, path, nil
	}

	root, err := config.DetectProjectRoot([]string{cwd})
	if err != nil {
		return nil, "", err
	}
	for _, candidate := range []string{
		config.ResolveRelative(cwd, config.DefaultFileName),
		config.ResolveRelative(root, config.DefaultFileName),
	} {
		cfg, err := config.Load(candidate)
		if err == nil {
			return cfg, candidate, nil
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, "", errors.AddContext(err, errors.CtxConfig, candidate)
		}
	}

	slog.Debug("no config file found, using defaults", "cwd", cwd)
	return config.Default(), "", nil
}

func configureLogging(output io.Writer, verbose bool, runID string) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger.With("run_id", runID))
}
