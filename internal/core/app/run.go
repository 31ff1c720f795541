package app

import (
	"context"
	"fmt"
	"log/slog"
	"lucidepre/internal/core/errors"
	"lucidepre/internal/core/ports"
	"lucidepre/internal/shared/observability"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// RunOnce processes every candidate file under roots with at most
// Write.Concurrency files in flight. Per-file failures become warnings; only a
// scan failure or cancellation fails the run.
func (a *App) RunOnce(ctx context.Context, roots []string) (ports.ScanResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.RunOnce",
		trace.WithAttributes(attribute.Int("roots", len(roots))))
	defer span.End()

	start := time.Now()
	files, err := a.ScanDirectories(roots)
	if err != nil {
		return ports.ScanResult{}, errors.AddContext(err, errors.CtxOperation, "scan_directories")
	}

	var (
		mu      sync.Mutex
		summary = ports.ScanResult{FilesScanned: len(files)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency())
	for _, path := range files {
		path := path
		g.Go(func() error {
			res, err := a.ProcessFile(gctx, path)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.Warn("failed to process file", "path", path, "error", err)
				mu.Lock()
				summary.Warnings = append(summary.Warnings, fmt.Sprintf("process file %s: %v", path, err))
				mu.Unlock()
				return nil
			}
			if !res.Changed {
				return nil
			}
			mu.Lock()
			addResult(&summary, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	sort.Slice(summary.Changed, func(i, j int) bool {
		return summary.Changed[i].Path < summary.Changed[j].Path
	})
	sort.Strings(summary.Warnings)
	summary.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("files_scanned", summary.FilesScanned),
		attribute.Int("files_changed", summary.FilesChanged),
	)
	return summary, nil
}

func addResult(s *ports.ScanResult, res ports.FileResult) {
	s.FilesChanged++
	if res.Written {
		s.FilesWritten++
	}
	s.Statements += res.Statements
	s.Icons += res.Icons
	s.Changed = append(s.Changed, res)
}

func (a *App) concurrency() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.Config.Write.Concurrency < 1 {
		return 1
	}
	return a.Config.Write.Concurrency
}
