package app

import (
	"context"
	"fmt"
	"io"
	"lucidepre/internal/core/ports"
	"lucidepre/internal/shared/observability"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

type rewriteService struct {
	app *App
}

var _ ports.RewriteService = (*rewriteService)(nil)

func NewRewriteService(app *App) ports.RewriteService {
	return &rewriteService{app: app}
}

func (a *App) RewriteService() ports.RewriteService {
	return NewRewriteService(a)
}

func (s *rewriteService) Unwrap() *App {
	return s.app
}

func (s *rewriteService) RunScan(ctx context.Context, req ports.ScanRequest) (ports.ScanResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "rewriteService.RunScan", trace.WithAttributes())
	defer span.End()

	if err := ctx.Err(); err != nil {
		return ports.ScanResult{}, err
	}
	if s.app == nil {
		return ports.ScanResult{}, fmt.Errorf("app is required")
	}

	paths := req.Paths
	if len(paths) == 0 {
		s.app.mu.RLock()
		paths = s.app.Config.WatchPaths
		s.app.mu.RUnlock()
	}
	return s.app.RunOnce(ctx, paths)
}

func (s *rewriteService) ProcessFile(ctx context.Context, path string) (ports.FileResult, error) {
	if strings.TrimSpace(path) == "" {
		return ports.FileResult{}, fmt.Errorf("path is required")
	}
	return s.app.ProcessFile(ctx, path)
}

func (s *rewriteService) TransformStream(ctx context.Context, r io.Reader, w io.Writer, path string) error {
	return s.app.TransformStream(ctx, r, w, path)
}

func (s *rewriteService) WatchService() ports.WatchService {
	return &watchService{app: s.app}
}

func (s *rewriteService) Close(ctx context.Context) error {
	if s == nil || s.app == nil {
		return nil
	}
	return s.app.Close(ctx)
}

type watchService struct {
	app  *App
	once sync.Once
}

var _ ports.WatchService = (*watchService)(nil)

func (s *watchService) Start(ctx context.Context) error {
	return s.app.StartWatcher(ctx)
}

func (s *watchService) Stop() error {
	var err error
	s.once.Do(func() {
		err = s.app.Close(context.Background())
	})
	return err
}
