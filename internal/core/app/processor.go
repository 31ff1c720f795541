package app

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"lucidepre/internal/core/errors"
	"lucidepre/internal/core/ports"
	"lucidepre/internal/shared/observability"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProcessFile rewrites a single file according to the current mode. Ignored paths
// and files already known to be in rewritten form are reported as skipped.
func (a *App) ProcessFile(ctx context.Context, path string) (result ports.FileResult, err error) {
	ctx, span := observability.Tracer.Start(ctx, "app.ProcessFile",
		trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	result = ports.FileResult{Path: path}
	outcome := observability.OutcomeFailed
	start := time.Now()
	defer func() {
		observability.TransformDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		observability.FilesProcessedTotal.WithLabelValues(outcome).Inc()
		span.SetAttributes(attribute.String("outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	transformer := a.currentTransformer()
	if transformer.Ignored(path) {
		outcome = observability.OutcomeIgnored
		result.Skipped = true
		return result, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		observability.WriteErrorsTotal.Inc()
		return result, fileError(err, path, "read")
	}

	sum := xxhash.Sum64(content)
	if cached, ok := a.outputs.Get(path); ok && cached == sum {
		observability.OutputCacheHitsTotal.Inc()
		outcome = observability.OutcomeCached
		result.Skipped = true
		return result, nil
	}

	res, ok := transformer.Transform(string(content), path)
	if !ok {
		outcome = observability.OutcomeIgnored
		result.Skipped = true
		return result, nil
	}
	if !res.Changed {
		a.outputs.Add(path, sum)
		outcome = observability.OutcomeUnchanged
		return result, nil
	}

	result.Changed = true
	result.Statements = res.Statements
	result.Icons = res.Icons
	observability.StatementsRewrittenTotal.Add(float64(res.Statements))
	observability.IconImportsEmittedTotal.Add(float64(res.Icons))

	switch a.Mode {
	case ports.ModeDiff:
		result.Diff = renderDiff(path, string(content), res.Code)
	case ports.ModeWrite:
		if err := a.currentLimiter().Wait(ctx, 1); err != nil {
			return result, err
		}
		if err := writeFileAtomic(path, []byte(res.Code)); err != nil {
			observability.WriteErrorsTotal.Inc()
			return result, fileError(err, path, "write")
		}
		result.Written = true
		a.outputs.Add(path, xxhash.Sum64String(res.Code))
		slog.Debug("rewrote file", "path", path, "statements", res.Statements, "icons", res.Icons)
	}

	outcome = observability.OutcomeChanged
	return result, nil
}

// writeFileAtomic replaces path through a temporary file in the same directory so
// readers never see a partial write. The original permissions are kept.
func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".lucidepre-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

func ioCode(err error) errors.ErrorCode {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.CodeNotFound
	case stderrors.Is(err, fs.ErrPermission):
		return errors.CodePermissionDenied
	default:
		return errors.CodeInternal
	}
}

func fileError(err error, path, operation string) error {
	wrapped := errors.Wrap(err, ioCode(err), "failed to "+operation+" file")
	wrapped = errors.AddContext(wrapped, errors.CtxPath, path)
	return errors.AddContext(wrapped, errors.CtxOperation, operation)
}
