package app

import (
	"context"
	"io"
	"lucidepre/internal/core/errors"
	"lucidepre/internal/shared/observability"
)

// TransformStream reads a whole source text from r and writes the rewritten text to
// w. path only drives the ignore rules and may be empty. Ignored or non-matching
// input is copied through unchanged.
func (a *App) TransformStream(ctx context.Context, r io.Reader, w io.Writer, path string) error {
	_, span := observability.Tracer.Start(ctx, "app.TransformStream")
	defer span.End()

	content, err := io.ReadAll(r)
	if err != nil {
		return errors.AddContext(
			errors.Wrap(err, errors.CodeInternal, "failed to read input"),
			errors.CtxOperation, "read_stream",
		)
	}

	out := string(content)
	if res, ok := a.currentTransformer().Transform(out, path); ok && res.Changed {
		out = res.Code
		observability.StatementsRewrittenTotal.Add(float64(res.Statements))
		observability.IconImportsEmittedTotal.Add(float64(res.Icons))
	}

	if _, err := io.WriteString(w, out); err != nil {
		return errors.AddContext(
			errors.Wrap(err, errors.CodeInternal, "failed to write output"),
			errors.CtxOperation, "write_stream",
		)
	}
	return nil
}
