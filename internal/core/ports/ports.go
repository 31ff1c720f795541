package ports

import (
	"context"
	"io"
	"time"

	"lucidepre/internal/engine/plugin"
	"lucidepre/internal/engine/rewrite"
)

// Transformer is the build-tool contract: rewrite code loaded from path, or report
// false when the path must be left alone.
type Transformer interface {
	Transform(code, path string) (plugin.TransformResult, bool)
	Ignored(path string) bool
	ImportMode() rewrite.ImportMode
}

var _ Transformer = (*plugin.Plugin)(nil)

// RewriteMode selects what happens to files whose content would change.
type RewriteMode int

const (
	ModeCheck RewriteMode = iota // report only
	ModeWrite                    // write changes in place
	ModeDiff                     // report with a line diff
)

func (m RewriteMode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeDiff:
		return "diff"
	default:
		return "check"
	}
}

// ScanRequest defines a rewrite run over a set of roots.
type ScanRequest struct {
	Paths []string
}

// FileResult describes one processed file.
type FileResult struct {
	Path       string
	Changed    bool
	Written    bool
	Skipped    bool // ignored path or unchanged since our last write
	Statements int
	Icons      int
	Diff       string
}

// ScanResult summarizes a completed run.
type ScanResult struct {
	FilesScanned int
	FilesChanged int
	FilesWritten int
	Statements   int
	Icons        int
	Duration     time.Duration
	Changed      []FileResult
	Warnings     []string
}

// WatchService rewrites files as they change on disk.
type WatchService interface {
	Start(ctx context.Context) error
	Stop() error
}

// RewriteService drives the rewrite engine over files and streams.
type RewriteService interface {
	RunScan(ctx context.Context, req ScanRequest) (ScanResult, error)
	ProcessFile(ctx context.Context, path string) (FileResult, error)
	TransformStream(ctx context.Context, r io.Reader, w io.Writer, path string) error
	WatchService() WatchService
	Close(ctx context.Context) error
}
