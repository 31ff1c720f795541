package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	TransformDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lucidepre_transform_seconds",
		Help:    "Time spent rewriting a single source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	FilesProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lucidepre_files_processed_total",
		Help: "Total number of source files processed, by outcome.",
	}, []string{"outcome"})

	StatementsRewrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lucidepre_statements_rewritten_total",
		Help: "Total number of barrel import statements replaced.",
	})

	IconImportsEmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lucidepre_icon_imports_emitted_total",
		Help: "Total number of direct icon imports emitted.",
	})

	WriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lucidepre_write_errors_total",
		Help: "Total number of failed file reads or writes.",
	})

	OutputCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lucidepre_output_cache_hits_total",
		Help: "Total number of change events skipped because the file holds our own last write.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lucidepre_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)

// Outcome labels for FilesProcessedTotal and TransformDuration.
const (
	OutcomeChanged   = "changed"
	OutcomeUnchanged = "unchanged"
	OutcomeIgnored   = "ignored"
	OutcomeCached    = "cached"
	OutcomeFailed    = "failed"
)
