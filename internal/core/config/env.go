package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: LUCIDEPRE_[SECTION]_[KEY] (e.g., LUCIDEPRE_WRITE_CONCURRENCY).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.ImportMode, "LUCIDEPRE_IMPORT_MODE")
	setEnvString(&cfg.RenamesFile, "LUCIDEPRE_RENAMES_FILE")
	setEnvString(&cfg.Paths.ProjectRoot, "LUCIDEPRE_PATHS_PROJECT_ROOT")

	setEnvDuration(&cfg.Watch.Debounce, "LUCIDEPRE_WATCH_DEBOUNCE")

	setEnvInt(&cfg.Write.Concurrency, "LUCIDEPRE_WRITE_CONCURRENCY")
	setEnvFloat64(&cfg.Write.RatePerSecond, "LUCIDEPRE_WRITE_RATE_PER_SECOND")
	setEnvInt(&cfg.Write.CacheEntries, "LUCIDEPRE_WRITE_CACHE_ENTRIES")

	setEnvBool(&cfg.Observability.Enabled, "LUCIDEPRE_OBSERVABILITY_ENABLED")
	setEnvString(&cfg.Observability.Address, "LUCIDEPRE_OBSERVABILITY_ADDRESS")
	setEnvString(&cfg.Observability.OTLPEndpoint, "LUCIDEPRE_OBSERVABILITY_OTLP_ENDPOINT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
