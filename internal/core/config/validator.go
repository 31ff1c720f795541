package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	if err := validateVersion(cfg); err != nil {
		return err
	}
	if err := validateImportMode(cfg); err != nil {
		return err
	}
	if err := validateExclude(cfg); err != nil {
		return err
	}
	if err := validateFiles(cfg); err != nil {
		return err
	}
	if err := validateWrite(cfg); err != nil {
		return err
	}
	return validateWatch(cfg)
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateImportMode(cfg *Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.ImportMode)) {
	case "cjs", "esm":
		return nil
	}
	return fmt.Errorf("import_mode must be one of: cjs, esm; got %q", cfg.ImportMode)
}

func validateExclude(cfg *Config) error {
	for i, p := range cfg.Exclude.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("exclude.paths[%d] must not be empty", i)
		}
	}
	for _, pattern := range cfg.Exclude.Globs {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid exclude.globs pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range cfg.Exclude.Dirs {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude.dirs pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range cfg.Exclude.Files {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude.files pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func validateFiles(cfg *Config) error {
	if len(cfg.Files.Extensions) == 0 {
		return fmt.Errorf("files.extensions must list at least one extension")
	}
	return nil
}

func validateWrite(cfg *Config) error {
	if cfg.Write.Concurrency < 1 || cfg.Write.Concurrency > 256 {
		return fmt.Errorf("write.concurrency must be between 1 and 256")
	}
	if cfg.Write.RatePerSecond < 0 {
		return fmt.Errorf("write.rate_per_second must be >= 0")
	}
	if cfg.Write.CacheEntries < 1 {
		return fmt.Errorf("write.cache_entries must be >= 1")
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 10*time.Millisecond || cfg.Watch.Debounce > time.Minute {
		return fmt.Errorf("watch.debounce must be between 10ms and 1m")
	}
	return nil
}
