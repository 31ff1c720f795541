package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	defaultIgnoredPaths = []string{"/node_modules/", "/.svelte-kit/"}
	defaultExcludeDirs  = []string{"node_modules", ".git", ".svelte-kit", "dist", "build"}
	defaultExcludeFiles = []string{"*.d.ts"}
	defaultExtensions   = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".svelte", ".vue", ".astro"}
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse decodes a TOML document, applies defaults and validates the result.
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.ImportMode) == "" {
		cfg.ImportMode = "esm"
	}
	if len(cfg.WatchPaths) == 0 {
		cfg.WatchPaths = []string{"."}
	}

	// nil keeps the defaults; an explicit empty list disables them.
	if cfg.Exclude.Paths == nil {
		cfg.Exclude.Paths = append([]string(nil), defaultIgnoredPaths...)
	}
	if cfg.Exclude.Dirs == nil {
		cfg.Exclude.Dirs = append([]string(nil), defaultExcludeDirs...)
	}
	if cfg.Exclude.Files == nil {
		cfg.Exclude.Files = append([]string(nil), defaultExcludeFiles...)
	}
	if len(cfg.Files.Extensions) == 0 {
		cfg.Files.Extensions = append([]string(nil), defaultExtensions...)
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}

	if cfg.Write.Concurrency <= 0 {
		cfg.Write.Concurrency = 8
	}
	if cfg.Write.CacheEntries <= 0 {
		cfg.Write.CacheEntries = 4096
	}

	if strings.TrimSpace(cfg.Observability.Address) == "" {
		cfg.Observability.Address = "127.0.0.1:9464"
	}
}

func normalize(cfg *Config) {
	cfg.ImportMode = strings.ToLower(strings.TrimSpace(cfg.ImportMode))
	cfg.RenamesFile = strings.TrimSpace(cfg.RenamesFile)
	cfg.Paths.ProjectRoot = strings.TrimSpace(cfg.Paths.ProjectRoot)
	cfg.Observability.Address = strings.TrimSpace(cfg.Observability.Address)
	cfg.Observability.OTLPEndpoint = strings.TrimSpace(cfg.Observability.OTLPEndpoint)

	exts := make([]string, 0, len(cfg.Files.Extensions))
	for _, ext := range cfg.Files.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	cfg.Files.Extensions = exts
}
