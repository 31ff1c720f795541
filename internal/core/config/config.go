package config

import (
	"time"
)

const DefaultFileName = "lucidepre.toml"

type Config struct {
	Version       int           `toml:"version"`
	ImportMode    string        `toml:"import_mode"`
	WatchPaths    []string      `toml:"watch_paths"`
	RenamesFile   string        `toml:"renames_file"`
	Paths         Paths         `toml:"paths"`
	Exclude       Exclude       `toml:"exclude"`
	Files         Files         `toml:"files"`
	Watch         Watch         `toml:"watch"`
	Write         Write         `toml:"write"`
	Observability Observability `toml:"observability"`
}

type Paths struct {
	ProjectRoot string `toml:"project_root"`
}

type Exclude struct {
	Paths []string `toml:"paths"` // substrings of paths that are never rewritten
	Globs []string `toml:"globs"` // patterns matched against the whole path
	Dirs  []string `toml:"dirs"`  // directory base names skipped while walking
	Files []string `toml:"files"` // file base names skipped while walking
}

type Files struct {
	Extensions []string `toml:"extensions"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Write struct {
	Concurrency   int     `toml:"concurrency"`
	RatePerSecond float64 `toml:"rate_per_second"`
	CacheEntries  int     `toml:"cache_entries"`
}

type Observability struct {
	Enabled      bool   `toml:"enabled"`
	Address      string `toml:"address"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
	OTLPInsecure *bool  `toml:"otlp_insecure"`
}

func (o Observability) Insecure() bool {
	return o.OTLPInsecure == nil || *o.OTLPInsecure
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
