package rewrite

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed renames.toml
var embeddedRenames string

// RenameTable maps slugs computed from outdated or alias component names to the slug
// of the module that is actually published. A table is never modified after construction.
type RenameTable struct {
	entries map[string]string
}

type renameFile struct {
	Renames map[string]string `toml:"renames"`
}

var defaultRenames = sync.OnceValue(func() *RenameTable {
	table, err := parseRenames(embeddedRenames)
	if err != nil {
		panic(fmt.Sprintf("rewrite: embedded rename table is invalid: %v", err))
	}
	return table
})

// DefaultRenames returns the built-in rename table.
func DefaultRenames() *RenameTable {
	return defaultRenames()
}

// NewRenameTable copies entries into a new table. Keys and values are trimmed and
// entries with an empty side are ignored.
func NewRenameTable(entries map[string]string) *RenameTable {
	t := &RenameTable{entries: make(map[string]string, len(entries))}
	for from, to := range entries {
		from = strings.TrimSpace(from)
		to = strings.TrimSpace(to)
		if from == "" || to == "" {
			continue
		}
		t.entries[from] = to
	}
	return t
}

// LoadRenameFile reads a TOML file with a [renames] table.
func LoadRenameFile(path string) (*RenameTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table, err := parseRenames(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse rename file %s: %w", path, err)
	}
	return table, nil
}

func parseRenames(data string) (*RenameTable, error) {
	var f renameFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, err
	}
	return NewRenameTable(f.Renames), nil
}

func (t *RenameTable) Lookup(slug string) (string, bool) {
	if t == nil {
		return "", false
	}
	target, ok := t.entries[slug]
	return target, ok
}

func (t *RenameTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Merge returns a new table holding the receiver's entries overlaid with extra.
func (t *RenameTable) Merge(extra map[string]string) *RenameTable {
	merged := make(map[string]string, t.Len()+len(extra))
	if t != nil {
		for from, to := range t.entries {
			merged[from] = to
		}
	}
	for from, to := range extra {
		merged[from] = to
	}
	return NewRenameTable(merged)
}

// Entries returns a copy of the table contents.
func (t *RenameTable) Entries() map[string]string {
	out := make(map[string]string, t.Len())
	if t != nil {
		for from, to := range t.entries {
			out[from] = to
		}
	}
	return out
}
