package plugin

import (
	"fmt"
	"path/filepath"
	"strings"

	"lucidepre/internal/engine/rewrite"

	"github.com/gobwas/glob"
)

const Name = "lucide-preprocess"

// DefaultIgnoredPaths lists path fragments of dependency and framework build output
// directories. Files below them are never rewritten.
var DefaultIgnoredPaths = []string{"/node_modules/", "/.svelte-kit/"}

type Options struct {
	ImportMode   string
	IgnoredPaths []string // substrings; nil selects DefaultIgnoredPaths
	IgnoredGlobs []string // matched against the slash-separated path
	Renames      map[string]string
	RenameTable  *rewrite.RenameTable // base table; nil selects the built-in one
}

type TransformResult struct {
	Code        string
	Changed     bool
	Statements  int
	Icons       int
	TypeImports int
}

// Plugin is the build-tool facing entry point around the rewriter.
type Plugin struct {
	rewriter     *rewrite.Rewriter
	mode         rewrite.ImportMode
	ignoredPaths []string
	ignoredGlobs []glob.Glob
}

func New(opts Options) (*Plugin, error) {
	mode, err := rewrite.ParseImportMode(opts.ImportMode)
	if err != nil {
		return nil, err
	}

	ignored := opts.IgnoredPaths
	if ignored == nil {
		ignored = DefaultIgnoredPaths
	}
	paths := make([]string, 0, len(ignored))
	for _, p := range ignored {
		if strings.TrimSpace(p) == "" {
			continue
		}
		paths = append(paths, p)
	}

	globs := make([]glob.Glob, 0, len(opts.IgnoredGlobs))
	for _, pattern := range opts.IgnoredGlobs {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignored glob %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	table := opts.RenameTable
	if table == nil {
		table = rewrite.DefaultRenames()
	}
	if len(opts.Renames) > 0 {
		table = table.Merge(opts.Renames)
	}

	return &Plugin{
		rewriter:     rewrite.NewRewriter(rewrite.PathConfig{ImportMode: mode}, table),
		mode:         mode,
		ignoredPaths: paths,
		ignoredGlobs: globs,
	}, nil
}

func (p *Plugin) Name() string {
	return Name
}

func (p *Plugin) ImportMode() rewrite.ImportMode {
	return p.mode
}

// Ignored reports whether path lives in a location that must not be rewritten.
func (p *Plugin) Ignored(path string) bool {
	for _, fragment := range p.ignoredPaths {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	if len(p.ignoredGlobs) == 0 {
		return false
	}
	slashed := filepath.ToSlash(path)
	for _, g := range p.ignoredGlobs {
		if g.Match(slashed) {
			return true
		}
	}
	return false
}

// Transform rewrites code loaded from path. The boolean is false when the path is
// ignored, meaning the caller should keep the original text. Otherwise a result is
// always returned, with Code equal to the input when nothing matched.
func (p *Plugin) Transform(code, path string) (TransformResult, bool) {
	if p.Ignored(path) {
		return TransformResult{}, false
	}
	res := p.rewriter.Rewrite(code)
	return TransformResult{
		Code:        res.Code,
		Changed:     res.Changed(),
		Statements:  res.Statements,
		Icons:       res.Icons,
		TypeImports: res.TypeImports,
	}, true
}
