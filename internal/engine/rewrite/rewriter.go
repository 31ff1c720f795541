package rewrite

import (
	"strings"
)

// Rewriter turns barrel icon imports into one direct import per icon.
// It holds no mutable state and may be shared between goroutines.
type Rewriter struct {
	paths   PathConfig
	renames *RenameTable
}

// Result describes one rewritten source text.
type Result struct {
	Code        string
	Statements  int // barrel statements replaced
	Icons       int // direct icon imports emitted
	TypeImports int // aggregated type-only imports emitted
}

func (r Result) Changed() bool {
	return r.Statements > 0
}

// NewRewriter builds a rewriter. A nil table selects the built-in renames.
func NewRewriter(cfg PathConfig, renames *RenameTable) *Rewriter {
	if cfg.ImportMode == "" {
		cfg.ImportMode = DefaultImportMode
	}
	if renames == nil {
		renames = DefaultRenames()
	}
	return &Rewriter{paths: cfg, renames: renames}
}

// Rewrite replaces every qualifying import in src. Text outside the matched
// statements is copied unchanged.
func (r *Rewriter) Rewrite(src string) Result {
	var (
		b    strings.Builder
		last int
		res  Result
	)

	EachImport(src, func(m ImportMatch) bool {
		if res.Statements == 0 {
			b.Grow(len(src) + len(src)/2)
		}
		b.WriteString(src[last:m.Start])

		plain, types := ParseModuleList(m.RawSymbols)
		b.WriteString(r.render(m, plain, types))
		last = m.End

		res.Statements++
		res.Icons += len(plain)
		if len(types) > 0 {
			res.TypeImports++
		}
		return true
	})

	if res.Statements == 0 {
		res.Code = src
		return res
	}
	b.WriteString(src[last:])
	res.Code = b.String()
	return res
}

// RewriteStatement renders the replacement text for a single match.
func (r *Rewriter) RewriteStatement(m ImportMatch) string {
	plain, types := ParseModuleList(m.RawSymbols)
	return r.render(m, plain, types)
}

func (r *Rewriter) render(m ImportMatch, plain, types []ImportedSymbol) string {
	if len(plain) == 0 && len(types) == 0 {
		return ""
	}

	quote := string(m.Quote)
	trailer := strings.TrimRight(m.Trailer, " \t\r\n\v\f")
	segment := FrameworkImportPath(m.Framework, r.paths)

	lines := make([]string, 0, len(plain)+1)
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, sym := range types {
			names[i] = sym.String()
		}
		lines = append(lines, m.Leading+"import type { "+strings.Join(names, ", ")+" } from "+
			quote+m.Library+quote+trailer)
	}
	for _, sym := range plain {
		lines = append(lines, m.Leading+"import "+sym.String()+" from "+
			quote+m.Library+segment+r.renames.Resolve(sym.ImportName)+quote+trailer)
	}

	sep := "\n"
	if m.MultiLine() {
		sep = ""
	}
	return strings.Join(lines, sep)
}
