// # internal/engine/rewrite/matcher.go
package rewrite

import (
	"regexp"
)

const (
	legacyPrefix     = "lucide-"
	namespacedPrefix = "@lucide/"
)

// importsMatcher captures, in order: leading whitespace, the brace list, the opening quote,
// the library prefix, the framework and the rest of the line. The trailer stops before
// any line terminator so CRLF endings stay outside the match.
var importsMatcher = regexp.MustCompile(
	`(?m)^(\s*)import\s+\{([^}]*)\}\s+from\s+(["'])(lucide-|@lucide/)([^"'\s/]+)["']([^\r\n]*)`,
)

// Namespaced packages that share the @lucide scope but are not icon barrels.
var excludedNamespaces = map[string]bool{
	"lab": true,
}

type ImportMatch struct {
	Leading    string // whitespace before "import", may span blank lines
	RawSymbols string // text between the braces
	Quote      byte
	Library    string // e.g. lucide-react or @lucide/svelte
	Framework  string
	Trailer    string // everything after the closing quote up to end of line
	Start      int
	End        int
}

// MultiLine reports whether the leading whitespace already carries a line break.
func (m ImportMatch) MultiLine() bool {
	for i := 0; i < len(m.Leading); i++ {
		if m.Leading[i] == '\n' {
			return true
		}
	}
	return false
}

// EachImport calls fn for every qualifying statement in src, left to right.
// Iteration stops early when fn returns false.
func EachImport(src string, fn func(ImportMatch) bool) {
	for _, loc := range importsMatcher.FindAllStringSubmatchIndex(src, -1) {
		m, ok := decodeMatch(src, loc)
		if !ok {
			continue
		}
		if !fn(m) {
			return
		}
	}
}

// FindImports collects every qualifying statement in src.
func FindImports(src string) []ImportMatch {
	var out []ImportMatch
	EachImport(src, func(m ImportMatch) bool {
		out = append(out, m)
		return true
	})
	return out
}

func decodeMatch(src string, loc []int) (ImportMatch, bool) {
	group := func(i int) string {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			return ""
		}
		return src[start:end]
	}

	prefix := group(4)
	framework := group(5)
	if prefix == namespacedPrefix && excludedNamespaces[framework] {
		return ImportMatch{}, false
	}
	// The closing quote follows the framework and must match the opening one.
	if src[loc[11]] != src[loc[6]] {
		return ImportMatch{}, false
	}

	return ImportMatch{
		Leading:    group(1),
		RawSymbols: group(2),
		Quote:      src[loc[6]],
		Library:    prefix + framework,
		Framework:  framework,
		Trailer:    group(6),
		Start:      loc[0],
		End:        loc[1],
	}, true
}
