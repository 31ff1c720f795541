package rewrite

import (
	"strings"
)

const typeModifier = "type"

type ImportedSymbol struct {
	ImportName  string // name exported by the library
	ExposedName string // name bound in the importing scope
	TypeOnly    bool
}

func (s ImportedSymbol) Aliased() bool {
	return s.ExposedName != s.ImportName
}

func (s ImportedSymbol) String() string {
	if s.Aliased() {
		return s.ImportName + " as " + s.ExposedName
	}
	return s.ImportName
}

// ParseModuleList splits the raw text between the braces of an import into plain and
// type-only symbols. Empty entries produced by stray commas or blank lines are dropped.
func ParseModuleList(raw string) (plain, types []ImportedSymbol) {
	plain = []ImportedSymbol{}
	types = []ImportedSymbol{}

	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if rest, ok := cutTypeModifier(token); ok {
			sym := parseSymbol(rest)
			sym.TypeOnly = true
			types = append(types, sym)
			continue
		}
		plain = append(plain, parseSymbol(token))
	}
	return plain, types
}

// cutTypeModifier strips a leading "type" keyword followed by whitespace.
func cutTypeModifier(token string) (string, bool) {
	if !strings.HasPrefix(token, typeModifier) {
		return token, false
	}
	rest := token[len(typeModifier):]
	if rest == "" || !isSpace(rest[0]) {
		return token, false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return token, false
	}
	return rest, true
}

func parseSymbol(token string) ImportedSymbol {
	fields := strings.Fields(token)
	if len(fields) == 3 && fields[1] == "as" {
		return ImportedSymbol{ImportName: fields[0], ExposedName: fields[2]}
	}
	return ImportedSymbol{ImportName: token, ExposedName: token}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
