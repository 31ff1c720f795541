package rewrite

import (
	"fmt"
	"strings"
)

type ImportMode string

const (
	ModeCJS ImportMode = "cjs"
	ModeESM ImportMode = "esm"

	DefaultImportMode = ModeESM
)

// ParseImportMode accepts "cjs" or "esm" in any case. An empty value selects the default.
func ParseImportMode(raw string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultImportMode, nil
	case ModeCJS:
		return ModeCJS, nil
	case ModeESM:
		return ModeESM, nil
	}
	return "", fmt.Errorf("import mode must be one of: cjs, esm; got %q", raw)
}

type PathConfig struct {
	ImportMode ImportMode
}

// Packages that publish separate CommonJS and ES module builds under dist/.
var buildQualifiedFrameworks = map[string]bool{
	"react":    true,
	"vue":      true,
	"vue-next": true,
	"preact":   true,
}

// FrameworkImportPath returns the segment between the library root and the icon slug.
func FrameworkImportPath(framework string, cfg PathConfig) string {
	if !buildQualifiedFrameworks[framework] {
		return "/icons/"
	}
	mode := cfg.ImportMode
	if mode == "" {
		mode = DefaultImportMode
	}
	return "/dist/" + string(mode) + "/icons/"
}
