package app

import (
	"io/fs"
	"lucidepre/internal/core/errors"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDirectories walks roots and returns the candidate source files, sorted and
// without duplicates. A root may also name a single file.
func (a *App) ScanDirectories(roots []string) ([]string, error) {
	a.mu.RLock()
	dirGlobs, fileGlobs, extensions := a.dirGlobs, a.fileGlobs, a.extensions
	a.mu.RUnlock()

	seen := make(map[string]bool)
	var files []string

	for _, root := range normalizeScanPaths(roots) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				if path == root {
					return nil
				}
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !extensions[strings.ToLower(filepath.Ext(base))] {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, ioCode(err), "failed to scan directory"),
				errors.CtxPath, root,
			)
		}
	}

	sort.Strings(files)
	return files, nil
}

func normalizeScanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		clean := filepath.Clean(trimmed)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}
	return out
}
