package rewrite

import (
	"regexp"
	"strings"
)

var (
	// Grid2x2 becomes grid-2x-2 after dashing; the dimension token is one segment.
	dimensionToken = regexp.MustCompile(`(\d)x-(\d)`)
	// Clock10 becomes clock-1-0 after dashing; clock faces keep both digits together.
	clockFaceToken = regexp.MustCompile(`clock-(\d)-(\d)`)
)

const (
	libraryNamePrefix = "lucide-"
	redundantSuffix   = "-icon"
)

// IconSlug converts an imported component name into its module slug using the
// built-in rename table.
func IconSlug(importName string) string {
	return DefaultRenames().Resolve(importName)
}

// Resolve converts a PascalCase component name (e.g. ArrowDownAz) into the dashed
// module slug under which the icon is published (e.g. arrow-down-a-z).
func (t *RenameTable) Resolve(importName string) string {
	slug := dashed(importName)
	if target, ok := t.Lookup(slug); ok {
		return target
	}
	return slug
}

func dashed(component string) string {
	if before, _, found := strings.Cut(component, " as "); found {
		component = before
	}

	var b strings.Builder
	b.Grow(len(component) + 8)
	for i := 0; i < len(component); i++ {
		c := component[i]
		switch {
		case c >= 'A' && c <= 'Z':
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteByte(c + ('a' - 'A'))
		case c >= '0' && c <= '9':
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	slug := strings.ToLower(b.String())

	slug = dimensionToken.ReplaceAllString(slug, "${1}x${2}")
	slug = clockFaceToken.ReplaceAllString(slug, "clock-${1}${2}")

	slug = strings.TrimPrefix(slug, libraryNamePrefix)
	slug = strings.TrimSuffix(slug, redundantSuffix)
	return slug
}
