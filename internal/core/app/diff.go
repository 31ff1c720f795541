package app

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 2

// renderDiff produces a line diff of before and after with --- / +++ headers.
// Long unchanged stretches collapse to a "@@" marker.
func renderDiff(path, before, after string) string {
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(src, dst, false), lines)

	var b strings.Builder
	b.WriteString("--- " + path + "\n")
	b.WriteString("+++ " + path + "\n")

	for i, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writePrefixed(&b, "-", chunk)
		case diffmatchpatch.DiffInsert:
			writePrefixed(&b, "+", chunk)
		case diffmatchpatch.DiffEqual:
			head, tail := diffContext, diffContext
			if i == 0 {
				head = 0
			}
			if i == len(diffs)-1 {
				tail = 0
			}
			if len(chunk) <= head+tail {
				writePrefixed(&b, " ", chunk)
				continue
			}
			writePrefixed(&b, " ", chunk[:head])
			b.WriteString("@@\n")
			writePrefixed(&b, " ", chunk[len(chunk)-tail:])
		}
	}
	return b.String()
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func writePrefixed(b *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		b.WriteString(prefix)
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}
}
