package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindImports_SingleStatement(t *testing.T) {
	matches := FindImports(`import { Icon1 } from "lucide-react";`)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "", m.Leading)
	assert.Equal(t, " Icon1 ", m.RawSymbols)
	assert.Equal(t, byte('"'), m.Quote)
	assert.Equal(t, "lucide-react", m.Library)
	assert.Equal(t, "react", m.Framework)
	assert.Equal(t, ";", m.Trailer)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, len(`import { Icon1 } from "lucide-react";`), m.End)
}

func TestFindImports_StatementLevel(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		symbols []string
	}{
		{
			name: "multiple statements with single component",
			code: `
			import { Icon1 } from "lucide-react";
			import { Icon2 } from "lucide-react";
		`,
			symbols: []string{" Icon1 ", " Icon2 "},
		},
		{
			name: "multiple statements with multiple components",
			code: `
			import { Icon1 } from "lucide-react";
			import { Icon2, Icon3 } from "lucide-react";
		`,
			symbols: []string{" Icon1 ", " Icon2, Icon3 "},
		},
		{
			name: "only one statement matching",
			code: `
			import { Thing } from "another-package";
			import { Icon2 } from "lucide-svelte";
		`,
			symbols: []string{" Icon2 "},
		},
		{
			name: "no statement matching",
			code: `
			import { Thing } from "another-package";
			import { Thing2 } from "another-package";
		`,
			symbols: nil,
		},
		{
			name: "namespaced package",
			code: `import { Icon1 } from '@lucide/svelte';`,
			symbols: []string{" Icon1 "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := FindImports(tt.code)
			require.Len(t, matches, len(tt.symbols))
			for i, m := range matches {
				assert.Equal(t, tt.symbols[i], m.RawSymbols)
			}
		})
	}
}

func TestFindImports_ComponentLevel(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		symbols []string
	}{
		{
			name: "single multiline statement",
			code: `
				import {
					Icon1
				} from "lucide-react";
			`,
			symbols: []string{"Icon1"},
		},
		{
			name: "multiple multiline statements",
			code: `
				import {
					Icon1
				} from "lucide-react";
				import {
					Icon2
				} from "lucide-react";
			`,
			symbols: []string{"Icon1", "Icon2"},
		},
		{
			name: "multiline with multiple components",
			code: `
				import {
					Icon1,
					Icon2
				} from "lucide-react";
			`,
			symbols: []string{"Icon1,\n\t\t\t\t\tIcon2"},
		},
		{
			name: "multiline with trailing comma",
			code: `
				import {
					Icon1,
					Icon2,
				} from "lucide-react";
			`,
			symbols: []string{"Icon1,\n\t\t\t\t\tIcon2,"},
		},
		{
			name: "trailing comma and weighted spacing",
			code: `
				import {
				,
					Icon1 ,
					Icon2
					,Icon3 ,
					Icon4,
				} from "lucide-react";
			`,
			symbols: []string{",\n\t\t\t\t\tIcon1 ,\n\t\t\t\t\tIcon2\n\t\t\t\t\t,Icon3 ,\n\t\t\t\t\tIcon4,"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := FindImports(tt.code)
			require.Len(t, matches, len(tt.symbols))
			for i, m := range matches {
				assert.Equal(t, tt.symbols[i], strings.TrimSpace(m.RawSymbols))
			}
		})
	}
}

func TestFindImports_Rejects(t *testing.T) {
	tests := map[string]string{
		"default import":         `import Icon1 from "lucide-react";`,
		"namespace import":       `import * as Icons from "lucide-react";`,
		"other package":          `import { Icon1 } from "react-icons";`,
		"lab namespace":          `import { Burger } from "@lucide/lab";`,
		"statement type import":  `import type { Icon1 } from "lucide-react";`,
		"direct icon subpath":    `import { Icon1 } from "lucide-svelte/icons/icon-1";`,
		"not at start of line":   `const x = 1; import { Icon1 } from "lucide-react";`,
		"unrelated scope member": `import { Icon1 } from "@other/svelte";`,
		"mismatched quotes":      `import { Icon1 } from "lucide-react';`,
	}

	for name, code := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, FindImports(code))
		})
	}
}

func TestFindImports_LeadingWhitespaceSpansBlankLines(t *testing.T) {
	code := "const a = 1;\n\n\timport { Icon1 } from 'lucide-vue';\n"
	matches := FindImports(code)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "\n\t", m.Leading)
	assert.True(t, m.MultiLine())
	assert.Equal(t, byte('\''), m.Quote)
	assert.Equal(t, "vue", m.Framework)
	assert.Equal(t, "import { Icon1 } from 'lucide-vue';", code[m.Start+len(m.Leading):m.End])
}

func TestFindImports_TrailerKeepsRestOfLine(t *testing.T) {
	matches := FindImports(`import { Icon1 } from "lucide-react"; // icons`)
	require.Len(t, matches, 1)
	assert.Equal(t, "; // icons", matches[0].Trailer)
}

func TestFindImports_TrailerExcludesCarriageReturn(t *testing.T) {
	code := "import { Icon1 } from \"lucide-react\"; // icons\r\nconst x = 1;\r\n"
	matches := FindImports(code)
	require.Len(t, matches, 1)
	assert.Equal(t, "; // icons", matches[0].Trailer)
	assert.Equal(t, "\r\nconst x = 1;\r\n", code[matches[0].End:])
}

func TestFindImports_MismatchedQuoteDoesNotHideLaterStatements(t *testing.T) {
	code := "import { A } from \"lucide-react';\nimport { B } from 'lucide-react';\n"
	matches := FindImports(code)
	require.Len(t, matches, 1)
	assert.Equal(t, " B ", matches[0].RawSymbols)
}

func TestEachImport_StopsEarly(t *testing.T) {
	code := "import { A } from 'lucide-react';\nimport { B } from 'lucide-react';\n"
	seen := 0
	EachImport(code, func(ImportMatch) bool {
		seen++
		return false
	})
	assert.Equal(t, 1, seen)
}
