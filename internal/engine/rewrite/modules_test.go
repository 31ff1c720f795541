package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(symbols []ImportedSymbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = s.String()
	}
	return out
}

func TestParseModuleList(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		plain []string
		types []string
	}{
		{name: "inline single", raw: ` Icon1 `, plain: []string{"Icon1"}},
		{name: "inline multiple", raw: ` Icon1, Icon2, Icon3 `, plain: []string{"Icon1", "Icon2", "Icon3"}},
		{name: "inline single trailing comma", raw: ` Icon1, `, plain: []string{"Icon1"}},
		{name: "inline multiple trailing comma", raw: ` Icon1, Icon2, Icon3, `, plain: []string{"Icon1", "Icon2", "Icon3"}},
		{name: "inline leading comma", raw: ` ,Icon1 `, plain: []string{"Icon1"}},
		{name: "inline weird spacing", raw: ` Icon1 , Icon2,Icon3, Icon4 ,`, plain: []string{"Icon1", "Icon2", "Icon3", "Icon4"}},
		{name: "multiline single", raw: "\n\t\t\t\tIcon1\n\t\t\t", plain: []string{"Icon1"}},
		{name: "multiline multiple", raw: "\n\t\tIcon1,\n\t\tIcon2,\n\t\tIcon3\n\t", plain: []string{"Icon1", "Icon2", "Icon3"}},
		{name: "multiline leading comma", raw: "\n\t\t,\n\t\tIcon1\n\t", plain: []string{"Icon1"}},
		{
			name:  "multiline weird spacing keeps order",
			raw:   "\n\t\tIcon3,\n\t\t,Icon1 ,\n\t\tIcon2 ,\n\t\tIcon4,\n\t",
			plain: []string{"Icon3", "Icon1", "Icon2", "Icon4"},
		},
		{
			name:  "types and aliases",
			raw:   ` type One, Icon1, type Icon2, Icon3 as Icon4, Icon5 `,
			plain: []string{"Icon1", "Icon3 as Icon4", "Icon5"},
			types: []string{"One", "Icon2"},
		},
		{name: "type modifier needs whitespace", raw: ` TypeIcon, typeface `, plain: []string{"TypeIcon", "typeface"}},
		{name: "aliased type", raw: `type A as B`, types: []string{"A as B"}},
		{name: "empty", raw: ``},
		{name: "only commas", raw: " , ,\n, "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, types := ParseModuleList(tt.raw)
			if tt.plain == nil {
				tt.plain = []string{}
			}
			if tt.types == nil {
				tt.types = []string{}
			}
			assert.Equal(t, tt.plain, names(plain))
			assert.Equal(t, tt.types, names(types))
			for _, s := range types {
				assert.True(t, s.TypeOnly)
			}
			for _, s := range plain {
				assert.False(t, s.TypeOnly)
			}
		})
	}
}

func TestParseModuleList_Alias(t *testing.T) {
	plain, _ := ParseModuleList(" Icon3   as\tIcon4 ")
	if assert.Len(t, plain, 1) {
		assert.Equal(t, "Icon3", plain[0].ImportName)
		assert.Equal(t, "Icon4", plain[0].ExposedName)
		assert.True(t, plain[0].Aliased())
	}
}
