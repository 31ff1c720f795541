package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconSlug(t *testing.T) {
	tests := []struct {
		component string
		want      string
	}{
		{"Icon1", "icon-1"},
		{"IconComp", "icon-comp"},
		{"Icon1Icon", "icon-1"},
		{"LucideIcon1", "icon-1"},
		{"Thing as Icon1", "thing"},
		{"ArrowDown01", "arrow-down-0-1"},
		{"Grid2x2", "grid-2x2"},
		{"Grid2x2Check", "grid-2x2-check"},
		{"Clock10", "clock-10"},
		{"Clock1", "clock-1"},
		{"Dice5", "dice-5"},
		{"Heading1", "heading-1"},
		{"AArrowDown", "a-arrow-down"},
		{"LucideAlarmCheck", "alarm-clock-check"},
		{"AlertTriangleIcon", "triangle-alert"},
		{"Grid2X2", "grid-2x2"},
		{"Axis3D", "axis-3d"},
		{"ArrowDownAz", "arrow-down-a-z"},
		{"Home", "house"},
	}

	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			assert.Equal(t, tt.want, IconSlug(tt.component))
		})
	}
}

func TestIconSlug_Deterministic(t *testing.T) {
	first := IconSlug("CheckCircle2")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IconSlug("CheckCircle2"))
	}
	assert.Equal(t, "circle-check", first)
}

func TestRenameTable_Resolve(t *testing.T) {
	table := NewRenameTable(map[string]string{"icon-1": "shiny-one"})
	assert.Equal(t, "shiny-one", table.Resolve("Icon1"))
	assert.Equal(t, "icon-2", table.Resolve("Icon2"))
	// Built-in entries are not consulted by a standalone table.
	assert.Equal(t, "home", table.Resolve("Home"))

	var empty *RenameTable
	assert.Equal(t, "home", empty.Resolve("Home"))
}
