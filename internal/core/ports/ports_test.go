package ports

import "testing"

func TestRewriteModeString(t *testing.T) {
	cases := map[RewriteMode]string{
		ModeCheck:      "check",
		ModeWrite:      "write",
		ModeDiff:       "diff",
		RewriteMode(9): "check",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("RewriteMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}
