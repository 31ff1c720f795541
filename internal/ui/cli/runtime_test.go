package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	coreapp "lucidepre/internal/core/app"
	"lucidepre/internal/core/config"
	"lucidepre/internal/core/ports"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const barrelSource = "import { Home, Icon1 } from \"lucide-react\";\n"

func writeProject(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(root, "src", "App.tsx")
	if err := os.WriteFile(file, []byte(barrelSource), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, config.DefaultFileName)
	if err := os.WriteFile(cfgPath, []byte("import_mode = \"esm\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root, cfgPath
}

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := parseOptions(nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if opts.configPath != defaultConfigPath {
		t.Fatalf("unexpected config path: %q", opts.configPath)
	}
	mode, err := opts.rewriteMode()
	if err != nil {
		t.Fatal(err)
	}
	if mode != ports.ModeCheck {
		t.Fatalf("expected check mode by default, got %s", mode)
	}
}

func TestRewriteMode(t *testing.T) {
	tests := []struct {
		name    string
		opts    cliOptions
		want    ports.RewriteMode
		wantErr string
	}{
		{name: "write", opts: cliOptions{write: true}, want: ports.ModeWrite},
		{name: "diff", opts: cliOptions{diff: true, watch: true}, want: ports.ModeDiff},
		{name: "write and diff", opts: cliOptions{write: true, diff: true}, wantErr: "cannot be combined"},
		{name: "stdin and watch", opts: cliOptions{stdin: true, watch: true}, wantErr: "-stdin cannot be combined"},
		{name: "stdin with args", opts: cliOptions{stdin: true, args: []string{"src"}}, wantErr: "does not take path arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.rewriteMode()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestApplyModeOptions_OverridesWatchPathWithPositionalArg(t *testing.T) {
	opts := cliOptions{importMode: " CJS ", args: []string{"./override"}}
	cfg := &config.Config{WatchPaths: []string{"./original"}}

	applyModeOptions(opts, cfg, "/work")
	if cfg.ImportMode != "cjs" {
		t.Fatalf("expected cjs, got %q", cfg.ImportMode)
	}
	if len(cfg.WatchPaths) != 1 || cfg.WatchPaths[0] != filepath.Clean("/work/override") {
		t.Fatalf("unexpected watch paths: %v", cfg.WatchPaths)
	}
}

func TestSummaryExitCode(t *testing.T) {
	changed := ports.ScanResult{FilesChanged: 1}
	if got := summaryExitCode(changed, ports.ModeCheck); got != exitFailure {
		t.Fatalf("check with pending changes: expected %d, got %d", exitFailure, got)
	}
	if got := summaryExitCode(changed, ports.ModeWrite); got != exitOK {
		t.Fatalf("write: expected %d, got %d", exitOK, got)
	}
	if got := summaryExitCode(ports.ScanResult{Warnings: []string{"x"}}, ports.ModeWrite); got != exitFailure {
		t.Fatalf("warnings: expected %d, got %d", exitFailure, got)
	}
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	if code := run([]string{"-version"}, nil, &stdout, io.Discard); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "lucidepre v") {
		t.Fatalf("unexpected version output: %q", stdout.String())
	}
}

func TestRun_UsageErrors(t *testing.T) {
	if code := run([]string{"-no-such-flag"}, nil, io.Discard, io.Discard); code != exitUsage {
		t.Fatalf("expected usage exit for unknown flag, got %d", code)
	}
	if code := run([]string{"-write", "-diff"}, nil, io.Discard, io.Discard); code != exitUsage {
		t.Fatalf("expected usage exit for -write -diff, got %d", code)
	}
}

func TestRun_CheckReportsPendingRewrites(t *testing.T) {
	root, cfgPath := writeProject(t)

	var stdout bytes.Buffer
	code := run([]string{"-config", cfgPath, root}, nil, &stdout, io.Discard)
	if code != exitFailure {
		t.Fatalf("expected exit 1 for pending rewrites, got %d", code)
	}
	if !strings.Contains(stdout.String(), "would rewrite "+filepath.Join(root, "src", "App.tsx")) {
		t.Fatalf("unexpected output: %s", stdout.String())
	}

	data, err := os.ReadFile(filepath.Join(root, "src", "App.tsx"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != barrelSource {
		t.Fatalf("check mode must not modify files, got %q", data)
	}
}

func TestRun_WriteRewritesFiles(t *testing.T) {
	root, cfgPath := writeProject(t)

	var stdout bytes.Buffer
	code := run([]string{"-config", cfgPath, "-write", "-mode", "cjs", root}, nil, &stdout, io.Discard)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d; output: %s", code, stdout.String())
	}

	data, err := os.ReadFile(filepath.Join(root, "src", "App.tsx"))
	if err != nil {
		t.Fatal(err)
	}
	want := "import Home from \"lucide-react/dist/cjs/icons/house\";\n" +
		"import Icon1 from \"lucide-react/dist/cjs/icons/icon-1\";\n"
	if string(data) != want {
		t.Fatalf("unexpected rewrite:\n%s", data)
	}
	if !strings.Contains(stdout.String(), "1 files scanned, 1 changed, 1 statements, 2 icons") {
		t.Fatalf("unexpected summary: %s", stdout.String())
	}
}

func TestRun_Diff(t *testing.T) {
	root, cfgPath := writeProject(t)

	var stdout bytes.Buffer
	if code := run([]string{"-config", cfgPath, "-diff", root}, nil, &stdout, io.Discard); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "-import { Home, Icon1 } from \"lucide-react\";") ||
		!strings.Contains(stdout.String(), "+import Home from \"lucide-react/dist/esm/icons/house\";") {
		t.Fatalf("unexpected diff output: %s", stdout.String())
	}
}

func TestRun_Stdin(t *testing.T) {
	_, cfgPath := writeProject(t)

	var stdout bytes.Buffer
	code := run([]string{"-config", cfgPath, "-stdin"}, strings.NewReader(`import { Icon1 } from "lucide-svelte";`), &stdout, io.Discard)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got := stdout.String(); got != `import Icon1 from "lucide-svelte/icons/icon-1";` {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")
	if code := run([]string{"-config", missing}, nil, io.Discard, io.Discard); code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestObservabilityServer_ServesHealthAndMetrics(t *testing.T) {
	a, err := coreapp.New(config.Default())
	if err != nil {
		t.Fatal(err)
	}

	server := NewObservabilityServer("127.0.0.1:0", coreapp.NewHealthService(a))
	if err := server.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer server.Stop(context.Background())

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + server.Addr() + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", resp.StatusCode)
	}
	var status coreapp.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Status != "up" {
		t.Fatalf("unexpected health status: %+v", status)
	}

	metrics, err := client.Get("http://" + server.Addr() + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer metrics.Body.Close()
	body, err := io.ReadAll(metrics.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "lucidepre_") {
		t.Fatal("expected lucidepre metrics in /metrics output")
	}
}
