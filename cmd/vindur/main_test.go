package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vindur/config"
	"vindur/state"
)

// quietConfig writes configuration which keeps console silent and log file in
// temporary directory.
func quietConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	name := filepath.Join(dir, "vindur.yaml")
	data := "version: 1\nlogging:\n  console:\n    level: none\n  file:\n    level: none\n    destination: " +
		filepath.ToSlash(filepath.Join(dir, "vindur.log")) + "\n"
	if err := os.WriteFile(name, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	return newApp().Run(ctx, append([]string{"vindur", "--config", quietConfig(t)}, args...))
}

func TestDumpConfig(t *testing.T) {
	out := filepath.Join(t.TempDir(), "default.yaml")
	if err := run(t, "dumpconfig", "--default", out); err != nil {
		t.Fatalf("dumpconfig error = %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want, err := config.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("default configuration mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAndCheck(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	module := "import { css } from \"vindur\";\nexport const a = css`color: red;`;\n"
	if err := os.WriteFile(filepath.Join(src, "a.js"), []byte(module), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "check", src); err != nil {
		t.Fatalf("check error = %v", err)
	}
	if entries, _ := os.ReadDir(dst); len(entries) != 0 {
		t.Fatalf("check wrote %d entries", len(entries))
	}

	if err := run(t, "build", "--css-mode", "bundle", src, dst); err != nil {
		t.Fatalf("build error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "styles.css"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "color: red;") {
		t.Errorf("unexpected bundle:\n%s", data)
	}
	if err := run(t, "build", src, dst); err == nil {
		t.Error("expected error for existing output without --overwrite")
	}
}

func TestDebugReport(t *testing.T) {
	cfg := quietConfig(t)
	rpt := filepath.Join(t.TempDir(), "report.zip")
	data, err := os.ReadFile(cfg)
	if err != nil {
		t.Fatal(err)
	}
	data = append(data, []byte("reporting:\n  destination: "+filepath.ToSlash(rpt)+"\n")...)
	if err := os.WriteFile(cfg, data, 0644); err != nil {
		t.Fatal(err)
	}

	ctx := state.ContextWithEnv(context.Background())
	if err := newApp().Run(ctx, []string{"vindur", "--debug", "--config", cfg, "dumpconfig", filepath.Join(t.TempDir(), "out.yaml")}); err != nil {
		t.Fatalf("run error = %v", err)
	}
	if fi, err := os.Stat(rpt); err != nil || fi.Size() == 0 {
		t.Errorf("debug report was not produced: %v", err)
	}
}
