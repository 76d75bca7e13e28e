package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	want := CompilerConfig{
		RuntimeModule: "vindur",
		Extensions:    []string{".js", ".jsx", ".mjs"},
	}
	// sanitizer may turn empty root into "."
	ignoreRoot := cmpopts.IgnoreFields(CompilerConfig{}, "RootDir")
	if diff := cmp.Diff(want, cfg.Compiler, ignoreRoot); diff != "" {
		t.Errorf("compiler defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.Output.CSSMode != CSSModeModule {
		t.Errorf("CSSMode = %v, want module", cfg.Output.CSSMode)
	}
	if cfg.Output.CSSNameTemplate != "{{ .Dir }}/{{ .Base }}.css" {
		t.Errorf("CSSNameTemplate was expanded: %q", cfg.Output.CSSNameTemplate)
	}
	if cfg.Output.BundleName != "styles.css" {
		t.Errorf("BundleName = %q, want styles.css", cfg.Output.BundleName)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if filepath.Base(cfg.Logging.FileLogger.Destination) != "vindur.log" {
		t.Errorf("file log destination = %q", cfg.Logging.FileLogger.Destination)
	}
	if filepath.Base(cfg.Reporting.Destination) != "vindur-report.zip" {
		t.Errorf("report destination = %q", cfg.Reporting.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
compiler:
  dev_mode: true
  runtime_module: "@acme/styles"
  extensions: [".js"]
  scoped_var_fallback: true
  workers: 4
output:
  css_mode: bundle
  bundle_name: app.css
  source_comments: true
logging:
  console:
    level: debug
  file:
    level: none
reporting:
  destination: /tmp/test-report.zip
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	want := CompilerConfig{
		DevMode:           true,
		RuntimeModule:     "@acme/styles",
		Extensions:        []string{".js"},
		ScopedVarFallback: true,
		Workers:           4,
	}
	if diff := cmp.Diff(want, cfg.Compiler, cmpopts.IgnoreFields(CompilerConfig{}, "RootDir")); diff != "" {
		t.Errorf("compiler mismatch (-want +got):\n%s", diff)
	}
	if cfg.Output.CSSMode != CSSModeBundle || !cfg.Output.CSSMode.Single() {
		t.Errorf("CSSMode = %v, want bundle", cfg.Output.CSSMode)
	}
	if cfg.Output.BundleName != "app.css" {
		t.Errorf("BundleName = %q, want app.css", cfg.Output.BundleName)
	}
	if !cfg.Output.SourceComments {
		t.Error("expected SourceComments to be set")
	}
	// values absent from file keep template defaults
	if cfg.Output.CSSNameTemplate == "" {
		t.Error("CSSNameTemplate default was lost")
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ncompiler:\n  dev_mode: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"unknown nested field", "version: 1\ncompiler:\n  minify: true\n"},
		{"wrong version", "version: 2\n"},
		{"bad css mode", "version: 1\noutput:\n  css_mode: inline\n"},
		{"empty runtime module", "version: 1\ncompiler:\n  runtime_module: \"\"\n"},
		{"no extensions", "version: 1\ncompiler:\n  extensions: []\n"},
		{"extension without dot", "version: 1\ncompiler:\n  extensions: [js]\n"},
		{"negative workers", "version: 1\ncompiler:\n  workers: -1\n"},
		{"bundle name with directory", "version: 1\noutput:\n  css_mode: bundle\n  bundle_name: css/app.css\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: verbose\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}
	if _, err = unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Compiler: CompilerConfig{
			RuntimeModule: "vindur",
			Extensions:    []string{".js"},
		},
		Output: OutputConfig{
			CSSMode:    CSSModeBundle,
			BundleName: "all.css",
		},
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none"},
		},
		Reporting: ReporterConfig{Destination: "report.zip"},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	text := string(data)
	for _, want := range []string{"css_mode: bundle", "bundle_name: all.css", "runtime_module: vindur"} {
		if !strings.Contains(text, want) {
			t.Errorf("Dump() output missing %q:\n%s", want, text)
		}
	}

	// dumped configuration must load back
	back, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("unable to read dumped config: %v", err)
	}
	if diff := cmp.Diff(cfg, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSSMode(t *testing.T) {
	for _, name := range CSSModeNames() {
		m, err := ParseCSSMode(name)
		if err != nil {
			t.Fatalf("ParseCSSMode(%q) error = %v", name, err)
		}
		if m.String() != name {
			t.Errorf("String() = %q, want %q", m.String(), name)
		}
	}
	if _, err := ParseCSSMode("inline"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if CSSModeModule.Single() {
		t.Error("module mode must not be single")
	}
}

func TestCleanFileName(t *testing.T) {
	if got := CleanFileName(".hidden" + string(os.PathSeparator) + "name.css"); got != "hiddenname.css" {
		t.Errorf("CleanFileName() = %q", got)
	}
	if got := CleanFileName(string(os.PathSeparator)); got != "_unnamed_" {
		t.Errorf("CleanFileName() = %q, want _unnamed_", got)
	}
	if got := CleanFileName("a\x00b\tc.css"); got != "abc.css" {
		t.Errorf("CleanFileName() = %q, want control characters removed", got)
	}
}
