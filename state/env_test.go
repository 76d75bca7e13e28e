package state

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"vindur/compiler"
	"vindur/config"
	"vindur/resolve"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if _, ok := env.Loader.(resolve.OSLoader); !ok {
		t.Errorf("default loader = %T, want resolve.OSLoader", env.Loader)
	}
}

func TestEnvFromContext_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()

	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
	if uptime > 1*time.Second {
		t.Errorf("Uptime() = %v, unexpectedly large", uptime)
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}
		for i := range 3 {
			env.RedirectStdLog()
			if env.restoreStdLog == nil {
				t.Errorf("Iteration %d: restoreStdLog not set", i)
			}
			env.RestoreStdLog()
		}
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		env.RestoreStdLog()
	})
}

func TestLocalEnv_Workers(t *testing.T) {
	env := &LocalEnv{}
	if got := env.Workers(); got != runtime.NumCPU() {
		t.Errorf("Workers() without config = %d, want %d", got, runtime.NumCPU())
	}

	env.Cfg = &config.Config{Compiler: config.CompilerConfig{Workers: 3}}
	if got := env.Workers(); got != 3 {
		t.Errorf("Workers() = %d, want 3", got)
	}
}

func TestLocalEnv_NewCompiler(t *testing.T) {
	files := resolve.MemoryLoader{
		"/proj/src/theme.js": "import { css } from 'vindur'\nexport const base = css`color: red;`\n",
	}
	env := &LocalEnv{
		Cfg: &config.Config{Compiler: config.CompilerConfig{
			DevMode:       true,
			RuntimeModule: "vindur",
			Extensions:    []string{".js"},
		}},
		Log:    zaptest.NewLogger(t),
		Loader: files,
	}

	c, err := env.NewCompiler("/proj")
	if err != nil {
		t.Fatalf("NewCompiler() error = %v", err)
	}
	src := []byte("import { css } from 'vindur'\nimport { base } from './theme'\nexport const a = css`${base}; margin: 0;`\n")
	res, err := c.Compile(context.Background(), "/proj/src/app.js", src)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(res.Dependencies) != 1 || res.Dependencies[0] != filepath.Clean("/proj/src/theme.js") {
		t.Errorf("Dependencies = %v", res.Dependencies)
	}
	if c.Cache().Loads() != 1 {
		t.Errorf("Loads() = %d, want 1", c.Cache().Loads())
	}

	prefix := compiler.FileHash("/proj", "/proj/src/app.js")
	if len(res.Rules) != 2 || !strings.HasPrefix(res.Rules[1].Text, "."+prefix+"-1-a") {
		t.Errorf("rules = %+v, want own class prefixed with %s", res.Rules, prefix)
	}
}

func TestLocalEnv_NewCompilerRootOverride(t *testing.T) {
	env := &LocalEnv{
		Cfg:    &config.Config{Compiler: config.CompilerConfig{RuntimeModule: "vindur", RootDir: "/elsewhere"}},
		Loader: resolve.MemoryLoader{},
	}
	c, err := env.NewCompiler("/proj")
	if err != nil {
		t.Fatalf("NewCompiler() error = %v", err)
	}
	src := []byte("import { css } from 'vindur'\nexport const a = css`color: red;`\n")
	res, err := c.Compile(context.Background(), "/proj/a.js", src)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	prefix := compiler.FileHash("/elsewhere", "/proj/a.js")
	if len(res.Rules) != 1 || !strings.HasPrefix(res.Rules[0].Text, "."+prefix+"-1 ") {
		t.Errorf("rules = %+v, want class prefixed with %s", res.Rules, prefix)
	}
}
