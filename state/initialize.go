package state

import (
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"

	"vindur/compiler"
	"vindur/config"
	"vindur/resolve"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Loader: resolve.OSLoader{},
	}
}

// Workers returns number of modules to compile concurrently.
func (e *LocalEnv) Workers() int {
	if e.Cfg != nil && e.Cfg.Compiler.Workers > 0 {
		return e.Cfg.Compiler.Workers
	}
	return runtime.NumCPU()
}

// NewCompiler prepares compiler with fresh resolution cache. Generated names
// are relative to configured root directory or to root when none is
// configured.
func (e *LocalEnv) NewCompiler(root string) (*compiler.Compiler, error) {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	cc := e.Cfg.Compiler
	if cc.RootDir != "" && cc.RootDir != "." {
		root = cc.RootDir
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	opts := compiler.Options{
		Dev:               cc.DevMode,
		RuntimeModule:     cc.RuntimeModule,
		Root:              root,
		Extensions:        cc.Extensions,
		ScopedVarFallback: cc.ScopedVarFallback,
	}
	if cc.DevMode {
		opts.Warnings = config.WarningLogger(log)
	}
	loader := e.Loader
	if loader == nil {
		loader = resolve.OSLoader{}
	}
	return compiler.New(resolve.NewCache(loader, log), opts, log), nil
}
