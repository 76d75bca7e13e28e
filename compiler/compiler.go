// Package compiler turns style constructs of host modules into CSS rules and
// rewrites the modules to reference generated class names.
package compiler

import (
	"context"
	"maps"
	"slices"
	"time"

	"go.uber.org/zap"

	"vindur/css"
	"vindur/diag"
	"vindur/quasi"
	"vindur/resolve"
	"vindur/source"
)

// DefaultRuntimeModule is used when Options do not name runtime module.
const DefaultRuntimeModule = "vindur"

// DefaultExtensions are tried when Options do not list any. Parser does not
// understand TypeScript syntax, so TypeScript sources are not included.
var DefaultExtensions = []string{".js", ".jsx", ".mjs"}

// Options control compilation.
type Options struct {
	// Dev adds readable suffixes to generated names and enables warnings.
	Dev bool
	// RuntimeModule is module constructs are imported from and runtime
	// helpers are imported from in rewritten code.
	RuntimeModule string
	// Root is project root, generated names depend on module path relative
	// to it.
	Root string
	// Extensions tried when resolving relative imports.
	Extensions []string
	// ScopedVarFallback adds declared values as inline fallbacks of scoped
	// variable references (production only).
	ScopedVarFallback bool
	// Warnings receives development mode warnings.
	Warnings diag.WarningHandler
}

// Result is compiled module.
type Result struct {
	Path string
	Code string
	// Rules are CSS rules of dependencies followed by module own rules.
	Rules []css.Rule
	// Dependencies are paths of modules compilation depended on.
	Dependencies []string
	Warnings     []diag.Warning
	Functions    map[string]*quasi.Function
	Constructs   map[Construct]int
}

// Stylesheet assembles module rules.
func (r *Result) Stylesheet() *css.Stylesheet {
	return css.Assemble(r.Rules)
}

// Compiler compiles modules. It is safe for concurrent use as long as
// concurrent compilations do not depend on each other in cycles.
type Compiler struct {
	cache *resolve.Cache
	opts  Options
	log   *zap.Logger
}

// New creates compiler resolving external modules through cache.
func New(cache *resolve.Cache, opts Options, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.RuntimeModule == "" {
		opts.RuntimeModule = DefaultRuntimeModule
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if cache == nil {
		cache = resolve.NewCache(nil, log)
	}
	return &Compiler{cache: cache, opts: opts, log: log.Named("compiler")}
}

// Cache returns cross module cache used by compiler.
func (c *Compiler) Cache() *resolve.Cache {
	return c.cache
}

// Compile compiles module at path with source src. Any diagnostic aborts
// compilation, no partial result is returned.
func (c *Compiler) Compile(ctx context.Context, path string, src []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	c.log.Debug("Compiling module", zap.String("path", path))

	u, err := c.process(ctx, path, src, (*resolve.Chain)(nil).Push(path), false)
	if err != nil {
		c.log.Debug("Module failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	u.foldClassCalls()
	u.cleanImports()

	res := &Result{
		Path:         path,
		Code:         u.m.Print(),
		Rules:        append(slices.Clip(u.external), u.rules...),
		Dependencies: slices.Sorted(maps.Keys(u.deps)),
		Warnings:     u.warnings,
		Functions:    u.functions,
		Constructs:   u.constructs,
	}
	c.log.Debug("Module compiled",
		zap.String("path", path),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("rules", len(res.Rules)),
		zap.Int("names", u.seq.Count()),
		zap.Int("dependencies", len(res.Dependencies)))
	return res, nil
}

// Extract compiles module partially to collect what other modules may
// reference. Chain must end with path.
func (c *Compiler) Extract(ctx context.Context, path string, src []byte, chain *resolve.Chain) (*resolve.Record, error) {
	u, err := c.process(ctx, path, src, chain, true)
	if err != nil {
		return nil, err
	}
	return u.record(), nil
}

// Record returns extraction record of module at path, going through the
// cache.
func (c *Compiler) Record(ctx context.Context, path string) (*resolve.Record, error) {
	return c.cache.Get(path, nil, c.extractor(ctx))
}

func (c *Compiler) extractor(ctx context.Context) resolve.Extractor {
	return func(path string, src []byte, chain *resolve.Chain) (*resolve.Record, error) {
		return c.Extract(ctx, path, src, chain)
	}
}

func (c *Compiler) process(ctx context.Context, path string, src []byte, chain *resolve.Chain, partial bool) (*unit, error) {
	m, err := source.Parse(path, src)
	if err != nil {
		return nil, err
	}
	u := newUnit(ctx, c, m, chain, partial)
	if err := u.run(); err != nil {
		return nil, err
	}
	if err := u.resolveForwardRefs(); err != nil {
		return nil, err
	}
	return u, nil
}
