package compiler

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/tdewolff/parse/v2/js"
	"go.uber.org/zap"

	"vindur/color"
	"vindur/css"
	"vindur/diag"
	"vindur/quasi"
	"vindur/resolve"
	"vindur/source"
)

// importBinding is a single name brought into module scope by an import
// statement.
type importBinding struct {
	local string
	// imported is exported name, "*" for namespace imports.
	imported string
	spec     string
	// path is resolved module path, empty when import is not relative.
	path    string
	runtime bool
	// consumed is set when binding was used at compile time.
	consumed bool
}

// unit is compilation state of a single module.
type unit struct {
	ctx     context.Context
	c       *Compiler
	log     *zap.Logger
	m       *source.Module
	path    string
	chain   *resolve.Chain
	partial bool
	dev     bool
	seq     *Sequence
	scoped  *css.ScopedVariables

	imports map[string]*importBinding
	// runtime maps local name to runtime export it is bound to.
	runtime map[string]string

	components map[string]resolve.Component
	classes    map[string]string
	keyframes  map[string]string
	themes     map[string]*color.Palette
	dynColors  map[string]string
	functions  map[string]*quasi.Function
	consts     resolve.Constants
	frames     []map[string]any
	// names are declared names of initializer expressions.
	names      map[js.IExpr]string

	layer      *string
	forwards   []string
	rules      []css.Rule
	external   []css.Rule
	merged     map[string]bool
	deps       map[string]bool
	helpers    map[string]bool
	warnings   []diag.Warning
	constructs map[Construct]int

	// sideEffects are imported modules contributing rules.
	sideEffects map[string]bool

	err       error
	lookupErr error
}

func newUnit(ctx context.Context, c *Compiler, m *source.Module, chain *resolve.Chain, partial bool) *unit {
	hash := FileHash(c.opts.Root, m.Path)
	u := &unit{
		ctx:        ctx,
		c:          c,
		log:        c.log.With(zap.String("module", m.Path)),
		m:          m,
		path:       m.Path,
		chain:      chain,
		partial:    partial,
		dev:        c.opts.Dev,
		seq:        NewSequence(hash, c.opts.Dev),
		scoped:     css.NewScopedVariables(hash, c.opts.Dev, c.opts.ScopedVarFallback),
		imports:    make(map[string]*importBinding),
		runtime:    make(map[string]string),
		components: make(map[string]resolve.Component),
		classes:    make(map[string]string),
		keyframes:  make(map[string]string),
		themes:     make(map[string]*color.Palette),
		dynColors:  make(map[string]string),
		functions:  make(map[string]*quasi.Function),
		consts:     resolve.ExtractConstants(m),
		names:      make(map[js.IExpr]string),
		merged:     make(map[string]bool),
		deps:       make(map[string]bool),
		helpers:    make(map[string]bool),
		constructs: make(map[Construct]int),

		sideEffects: make(map[string]bool),
	}
	u.collectImports()
	return u
}

func (u *unit) collectImports() {
	loader := u.c.cache.Loader()
	for _, stmt := range u.m.AST.List {
		imp, ok := stmt.(*js.ImportStmt)
		if !ok {
			continue
		}
		spec := source.Unquote(imp.Module)
		runtime := spec == u.c.opts.RuntimeModule
		path, _ := resolve.ImportPath(u.path, spec, u.c.opts.Extensions, loader.Exists)
		add := func(local, imported string) {
			u.imports[local] = &importBinding{local: local, imported: imported, spec: spec, path: path, runtime: runtime}
			if runtime {
				u.runtime[local] = imported
			}
		}
		if imp.Default != nil {
			add(string(imp.Default), "default")
		}
		for _, alias := range imp.List {
			if alias.Binding == nil {
				continue
			}
			imported := string(alias.Binding)
			if alias.Name != nil {
				imported = string(alias.Name)
			}
			add(string(alias.Binding), imported)
		}
	}
}

// Locate returns source position of node.
func (u *unit) Locate(n js.INode) diag.Position {
	if n == nil {
		return diag.Position{File: u.path}
	}
	return u.m.Locate(n)
}

func (u *unit) fail(kind diag.Kind, n js.INode, format string, args ...any) error {
	err := diag.Errorf(kind, format, args...)
	err.Position = u.Locate(n)
	return err
}

func (u *unit) warn(n js.INode, format string, args ...any) {
	// extracted modules report their warnings when compiled on their own
	if !u.dev || u.partial {
		return
	}
	w := diag.Warning{Message: fmt.Sprintf(format, args...), Position: u.Locate(n)}
	u.warnings = append(u.warnings, w)
	if u.c.opts.Warnings != nil {
		u.c.opts.Warnings(w)
	}
}

// runtimeName returns runtime export expression refers to.
func (u *unit) runtimeName(e js.IExpr) (string, bool) {
	name, ok := source.Name(e)
	if !ok {
		return "", false
	}
	exp, ok := u.runtime[name]
	return exp, ok
}

// helper returns reference to runtime helper, scheduling its import when
// module does not import it already.
func (u *unit) helper(name string) *js.Var {
	for _, local := range slices.Sorted(maps.Keys(u.runtime)) {
		if u.runtime[local] == name {
			return source.Ident(local)
		}
	}
	u.helpers[name] = true
	return source.Ident(name)
}

// load returns record of the module binding was imported from, merging its
// rules into this module on first use.
func (u *unit) load(b *importBinding, at js.INode) (*resolve.Record, error) {
	if b.path == "" {
		return nil, u.fail(diag.KindUnresolved, at, "%q imported from %q cannot be resolved at compile time", b.local, b.spec)
	}
	if err := u.ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := u.c.cache.Get(b.path, u.chain, u.c.extractor(u.ctx))
	if err != nil {
		return nil, diag.At(err, u.Locate(at))
	}
	if !u.merged[b.path] {
		u.merged[b.path] = true
		u.external = append(u.external, rec.Rules...)
		u.deps[b.path] = true
		u.sideEffects[b.path] = len(rec.Rules) > 0
		u.log.Debug("Import resolved", zap.String("import", b.path), zap.Int("rules", len(rec.Rules)))
		for _, d := range rec.Dependencies {
			u.deps[d] = true
		}
	}
	b.consumed = true
	return rec, nil
}

// imported returns binding of relative import with given local name.
func (u *unit) imported(name string) (*importBinding, bool) {
	b, ok := u.imports[name]
	if !ok || b.runtime || b.path == "" {
		return nil, false
	}
	return b, true
}

func (u *unit) enter(*js.BlockStmt) func() {
	u.frames = append(u.frames, make(map[string]any))
	return func() {
		u.frames = u.frames[:len(u.frames)-1]
	}
}

func (u *unit) declare(kind js.TokenType, name string, init js.IExpr) {
	u.names[source.Unwrap(init)] = name
	if kind != js.ConstToken {
		return
	}
	if len(u.frames) == 0 {
		if _, ok := u.consts.Values[name]; ok {
			return
		}
	}
	v, err := resolve.Static(init, u.lookup)
	u.lookupErr = nil
	if err != nil {
		return
	}
	if len(u.frames) == 0 {
		u.consts.Values[name] = v
		return
	}
	u.frames[len(u.frames)-1][name] = v
}

// lookup resolves identifier to compile time constant.
func (u *unit) lookup(name string) (any, bool) {
	for i := len(u.frames) - 1; i >= 0; i-- {
		if v, ok := u.frames[i][name]; ok {
			return v, true
		}
	}
	if v, ok := u.consts.Values[name]; ok {
		return v, true
	}
	b, ok := u.imported(name)
	if !ok {
		return nil, false
	}
	rec, err := u.load(b, nil)
	if err != nil {
		u.lookupErr = err
		return nil, false
	}
	if b.imported == "*" {
		return maps.Clone(rec.Constants), true
	}
	v, ok := rec.Constants[b.imported]
	return v, ok
}

// static computes compile time value of expression.
func (u *unit) static(e js.IExpr) (any, error) {
	u.lookupErr = nil
	v, err := resolve.Static(e, u.lookup)
	if u.lookupErr != nil {
		err, u.lookupErr = u.lookupErr, nil
		return nil, err
	}
	if errors.Is(err, resolve.ErrNotStatic) {
		return nil, u.fail(diag.KindUnresolved, e, "%s cannot be evaluated at compile time", source.JS(e))
	}
	if err != nil {
		return nil, diag.At(err, u.Locate(e))
	}
	return v, nil
}

// record collects exported compile time symbols.
func (u *unit) record() *resolve.Record {
	rec := resolve.NewRecord(u.path)
	for exported, local := range u.consts.Exports {
		if v, ok := u.classes[local]; ok {
			rec.Classes[exported] = v
		}
		if v, ok := u.components[local]; ok {
			rec.Components[exported] = v
		}
		if v, ok := u.keyframes[local]; ok {
			rec.Keyframes[exported] = v
		}
		if v, ok := u.themes[local]; ok {
			rec.Themes[exported] = v
		}
		if v, ok := u.dynColors[local]; ok {
			rec.DynamicColors[exported] = v
		}
		if v, ok := u.functions[local]; ok {
			rec.Functions[exported] = v
		}
		if v, ok := u.consts.Values[local]; ok {
			rec.Constants[exported] = v
		}
	}
	rec.Rules = append(slices.Clip(u.external), u.rules...)
	rec.Dependencies = slices.Sorted(maps.Keys(u.deps))
	return rec
}
