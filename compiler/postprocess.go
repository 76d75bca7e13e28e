package compiler

import (
	"maps"
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"vindur/source"
)

// compileTime are runtime exports which only exist at compile time, their
// imports are dropped once nothing references them.
var compileTime = map[string]bool{
	"css":                     true,
	"styled":                  true,
	"keyframes":               true,
	"createGlobalStyle":       true,
	"layer":                   true,
	"vindurFn":                true,
	"createStaticThemeColors": true,
	"createDynamicCssColor":   true,
	"stableId":                true,
}

// foldClassCalls replaces class merging calls with static arguments by
// their results. Calls with a single dynamic argument become conditionals.
func (u *unit) foldClassCalls() {
	locals := make(map[string]bool)
	for local, exp := range u.runtime {
		if exp == "cx" {
			locals[local] = true
		}
	}
	if u.helpers["cx"] {
		locals["cx"] = true
	}
	if len(locals) == 0 {
		return
	}
	w := &source.Rewriter{Expr: func(e js.IExpr) (js.IExpr, bool) {
		call, ok := e.(*js.CallExpr)
		if !ok {
			return e, true
		}
		if name, ok := source.Name(call.X); !ok || !locals[name] {
			return e, true
		}
		if folded, ok := foldClasses(call.Args.List); ok {
			return folded, false
		}
		return e, true
	}}
	w.Stmts(u.m.AST.List)
}

// classPart is a single argument of class merging call: static classes or
// a condition selecting between two class lists.
type classPart struct {
	classes []string
	cond    js.IExpr
	yes, no []string
}

func foldClasses(args []js.Arg) (js.IExpr, bool) {
	var (
		parts   []classPart
		dynamic = -1
	)
	for _, a := range args {
		if a.Rest {
			return nil, false
		}
		ps, ok := classParts(a.Value)
		if !ok {
			return nil, false
		}
		for _, p := range ps {
			if p.cond != nil {
				if dynamic >= 0 {
					return nil, false
				}
				dynamic = len(parts)
			}
			parts = append(parts, p)
		}
	}
	if dynamic < 0 {
		var all []string
		for _, p := range parts {
			all = append(all, p.classes...)
		}
		return source.String(strings.Join(all, " ")), true
	}
	var pre, suf []string
	for i, p := range parts {
		switch {
		case i < dynamic:
			pre = append(pre, p.classes...)
		case i > dynamic:
			suf = append(suf, p.classes...)
		}
	}
	d := parts[dynamic]
	join := func(mid []string) js.IExpr {
		return source.String(strings.Join(slices.Concat(pre, mid, suf), " "))
	}
	return source.Cond(d.cond, join(d.yes), join(d.no)), true
}

func classParts(e js.IExpr) ([]classPart, bool) {
	if s, ok := staticClasses(e); ok {
		return []classPart{{classes: s}}, true
	}
	switch n := source.Unwrap(e).(type) {
	case *js.ObjectExpr:
		parts := make([]classPart, 0, len(n.List))
		for _, p := range n.List {
			if p.Spread || p.Name == nil {
				return nil, false
			}
			key, ok := source.PropertyKey(p.Name)
			if !ok {
				return nil, false
			}
			classes := strings.Fields(key)
			if v, ok := source.Literal(p.Value); ok {
				if source.Truthy(v) {
					parts = append(parts, classPart{classes: classes})
				}
				continue
			}
			parts = append(parts, classPart{cond: p.Value, yes: classes})
		}
		return parts, true
	case *js.CondExpr:
		yes, ok := staticClasses(n.X)
		if !ok {
			return nil, false
		}
		no, ok := staticClasses(n.Y)
		if !ok {
			return nil, false
		}
		return []classPart{{cond: n.Cond, yes: yes, no: no}}, true
	case *js.BinaryExpr:
		if n.Op != js.AndToken {
			return nil, false
		}
		yes, ok := staticClasses(n.Y)
		if !ok {
			return nil, false
		}
		return []classPart{{cond: n.X, yes: yes}}, true
	}
	return nil, false
}

// staticClasses returns classes of string literal or nothing for falsy
// literals.
func staticClasses(e js.IExpr) ([]string, bool) {
	switch n := source.Unwrap(e).(type) {
	case *js.LiteralExpr:
		if n.TokenType == js.NullToken {
			return nil, true
		}
	case js.LiteralExpr:
		if n.TokenType == js.NullToken {
			return nil, true
		}
	case *js.Var:
		if string(n.Name()) == "undefined" {
			return nil, true
		}
	}
	v, ok := source.Literal(e)
	if !ok {
		return nil, false
	}
	switch x := v.(type) {
	case string:
		return strings.Fields(x), true
	case bool:
		return nil, !x
	case float64:
		return nil, x == 0
	}
	return nil, false
}

// references counts identifier uses in the module.
func references(list []js.IStmt) map[string]int {
	refs := make(map[string]int)
	w := &source.Rewriter{Expr: func(e js.IExpr) (js.IExpr, bool) {
		if v, ok := e.(*js.Var); ok {
			refs[string(v.Name())]++
		}
		return e, true
	}}
	for _, stmt := range list {
		if exp, ok := stmt.(*js.ExportStmt); ok && exp.Module == nil {
			for _, alias := range exp.List {
				local := alias.Binding
				if alias.Name != nil {
					local = alias.Name
				}
				if local != nil {
					refs[string(local)]++
				}
			}
		}
		w.Stmt(stmt)
	}
	return refs
}

// cleanImports drops import specifiers which were consumed at compile time
// and adds imports of runtime helpers rewritten code uses.
func (u *unit) cleanImports() {
	refs := references(u.m.AST.List)
	unused := func(local string) bool {
		b, ok := u.imports[local]
		if !ok || refs[local] > 0 {
			return false
		}
		if b.runtime {
			return compileTime[b.imported]
		}
		return b.consumed
	}

	// folded calls may leave helpers unused
	helpers := slices.DeleteFunc(slices.Sorted(maps.Keys(u.helpers)), func(h string) bool {
		return refs[h] == 0
	})
	added := false
	kept := make([]js.IStmt, 0, len(u.m.AST.List))
	for _, stmt := range u.m.AST.List {
		imp, ok := stmt.(*js.ImportStmt)
		if !ok {
			kept = append(kept, stmt)
			continue
		}
		spec := source.Unquote(imp.Module)
		runtime := spec == u.c.opts.RuntimeModule
		path := ""
		if b := u.bindingOf(imp); b != nil {
			path = b.path
		}

		bound := imp.Default != nil || len(imp.List) > 0
		namespace := len(imp.List) == 1 && string(imp.List[0].Name) == "*"
		if imp.List != nil {
			imp.List = slices.DeleteFunc(imp.List, func(a js.Alias) bool {
				return a.Binding == nil || unused(string(a.Binding))
			})
		}
		if imp.Default != nil && unused(string(imp.Default)) {
			imp.Default = nil
		}
		if runtime && !namespace && !added {
			for _, h := range helpers {
				imp.List = append(imp.List, js.Alias{Binding: []byte(h)})
			}
			added = true
		}
		if bound && len(imp.List) == 0 && imp.Default == nil {
			if runtime || path == "" || !u.sideEffects[path] {
				continue
			}
			imp.List = nil
		}
		kept = append(kept, stmt)
	}
	if !added && len(helpers) > 0 {
		imp := &js.ImportStmt{Module: []byte(source.Quote(u.c.opts.RuntimeModule))}
		for _, h := range helpers {
			imp.List = append(imp.List, js.Alias{Binding: []byte(h)})
		}
		kept = slices.Insert(kept, 0, js.IStmt(imp))
	}
	u.m.AST.List = kept
}

// bindingOf returns any binding introduced by import statement.
func (u *unit) bindingOf(imp *js.ImportStmt) *importBinding {
	if imp.Default != nil {
		return u.imports[string(imp.Default)]
	}
	for _, a := range imp.List {
		if a.Binding != nil {
			return u.imports[string(a.Binding)]
		}
	}
	return nil
}
