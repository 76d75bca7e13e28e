package compiler

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"vindur/diag"
	"vindur/quasi"
	"vindur/resolve"
	"vindur/source"
)

// resolution is outcome of resolving a single template hole.
type resolution interface {
	text() string
}

type (
	// literal is plain text.
	literal string
	// symbol is generated name or selector.
	symbol string
	// extension merges classes into the construct instead of producing text.
	extension struct{ classes []string }
	// forward is reference to component declared later in the module, index
	// into unit forwards.
	forward int
)

func (l literal) text() string  { return string(l) }
func (s symbol) text() string   { return string(s) }
func (extension) text() string  { return "" }
func (f forward) text() string  { return forwardPrefix + strconv.Itoa(int(f)) + forwardSuffix }

// template resolves every hole of style template. It returns CSS text and
// classes of extensions found in statement position.
func (u *unit) template(n *js.TemplateExpr) (string, []string, error) {
	var (
		b   strings.Builder
		ext []string
	)
	for i, part := range n.List {
		b.WriteString(source.TemplateRaw(part.Value))
		next := n.Tail
		if i+1 < len(n.List) {
			next = n.List[i+1].Value
		}
		stmt := statementStart(b.String()) &&
			strings.HasPrefix(strings.TrimLeft(source.TemplateRaw(next), " \t\r\n"), ";")
		r, err := u.interpolate(part.Expr, stmt)
		if err != nil {
			return "", nil, err
		}
		if x, ok := r.(extension); ok {
			ext = append(ext, x.classes...)
			continue
		}
		b.WriteString(r.text())
	}
	b.WriteString(source.TemplateRaw(n.Tail))
	return b.String(), ext, nil
}

func statementStart(text string) bool {
	t := strings.TrimRight(text, " \t\r\n")
	return t == "" || strings.HasSuffix(t, "{") || strings.HasSuffix(t, ";") || strings.HasSuffix(t, "}")
}

// interpolate resolves expression of a template hole. Statement is set when
// hole stands alone as a declaration, where classes become extensions.
func (u *unit) interpolate(e js.IExpr, stmt bool) (resolution, error) {
	if v, ok := source.Literal(e); ok {
		return literal(source.Stringify(v)), nil
	}
	switch n := source.Unwrap(e).(type) {
	case *js.Var:
		return u.identifier(n, stmt)
	case *js.ArrowFunc:
		return u.forwardRef(n)
	case *js.TemplateExpr:
		if n.Tag != nil {
			if exp, ok := u.runtimeName(n.Tag); ok && exp == "css" {
				eff, err := u.class("", n)
				if err != nil {
					return nil, err
				}
				return u.classRef(n, "css class", eff, stmt)
			}
			return nil, u.fail(diag.KindUnsupported, n, "tagged template %s cannot be interpolated", source.JS(n.Tag))
		}
		text, ext, err := u.template(n)
		if err != nil {
			return nil, err
		}
		if len(ext) > 0 {
			return nil, u.fail(diag.KindStructural, n, "style extension inside nested template")
		}
		return literal(text), nil
	case *js.CallExpr:
		return u.callValue(n)
	case *js.DotExpr, *js.IndexExpr:
		return u.member(n, stmt)
	case *js.BinaryExpr, *js.UnaryExpr:
		v, err := u.static(n)
		if err != nil {
			return nil, err
		}
		return u.value(n, source.JS(n), v)
	}
	return nil, u.fail(diag.KindUnresolved, e, "unsupported interpolation %s", source.JS(e))
}

// classRef refers to css class list eff, either as selector or extension.
func (u *unit) classRef(at js.INode, name, eff string, stmt bool) (resolution, error) {
	classes := strings.Fields(eff)
	if stmt {
		return extension{classes: classes}, nil
	}
	if len(classes) == 0 {
		return nil, u.fail(diag.KindStructural, at, "%s has no styles and cannot be used as a selector", name)
	}
	return symbol("." + strings.Join(classes, ".")), nil
}

func (u *unit) componentRef(c resolve.Component, stmt bool) resolution {
	if stmt {
		return extension{classes: strings.Fields(c.Classes)}
	}
	return symbol("." + c.Class)
}

func (u *unit) value(at js.INode, name string, v any) (resolution, error) {
	switch v.(type) {
	case map[string]any:
		return nil, u.fail(diag.KindArgument, at, "object %s cannot be interpolated", name)
	}
	return literal(source.Stringify(v)), nil
}

func (u *unit) identifier(v *js.Var, stmt bool) (resolution, error) {
	name := string(v.Name())
	if c, ok := u.components[name]; ok {
		return u.componentRef(c, stmt), nil
	}
	if eff, ok := u.classes[name]; ok {
		return u.classRef(v, name, eff, stmt)
	}
	if anim, ok := u.keyframes[name]; ok {
		return symbol(anim), nil
	}
	if b, ok := u.imported(name); ok {
		rec, err := u.load(b, v)
		if err != nil {
			return nil, err
		}
		if b.imported == "*" {
			return nil, u.fail(diag.KindStructural, v, "namespace %q must be accessed through its members", name)
		}
		return u.exported(v, rec, b.imported, stmt)
	}
	if id, ok := u.dynColors[name]; ok {
		return symbol("var(--" + id + ")"), nil
	}
	if _, ok := u.themes[name]; ok {
		return nil, u.fail(diag.KindStructural, v, "theme colors %q must be accessed through a color name", name)
	}
	if _, ok := u.functions[name]; ok {
		return nil, u.fail(diag.KindArgument, v, "style function %q must be called", name)
	}
	if b, ok := u.imports[name]; ok {
		return nil, u.fail(diag.KindUnresolved, v, "%q imported from %q cannot be resolved at compile time", name, b.spec)
	}
	if val, ok := u.lookup(name); ok {
		return u.value(v, name, val)
	}
	return nil, u.fail(diag.KindUnresolved, v, "unresolved reference %q", name)
}

// exported resolves symbol exported by another module.
func (u *unit) exported(at js.INode, rec *resolve.Record, name string, stmt bool) (resolution, error) {
	if c, ok := rec.Components[name]; ok {
		return u.componentRef(c, stmt), nil
	}
	if eff, ok := rec.Classes[name]; ok {
		return u.classRef(at, name, eff, stmt)
	}
	if anim, ok := rec.Keyframes[name]; ok {
		return symbol(anim), nil
	}
	if id, ok := rec.DynamicColors[name]; ok {
		return symbol("var(--" + id + ")"), nil
	}
	if v, ok := rec.Constants[name]; ok {
		return u.value(at, name, v)
	}
	if _, ok := rec.Themes[name]; ok {
		return nil, u.fail(diag.KindStructural, at, "theme colors %q must be accessed through a color name", name)
	}
	if _, ok := rec.Functions[name]; ok {
		return nil, u.fail(diag.KindArgument, at, "style function %q must be called", name)
	}
	return nil, u.fail(diag.KindUnresolved, at, "module %q has no compile time export %q", rec.Path, name)
}

// forwardRef handles `() => Component` references.
func (u *unit) forwardRef(n *js.ArrowFunc) (resolution, error) {
	if n.Async || len(n.Params.List) > 0 || n.Params.Rest != nil || len(n.Body.List) != 1 {
		return nil, u.fail(diag.KindUnsupported, n, "only `() => Component` functions can be interpolated")
	}
	ret, ok := n.Body.List[0].(*js.ReturnStmt)
	if !ok {
		return nil, u.fail(diag.KindUnsupported, n, "only `() => Component` functions can be interpolated")
	}
	name, ok := source.Name(ret.Value)
	if !ok {
		return nil, u.fail(diag.KindUnsupported, n, "only `() => Component` functions can be interpolated")
	}
	if c, ok := u.components[name]; ok {
		return symbol("." + c.Class), nil
	}
	if b, ok := u.imported(name); ok && b.imported != "*" {
		rec, err := u.load(b, ret.Value)
		if err != nil {
			return nil, err
		}
		if c, ok := rec.Components[b.imported]; ok {
			return symbol("." + c.Class), nil
		}
		return nil, u.fail(diag.KindUnresolved, ret.Value, "%q imported from %q is not a component", name, b.spec)
	}
	u.forwards = append(u.forwards, name)
	return forward(len(u.forwards) - 1), nil
}

func (u *unit) callValue(n *js.CallExpr) (resolution, error) {
	switch x := source.Unwrap(n.X).(type) {
	case *js.Var:
		name := string(x.Name())
		if f, ok := u.functions[name]; ok {
			return u.callFunction(n, f)
		}
		if b, ok := u.imported(name); ok && b.imported != "*" {
			rec, err := u.load(b, x)
			if err != nil {
				return nil, err
			}
			f, ok := rec.Functions[b.imported]
			if !ok {
				return nil, u.fail(diag.KindUnresolved, x, "%q imported from %q is not a style function", name, b.spec)
			}
			return u.callFunction(n, f)
		}
		return nil, u.fail(diag.KindUnresolved, x, "style function %q is not defined", name)
	case *js.DotExpr:
		return u.memberCall(n, x)
	}
	return nil, u.fail(diag.KindUnsupported, n, "call %s cannot be evaluated at compile time", source.JS(n.X))
}

func (u *unit) callFunction(n *js.CallExpr, f *quasi.Function) (resolution, error) {
	args := make([]any, 0, len(n.Args.List))
	for _, a := range n.Args.List {
		if a.Rest {
			return nil, u.fail(diag.KindUnsupported, a.Value, "spread arguments of style function %q", f.Name)
		}
		v, err := u.static(a.Value)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	out, err := f.Call(args...)
	if err != nil {
		return nil, diag.At(err, u.Locate(n))
	}
	return literal(out), nil
}

// chain flattens member access into root identifier and property names.
func chain(e js.IExpr) (*js.Var, []string, bool) {
	switch x := source.Unwrap(e).(type) {
	case *js.Var:
		return x, nil, true
	case *js.DotExpr:
		root, props, ok := chain(x.X)
		return root, append(props, source.MemberName(x)), ok
	case *js.IndexExpr:
		v, _ := source.Literal(x.Y)
		key, ok := v.(string)
		if !ok {
			return nil, nil, false
		}
		root, props, ok := chain(x.X)
		return root, append(props, key), ok
	}
	return nil, nil, false
}

func (u *unit) member(e js.IExpr, stmt bool) (resolution, error) {
	if root, props, ok := chain(e); ok {
		name := string(root.Name())
		if b, ok := u.imported(name); ok && b.imported == "*" && len(props) == 1 {
			rec, err := u.load(b, root)
			if err != nil {
				return nil, err
			}
			if rec.Has(props[0]) {
				return u.exported(e, rec, props[0], stmt)
			}
		}
		h, rest, ok, err := u.colorHandle(root, props)
		if err != nil {
			return nil, err
		}
		if ok {
			return u.colorProperty(e, h, rest)
		}
	}
	v, err := u.static(e)
	if err != nil {
		return nil, err
	}
	return u.value(e, source.JS(e), v)
}

func (u *unit) memberCall(n *js.CallExpr, callee *js.DotExpr) (resolution, error) {
	root, props, ok := chain(callee)
	if !ok {
		return nil, u.fail(diag.KindUnsupported, n, "call %s cannot be evaluated at compile time", source.JS(callee))
	}
	name := string(root.Name())
	if b, ok := u.imported(name); ok && b.imported == "*" && len(props) == 1 {
		rec, err := u.load(b, root)
		if err != nil {
			return nil, err
		}
		if f, ok := rec.Functions[props[0]]; ok {
			return u.callFunction(n, f)
		}
	}
	h, rest, ok, err := u.colorHandle(root, props)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, u.fail(diag.KindUnsupported, n, "call %s cannot be evaluated at compile time", source.JS(callee))
	}
	return u.colorCall(n, h, rest)
}
