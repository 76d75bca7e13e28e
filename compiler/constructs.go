package compiler

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"vindur/color"
	"vindur/css"
	"vindur/diag"
	"vindur/quasi"
	"vindur/resolve"
	"vindur/source"
)

// styledTarget is what a styled template applies to.
type styledTarget struct {
	// tag of styled element, empty when styling a component.
	tag   string
	base  js.IExpr
	flags js.IExpr
}

// run visits module in source order compiling every construct it meets.
func (u *unit) run() error {
	if err := u.ctx.Err(); err != nil {
		return err
	}
	w := &source.Rewriter{Expr: u.visit, Scope: u.enter, Decl: u.declare}

	kept := make([]js.IStmt, 0, len(u.m.AST.List))
	for _, stmt := range u.m.AST.List {
		if es, ok := stmt.(*js.ExprStmt); ok {
			removed, err := u.statement(es)
			if err != nil {
				return err
			}
			if removed {
				continue
			}
		}
		w.Stmt(stmt)
		if u.err != nil {
			return u.err
		}
		kept = append(kept, stmt)
	}
	u.m.AST.List = kept

	if u.layer != nil {
		u.warn(nil, "layer %q is not followed by any style", *u.layer)
	}
	return nil
}

// statement handles constructs which are only allowed as top level
// statements and are removed from the module.
func (u *unit) statement(es *js.ExprStmt) (bool, error) {
	switch n := source.Unwrap(es.Value).(type) {
	case *js.CallExpr:
		if exp, ok := u.runtimeName(n.X); !ok || exp != "layer" {
			return false, nil
		}
		if len(n.Args.List) != 1 {
			return false, u.fail(diag.KindArgument, n, "layer expects a single name argument, got %d", len(n.Args.List))
		}
		v, _ := source.Literal(n.Args.List[0].Value)
		name, ok := v.(string)
		if !ok || name == "" {
			return false, u.fail(diag.KindArgument, n, "layer name must be a non empty string literal")
		}
		u.constructs[ConstructLayer]++
		u.layer = &name
		return true, nil
	case *js.TemplateExpr:
		if exp, ok := u.runtimeName(n.Tag); !ok || exp != "createGlobalStyle" {
			return false, nil
		}
		return true, u.global(n)
	}
	return false, nil
}

func (u *unit) visit(e js.IExpr) (js.IExpr, bool) {
	if u.err != nil {
		return e, false
	}
	out, descend, err := u.construct(e)
	if err != nil {
		u.err = err
		return e, false
	}
	return out, descend
}

func (u *unit) construct(e js.IExpr) (js.IExpr, bool, error) {
	switch n := e.(type) {
	case *js.TemplateExpr:
		if n.Tag != nil {
			return u.taggedTemplate(n)
		}
	case *js.CallExpr:
		return u.call(n)
	}
	return e, true, nil
}

func (u *unit) taggedTemplate(n *js.TemplateExpr) (js.IExpr, bool, error) {
	name := u.names[n]
	if exp, ok := u.runtimeName(n.Tag); ok {
		switch exp {
		case "css":
			eff, err := u.class(name, n)
			if err != nil {
				return nil, false, err
			}
			return source.String(eff), false, nil
		case "keyframes":
			return u.keyframesRule(name, n)
		case "createGlobalStyle":
			return nil, false, u.fail(diag.KindStructural, n, "createGlobalStyle must be used as a top level statement")
		}
		return n, true, nil
	}
	t, ok, err := u.styledTarget(n.Tag)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return n, true, nil
	}
	return u.styled(name, n, t)
}

func (u *unit) styledTarget(tag js.IExpr) (*styledTarget, bool, error) {
	switch x := source.Unwrap(tag).(type) {
	case *js.DotExpr:
		if exp, ok := u.runtimeName(x.X); ok && exp == "styled" {
			return &styledTarget{tag: source.MemberName(x)}, true, nil
		}
	case *js.CallExpr:
		if exp, ok := u.runtimeName(x.X); ok && exp == "styled" {
			if len(x.Args.List) != 1 {
				return nil, false, u.fail(diag.KindArgument, x, "styled() expects a single component argument, got %d", len(x.Args.List))
			}
			return &styledTarget{base: x.Args.List[0].Value}, true, nil
		}
		d, ok := source.Unwrap(x.X).(*js.DotExpr)
		if !ok || source.MemberName(d) != "withStyleFlags" {
			return nil, false, nil
		}
		t, ok, err := u.styledTarget(d.X)
		if !ok || err != nil {
			return nil, false, err
		}
		if t.flags != nil {
			return nil, false, u.fail(diag.KindStructural, x, "style flags are declared twice")
		}
		if len(x.Args.List) != 1 {
			return nil, false, u.fail(diag.KindArgument, x, "withStyleFlags expects a single object argument, got %d", len(x.Args.List))
		}
		t.flags = x.Args.List[0].Value
		return t, true, nil
	}
	return nil, false, nil
}

// class compiles css template returning effective class list.
func (u *unit) class(name string, n *js.TemplateExpr) (string, error) {
	u.constructs[ConstructCss]++
	cls := u.seq.Next(name)
	// taken before holes are resolved, nested constructs must not claim it
	layer := u.takeLayer()
	text, ext, err := u.template(n)
	if err != nil {
		return "", err
	}
	classes := ext
	if body := u.body(text); body != "" {
		u.addRule(n, css.ClassRule(cls, body), layer)
		classes = append(classes, cls)
	}
	eff := strings.Join(classList(classes), " ")
	if name != "" {
		u.classes[name] = eff
	}
	return eff, nil
}

func (u *unit) keyframesRule(name string, n *js.TemplateExpr) (js.IExpr, bool, error) {
	u.constructs[ConstructKeyframes]++
	anim := u.seq.Next(name)
	text, ext, err := u.detached(n)
	if err != nil {
		return nil, false, err
	}
	if len(ext) > 0 {
		return nil, false, u.fail(diag.KindStructural, n, "style extension inside keyframes")
	}
	if body := u.body(text); body != "" {
		u.addRule(n, css.KeyframesRule(anim, body), "")
	}
	if name != "" {
		u.keyframes[name] = anim
	}
	return source.String(anim), false, nil
}

func (u *unit) global(n *js.TemplateExpr) error {
	u.constructs[ConstructGlobalStyle]++
	text, ext, err := u.detached(n)
	if err != nil {
		return err
	}
	if len(ext) > 0 {
		return u.fail(diag.KindStructural, n, "style extension inside global style")
	}
	if body := u.body(text); body != "" {
		u.addRule(n, body, "")
	}
	return nil
}

func (u *unit) styled(name string, n *js.TemplateExpr, t *styledTarget) (js.IExpr, bool, error) {
	var (
		base   resolve.Component
		custom bool
	)
	if t.base != nil {
		u.constructs[ConstructStyledExtension]++
		c, ok, err := u.extendable(t.base)
		if err != nil {
			return nil, false, err
		}
		base, custom = c, !ok || c.Tag == ""
	} else {
		u.constructs[ConstructStyled]++
	}

	cls := u.seq.Next(name)
	layer := u.takeLayer()
	flags, err := u.styleFlags(cls, t.flags)
	if err != nil {
		return nil, false, err
	}
	text, ext, err := u.template(n)
	if err != nil {
		return nil, false, err
	}
	body := u.body(text)
	if len(flags) > 0 {
		var found map[string]bool
		body, found = css.RewriteFlagSelectors(body, flags)
		for _, f := range flags {
			for _, sel := range slices.Sorted(maps.Keys(f.Selectors())) {
				if !found[sel] {
					u.warn(n, "style flag %q of %s is not used in its styles", sel, display(name))
				}
			}
		}
	}
	if body != "" {
		u.addRule(n, css.ClassRule(cls, body), layer)
	}

	tag := t.tag
	var inherited []string
	if !custom && t.base != nil {
		tag = base.Tag
		inherited = strings.Fields(base.Classes)
		flags = append(slices.Clone(base.Flags), flags...)
	}
	comp := resolve.Component{
		Class:   cls,
		Classes: strings.Join(classList(inherited, ext, []string{cls}), " "),
		Tag:     tag,
		Flags:   flags,
	}
	if name != "" {
		u.components[name] = comp
	}

	var target js.IExpr = source.String(tag)
	if custom {
		target = t.base
	}
	switch {
	case len(flags) > 0:
		pairs := make([]js.IExpr, 0, len(flags))
		for _, f := range flags {
			pairs = append(pairs, source.Array(source.String(f.Prop), source.String(f.Class)))
		}
		return source.Call(u.helper("_vCWM"), source.Array(pairs...), source.String(comp.Classes), target), false, nil
	case custom:
		return source.Call(u.helper("_vCWSC"), target, source.String(comp.Classes)), false, nil
	}
	return source.Call(u.helper("_vSC"), target, source.String(comp.Classes)), false, nil
}

func display(name string) string {
	if name == "" {
		return "anonymous component"
	}
	return name
}

// extendable checks what styled() is applied to. It returns the component
// when base is a known styled component, false for custom components and
// error for compile time values which are not components.
func (u *unit) extendable(base js.IExpr) (resolve.Component, bool, error) {
	name, ok := source.Name(base)
	if !ok {
		return resolve.Component{}, false, nil
	}
	if c, ok := u.components[name]; ok {
		return c, true, nil
	}
	what := ""
	switch {
	case hasKey(u.classes, name):
		what = "css class"
	case hasKey(u.keyframes, name):
		what = "keyframes"
	case hasKey(u.themes, name):
		what = "theme colors"
	case hasKey(u.dynColors, name):
		what = "dynamic color"
	case hasKey(u.functions, name):
		what = "style function"
	case hasKey(u.consts.Values, name):
		what = "constant"
	}
	if what != "" {
		return resolve.Component{}, false, u.fail(diag.KindStructural, base, "styled() can only extend components, %q is a %s", name, what)
	}
	b, ok := u.imported(name)
	if !ok || b.imported == "*" {
		return resolve.Component{}, false, nil
	}
	rec, err := u.load(b, base)
	if err != nil {
		return resolve.Component{}, false, err
	}
	if c, ok := rec.Components[b.imported]; ok {
		return c, true, nil
	}
	if rec.Has(b.imported) {
		return resolve.Component{}, false, u.fail(diag.KindStructural, base, "styled() can only extend components, %q imported from %q is not a component", name, b.spec)
	}
	return resolve.Component{}, false, nil
}

func hasKey[V any](m map[string]V, key string) bool {
	_, ok := m[key]
	return ok
}

// styleFlags builds flags declared by withStyleFlags object.
func (u *unit) styleFlags(cls string, arg js.IExpr) ([]css.Flag, error) {
	if arg == nil {
		return nil, nil
	}
	obj, ok := source.Unwrap(arg).(*js.ObjectExpr)
	if !ok {
		return nil, u.fail(diag.KindArgument, arg, "withStyleFlags expects an object literal")
	}
	flags := make([]css.Flag, 0, len(obj.List))
	for i, p := range obj.List {
		key, ok := "", false
		if !p.Spread {
			key, ok = source.PropertyKey(p.Name)
		}
		if !ok {
			return nil, u.fail(diag.KindArgument, arg, "style flag names must be static")
		}
		v, err := u.static(p.Value)
		if err != nil {
			return nil, err
		}
		f := css.Flag{Prop: key, Class: cls + "-f" + strconv.Itoa(i+1)}
		if u.dev {
			f.Class = cls + "-" + key
		}
		switch x := v.(type) {
		case bool:
			if !x {
				return nil, u.fail(diag.KindArgument, p.Value, "boolean style flag %q must be declared as true", key)
			}
		case []any:
			if len(x) == 0 {
				return nil, u.fail(diag.KindArgument, p.Value, "style flag %q has no values", key)
			}
			for _, item := range x {
				s, ok := item.(string)
				if !ok || s == "" {
					return nil, u.fail(diag.KindArgument, p.Value, "values of style flag %q must be non empty strings", key)
				}
				f.Values = append(f.Values, s)
			}
		default:
			return nil, u.fail(diag.KindArgument, p.Value, "style flag %q must be true or an array of strings", key)
		}
		flags = append(flags, f)
	}
	return flags, nil
}

func (u *unit) call(n *js.CallExpr) (js.IExpr, bool, error) {
	exp, ok := u.runtimeName(n.X)
	if !ok {
		if isElementCall(n) {
			if err := u.elementProps(n); err != nil {
				return nil, false, err
			}
		}
		return n, true, nil
	}
	name := u.names[n]
	switch exp {
	case "vindurFn":
		return u.styleFunction(name, n)
	case "createStaticThemeColors":
		return u.themeColors(name, n)
	case "createDynamicCssColor":
		if len(n.Args.List) != 0 {
			return nil, false, u.fail(diag.KindArgument, n, "createDynamicCssColor takes no arguments")
		}
		u.constructs[ConstructDynamicColor]++
		id := u.seq.Next(name)
		if name != "" {
			u.dynColors[name] = id
		}
		return source.Call(u.helper("_vDC"), source.String(id)), false, nil
	case "stableId":
		u.constructs[ConstructStableId]++
		return source.String(u.seq.Next(name)), false, nil
	case "layer":
		return nil, false, u.fail(diag.KindStructural, n, "layer must be used as a top level statement")
	}
	return n, true, nil
}

func (u *unit) styleFunction(name string, n *js.CallExpr) (js.IExpr, bool, error) {
	if len(n.Args.List) != 1 {
		return nil, false, u.fail(diag.KindArgument, n, "vindurFn expects a single function argument, got %d", len(n.Args.List))
	}
	if name == "" {
		return nil, false, u.fail(diag.KindStructural, n, "style function must be assigned to a constant")
	}
	u.constructs[ConstructStyleFunction]++
	fn := n.Args.List[0].Value
	f, err := quasi.Compile(name, fn, u)
	if err != nil {
		return nil, false, err
	}
	u.functions[name] = f
	return fn, false, nil
}

func (u *unit) themeColors(name string, n *js.CallExpr) (js.IExpr, bool, error) {
	if len(n.Args.List) != 1 {
		return nil, false, u.fail(diag.KindArgument, n, "createStaticThemeColors expects a single object argument")
	}
	arg := n.Args.List[0].Value
	obj, ok := source.Unwrap(arg).(*js.ObjectExpr)
	if !ok {
		return nil, false, u.fail(diag.KindArgument, arg, "createStaticThemeColors expects an object literal")
	}
	u.constructs[ConstructThemeColors]++
	p := color.NewPalette()
	for _, prop := range obj.List {
		key, ok := "", false
		if !prop.Spread {
			key, ok = source.PropertyKey(prop.Name)
		}
		if !ok {
			return nil, false, u.fail(diag.KindArgument, arg, "theme color names must be static")
		}
		v, _ := source.Literal(prop.Value)
		hex, ok := v.(string)
		if !ok {
			return nil, false, u.fail(diag.KindArgument, prop.Value, "theme color %q must be a string literal", key)
		}
		if err := p.Add(key, hex); err != nil {
			return nil, false, diag.At(err, u.Locate(prop.Value))
		}
	}
	if name != "" {
		u.themes[name] = p
	}
	return source.Call(u.helper("_vSTC"), arg), false, nil
}
