package compiler

import (
	"maps"
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"vindur/css"
	"vindur/diag"
	"vindur/resolve"
	"vindur/source"
)

// elementFactories are functions elements are created with after markup
// transformation.
var elementFactories = map[string]bool{
	"jsx":           true,
	"jsxs":          true,
	"jsxDEV":        true,
	"_jsx":          true,
	"_jsxs":         true,
	"_jsxDEV":       true,
	"createElement": true,
}

func isElementCall(n *js.CallExpr) bool {
	if len(n.Args.List) < 2 {
		return false
	}
	switch x := source.Unwrap(n.X).(type) {
	case *js.Var:
		return elementFactories[string(x.Name())]
	case *js.DotExpr:
		return source.MemberName(x) == "createElement"
	}
	return false
}

// elementProps compiles css, cx and style props of element creation call
// and merges produced classes into className.
func (u *unit) elementProps(n *js.CallExpr) error {
	obj, ok := source.Unwrap(n.Args.List[1].Value).(*js.ObjectExpr)
	if !ok {
		return nil
	}
	comp, isComp, err := u.elementComponent(n.Args.List[0].Value)
	if err != nil {
		return err
	}

	var (
		cssClasses js.IExpr
		cx         js.IExpr
		className  js.IExpr
		at         = -1
		touched    bool
		kept       = make([]js.Property, 0, len(obj.List))
	)
	for _, p := range obj.List {
		key, ok := "", false
		if !p.Spread && p.Name != nil {
			key, ok = source.PropertyKey(p.Name)
		}
		if !ok {
			kept = append(kept, p)
			continue
		}
		switch key {
		case "css":
			classes, err := u.cssProp(p.Value)
			if err != nil {
				return err
			}
			if classes != "" {
				cssClasses = source.String(classes)
			}
			touched = true
			continue
		case "cx":
			if cx, err = u.cxProp(p.Value, comp, isComp); err != nil {
				return err
			}
			touched = true
			continue
		case "className":
			className, at = p.Value, len(kept)
		case "style":
			u.styleProp(p.Value)
		}
		kept = append(kept, p)
	}
	if !touched {
		return nil
	}
	u.constructs[ConstructElementProps]++

	var parts []js.IExpr
	for _, e := range []js.IExpr{cssClasses, cx, className} {
		if e != nil {
			parts = append(parts, e)
		}
	}
	if len(parts) > 0 {
		value := parts[0]
		if _, static := source.Literal(value); len(parts) > 1 || !static {
			value = source.Call(u.helper("cx"), parts...)
		}
		prop := source.Property("className", value)
		if at >= 0 {
			kept[at] = prop
		} else {
			kept = append(kept, prop)
		}
	}
	obj.List = kept
	return nil
}

// elementComponent returns styled component element is created for.
func (u *unit) elementComponent(e js.IExpr) (resolve.Component, bool, error) {
	name, ok := source.Name(e)
	if !ok {
		return resolve.Component{}, false, nil
	}
	if c, ok := u.components[name]; ok {
		return c, true, nil
	}
	b, ok := u.imported(name)
	if !ok || b.imported == "*" {
		return resolve.Component{}, false, nil
	}
	rec, err := u.load(b, e)
	if err != nil {
		return resolve.Component{}, false, err
	}
	c, ok := rec.Components[b.imported]
	return c, ok, nil
}

// cssProp compiles css prop into class list.
func (u *unit) cssProp(v js.IExpr) (string, error) {
	if tpl, ok := source.Unwrap(v).(*js.TemplateExpr); ok {
		if tpl.Tag == nil {
			return u.class("", tpl)
		}
		if exp, ok := u.runtimeName(tpl.Tag); ok && exp == "css" {
			return u.class("", tpl)
		}
	}
	r, err := u.interpolate(v, true)
	if err != nil {
		return "", err
	}
	ext, ok := r.(extension)
	if !ok {
		return "", u.fail(diag.KindArgument, v, "css prop must be a template literal or a css class")
	}
	return strings.Join(ext.classes, " "), nil
}

// cxProp maps style flag names of cx object keys to their classes.
func (u *unit) cxProp(v js.IExpr, comp resolve.Component, isComp bool) (js.IExpr, error) {
	obj, ok := source.Unwrap(v).(*js.ObjectExpr)
	if !ok {
		return nil, u.fail(diag.KindUnsupported, v, "cx prop must be an object literal")
	}
	names := make(map[string]string)
	for _, f := range comp.Flags {
		maps.Copy(names, f.Selectors())
	}
	for i := range obj.List {
		p := &obj.List[i]
		if p.Spread || p.Name == nil {
			continue
		}
		key, ok := source.PropertyKey(p.Name)
		if !ok {
			continue
		}
		cls, ok := names[key]
		if !ok {
			if isComp {
				u.warn(p.Value, "%q is not a style flag of the component, used as a plain class", key)
			}
			continue
		}
		if p.Value == nil {
			p.Value = source.Ident(key)
		}
		p.Name = source.Property(cls, nil).Name
	}
	return obj, nil
}

// styleProp renames scoped variables set through style prop.
func (u *unit) styleProp(v js.IExpr) {
	obj, ok := source.Unwrap(v).(*js.ObjectExpr)
	if !ok {
		return
	}
	for i := range obj.List {
		p := &obj.List[i]
		if p.Spread || p.Name == nil {
			continue
		}
		key, ok := source.PropertyKey(p.Name)
		if !ok || !css.IsScoped(key) {
			continue
		}
		p.Name = source.Property(u.scoped.Name(key), nil).Name
	}
}
