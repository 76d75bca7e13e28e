package resolve

import (
	"errors"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"vindur/diag"
	"vindur/source"
)

// ErrNotStatic is returned for expressions which cannot be computed at
// compile time.
var ErrNotStatic = errors.New("not a static value")

// Lookup resolves identifier to compile time value.
type Lookup func(name string) (any, bool)

// Static computes value of expression built from literals, known
// identifiers, object and array literals, untagged templates, member access
// and arithmetic.
func Static(e js.IExpr, lookup Lookup) (any, error) {
	if v, ok := source.Literal(e); ok {
		return v, nil
	}
	switch n := source.Unwrap(e).(type) {
	case *js.Var:
		if lookup != nil {
			if v, ok := lookup(string(n.Name())); ok {
				return v, nil
			}
		}
		return nil, ErrNotStatic
	case *js.TemplateExpr:
		if n.Tag != nil {
			return nil, ErrNotStatic
		}
		var b strings.Builder
		for _, part := range n.List {
			b.WriteString(source.TemplateCooked(part.Value))
			v, err := Static(part.Expr, lookup)
			if err != nil {
				return nil, err
			}
			b.WriteString(source.Stringify(v))
		}
		b.WriteString(source.TemplateCooked(n.Tail))
		return b.String(), nil
	case *js.ObjectExpr:
		obj := make(map[string]any, len(n.List))
		for _, p := range n.List {
			if p.Spread || p.Name == nil {
				return nil, ErrNotStatic
			}
			key, ok := source.PropertyKey(p.Name)
			if !ok {
				return nil, ErrNotStatic
			}
			v, err := Static(p.Value, lookup)
			if err != nil {
				return nil, err
			}
			obj[key] = v
		}
		return obj, nil
	case *js.ArrayExpr:
		arr := make([]any, 0, len(n.List))
		for _, el := range n.List {
			if el.Spread || el.Value == nil {
				return nil, ErrNotStatic
			}
			v, err := Static(el.Value, lookup)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case *js.DotExpr:
		if n.Optional {
			return nil, ErrNotStatic
		}
		x, err := Static(n.X, lookup)
		if err != nil {
			return nil, err
		}
		return member(x, source.MemberName(n))
	case *js.IndexExpr:
		x, err := Static(n.X, lookup)
		if err != nil {
			return nil, err
		}
		key, err := Static(n.Y, lookup)
		if err != nil {
			return nil, err
		}
		return member(x, source.Stringify(key))
	case *js.UnaryExpr:
		if n.Op != js.NegToken {
			return nil, ErrNotStatic
		}
		x, err := Static(n.X, lookup)
		if err != nil {
			return nil, err
		}
		f, ok := x.(float64)
		if !ok {
			return nil, diag.Errorf(diag.KindArithmetic, "operand %q is not a number", source.Stringify(x))
		}
		return -f, nil
	case *js.BinaryExpr:
		return arithmetic(n, lookup)
	}
	return nil, ErrNotStatic
}

func member(x any, key string) (any, error) {
	switch v := x.(type) {
	case map[string]any:
		if item, ok := v[key]; ok {
			return item, nil
		}
		return nil, diag.Errorf(diag.KindUnresolved, "object has no property %q", key)
	case []any:
		if key == "length" {
			return float64(len(v)), nil
		}
		if f, ok := source.ParseNumber([]byte(key)); ok && f >= 0 && f == math.Trunc(f) && int(f) < len(v) {
			return v[int(f)], nil
		}
		return nil, diag.Errorf(diag.KindUnresolved, "array has no element %q", key)
	case string:
		if key == "length" {
			return float64(len([]rune(v))), nil
		}
	}
	return nil, ErrNotStatic
}

func arithmetic(n *js.BinaryExpr, lookup Lookup) (any, error) {
	switch n.Op {
	case js.AddToken, js.SubToken, js.MulToken, js.DivToken, js.ModToken:
	default:
		return nil, ErrNotStatic
	}
	x, err := Static(n.X, lookup)
	if err != nil {
		return nil, err
	}
	y, err := Static(n.Y, lookup)
	if err != nil {
		return nil, err
	}
	if n.Op == js.AddToken {
		_, xs := x.(string)
		_, ys := y.(string)
		if xs || ys {
			return source.Stringify(x) + source.Stringify(y), nil
		}
	}
	a, ok := x.(float64)
	if !ok {
		return nil, diag.Errorf(diag.KindArithmetic, "operand %q is not a number", source.Stringify(x))
	}
	b, ok := y.(float64)
	if !ok {
		return nil, diag.Errorf(diag.KindArithmetic, "operand %q is not a number", source.Stringify(y))
	}
	switch n.Op {
	case js.AddToken:
		return a + b, nil
	case js.SubToken:
		return a - b, nil
	case js.MulToken:
		return a * b, nil
	case js.DivToken:
		if b == 0 {
			return nil, diag.Errorf(diag.KindArithmetic, "division by zero")
		}
		return a / b, nil
	}
	if b == 0 {
		return nil, diag.Errorf(diag.KindArithmetic, "division by zero")
	}
	return math.Mod(a, b), nil
}

// Constants are top level constant declarations of a module with statically
// known values.
type Constants struct {
	Values map[string]any
	// Exports maps exported name to local name.
	Exports map[string]string
}

// Exported returns values of exported constants by exported name.
func (c Constants) Exported() map[string]any {
	out := make(map[string]any, len(c.Exports))
	for exported, local := range c.Exports {
		if v, ok := c.Values[local]; ok {
			out[exported] = v
		}
	}
	return out
}

// ExtractConstants collects top level constants of the module without
// modifying it. Plain values are collected first, template literals are
// computed in the second pass so they may refer to constants declared later.
func ExtractConstants(m *source.Module) Constants {
	c := Constants{Values: make(map[string]any), Exports: make(map[string]string)}

	var decls []js.BindingElement
	for _, stmt := range m.AST.List {
		switch n := stmt.(type) {
		case *js.VarDecl:
			if n.TokenType == js.ConstToken {
				decls = append(decls, n.List...)
			}
		case *js.ExportStmt:
			if n.Module != nil {
				continue
			}
			if d, ok := n.Decl.(*js.VarDecl); ok && !n.Default {
				if d.TokenType == js.ConstToken {
					decls = append(decls, d.List...)
				}
				for _, el := range d.List {
					if v, ok := el.Binding.(*js.Var); ok {
						c.Exports[string(v.Name())] = string(v.Name())
					}
				}
				continue
			}
			for _, alias := range n.List {
				if alias.Binding == nil {
					continue
				}
				local := alias.Binding
				if alias.Name != nil {
					local = alias.Name
				}
				c.Exports[string(alias.Binding)] = string(local)
			}
		}
	}

	lookup := func(name string) (any, bool) {
		v, ok := c.Values[name]
		return v, ok
	}
	collect := func(templates bool) {
		for _, el := range decls {
			v, ok := el.Binding.(*js.Var)
			if !ok || el.Default == nil {
				continue
			}
			name := string(v.Name())
			if _, done := c.Values[name]; done {
				continue
			}
			if _, isTemplate := source.Unwrap(el.Default).(*js.TemplateExpr); isTemplate != templates {
				continue
			}
			if val, err := Static(el.Default, lookup); err == nil {
				c.Values[name] = val
			}
		}
	}
	collect(false)
	collect(true)
	// values depending on template constants
	collect(false)
	return c
}
