package quasi

import (
	"github.com/tdewolff/parse/v2/js"

	"vindur/diag"
	"vindur/source"
)

// Locator maps syntax nodes to source positions.
type Locator interface {
	Locate(n js.INode) diag.Position
}

// builtins are identifiers allowed inside style functions besides
// parameters.
var builtins = map[string]any{
	"undefined": nil,
	"NaN":       nanValue,
	"Infinity":  infValue,
}

type compiler struct {
	name   string
	at     Locator
	params map[string]bool
}

// Compile parses style function (arrow function or function expression)
// into compiled form. Every construct outside of supported subset is
// rejected with diagnostic pointing to offending node.
func Compile(name string, fn js.IExpr, at Locator) (*Function, error) {
	c := &compiler{name: name, at: at, params: make(map[string]bool)}

	var (
		params js.Params
		body   *js.BlockStmt
	)
	switch n := source.Unwrap(fn).(type) {
	case *js.ArrowFunc:
		if n.Async {
			return nil, c.fail(diag.KindUnsupported, n, "async style function %q", name)
		}
		params, body = n.Params, &n.Body
	case *js.FuncDecl:
		if n.Async || n.Generator {
			return nil, c.fail(diag.KindUnsupported, n, "async or generator style function %q", name)
		}
		params, body = n.Params, &n.Body
	default:
		return nil, c.fail(diag.KindUnsupported, fn, "style function %q must be a function expression", name)
	}

	f := &Function{Name: name}
	if err := c.signature(f, params); err != nil {
		return nil, err
	}

	if len(body.List) != 1 {
		return nil, c.fail(diag.KindUnsupported, fn, "style function %q body must consist of a single return statement, has %d statements", name, len(body.List))
	}
	ret, ok := body.List[0].(*js.ReturnStmt)
	if !ok || ret.Value == nil {
		return nil, c.fail(diag.KindUnsupported, fn, "style function %q must return a template literal or a string", name)
	}
	out, err := c.expr(ret.Value)
	if err != nil {
		return nil, err
	}
	f.Output = out
	return f, nil
}

func (c *compiler) fail(kind diag.Kind, n js.INode, format string, args ...any) error {
	err := diag.Errorf(kind, format, args...)
	if c.at != nil && n != nil {
		err.Position = c.at.Locate(n)
	}
	return err
}

func (c *compiler) signature(f *Function, params js.Params) error {
	if params.Rest != nil {
		return c.fail(diag.KindUnsupported, params.Rest, "rest parameter in style function %q", c.name)
	}
	if len(params.List) == 1 {
		if obj, ok := params.List[0].Binding.(*js.BindingObject); ok {
			f.Signature = SignatureDestructured
			if obj.Rest != nil {
				return c.fail(diag.KindUnsupported, obj.Rest, "rest property in style function %q", c.name)
			}
			for _, item := range obj.List {
				v, ok := item.Value.Binding.(*js.Var)
				if !ok {
					return c.fail(diag.KindUnsupported, item.Value.Binding, "nested destructuring in style function %q", c.name)
				}
				key := string(v.Name())
				if item.Key != nil {
					if k, ok := source.PropertyKey(item.Key); ok && k != key {
						return c.fail(diag.KindUnsupported, v, "renamed destructured parameter %q in style function %q", k, c.name)
					}
				}
				p, err := c.param(key, item.Value.Default)
				if err != nil {
					return err
				}
				f.Params = append(f.Params, p)
			}
			return nil
		}
	}
	f.Signature = SignaturePositional
	for _, el := range params.List {
		v, ok := el.Binding.(*js.Var)
		if !ok {
			return c.fail(diag.KindUnsupported, el.Binding, "destructured parameter must be the only parameter of style function %q", c.name)
		}
		p, err := c.param(string(v.Name()), el.Default)
		if err != nil {
			return err
		}
		f.Params = append(f.Params, p)
	}
	return nil
}

func (c *compiler) param(name string, def js.IExpr) (Param, error) {
	p := Param{Name: name}
	if def != nil {
		v, ok := source.Literal(def)
		if !ok {
			return p, c.fail(diag.KindUnsupported, def, "default value of parameter %q must be a literal", name)
		}
		p.Default, p.HasDefault = v, true
	}
	c.params[name] = true
	return p, nil
}

func (c *compiler) expr(e js.IExpr) (Quasi, error) {
	if v, ok := source.Literal(e); ok {
		return String{Text: source.Stringify(v)}, nil
	}
	switch n := source.Unwrap(e).(type) {
	case *js.TemplateExpr:
		if n.Tag != nil {
			return nil, c.fail(diag.KindUnsupported, n, "tagged template inside style function %q", c.name)
		}
		return c.template(n)
	case *js.Var:
		name := string(n.Name())
		if c.params[name] {
			return Arg{Name: name}, nil
		}
		if v, ok := builtins[name]; ok {
			return String{Text: source.Stringify(v)}, nil
		}
		return nil, c.fail(diag.KindUnresolved, n, "identifier %q is not a parameter of style function %q", name, c.name)
	case *js.CondExpr:
		cond, err := c.condition(n.Cond)
		if err != nil {
			return nil, err
		}
		yes, err := c.expr(n.X)
		if err != nil {
			return nil, err
		}
		no, err := c.expr(n.Y)
		if err != nil {
			return nil, err
		}
		return Ternary{Cond: cond, Then: yes, Else: no}, nil
	case *js.BinaryExpr, *js.UnaryExpr:
		b, err := c.arithmetic(n)
		if err != nil {
			return nil, err
		}
		return b, nil
	case *js.CallExpr:
		return c.call(n)
	case *js.DotExpr, *js.IndexExpr:
		return nil, c.fail(diag.KindUnsupported, n, "member access %s in style function %q", source.JS(n), c.name)
	}
	return nil, c.fail(diag.KindUnsupported, e, "expression %s in style function %q", source.JS(e), c.name)
}

func (c *compiler) template(n *js.TemplateExpr) (Quasi, error) {
	t := Template{Parts: make([]Quasi, 0, 2*len(n.List)+1)}
	for _, part := range n.List {
		if text := source.TemplateRaw(part.Value); text != "" {
			t.Parts = append(t.Parts, String{Text: text})
		}
		q, err := c.expr(part.Expr)
		if err != nil {
			return nil, err
		}
		t.Parts = append(t.Parts, q)
	}
	if text := source.TemplateRaw(n.Tail); text != "" {
		t.Parts = append(t.Parts, String{Text: text})
	}
	return t, nil
}

var arithOps = map[js.TokenType]ArithOp{
	js.AddToken: ArithOpAdd,
	js.SubToken: ArithOpSub,
	js.MulToken: ArithOpMul,
	js.DivToken: ArithOpDiv,
	js.ModToken: ArithOpMod,
}

func (c *compiler) arithmetic(e js.IExpr) (Binary, error) {
	switch n := source.Unwrap(e).(type) {
	case *js.BinaryExpr:
		op, ok := arithOps[n.Op]
		if !ok {
			return Binary{}, c.fail(diag.KindUnsupported, n, "operator %s in style function %q", n.Op, c.name)
		}
		left, err := c.operand(n.X)
		if err != nil {
			return Binary{}, err
		}
		right, err := c.operand(n.Y)
		if err != nil {
			return Binary{}, err
		}
		return Binary{Op: op, Left: left, Right: right}, nil
	case *js.UnaryExpr:
		if n.Op != js.NegToken {
			return Binary{}, c.fail(diag.KindUnsupported, n, "unary operator %s in style function %q", n.Op, c.name)
		}
		x, err := c.operand(n.X)
		if err != nil {
			return Binary{}, err
		}
		return Binary{Op: ArithOpMul, Left: Literal{Value: -1.0}, Right: x}, nil
	}
	return Binary{}, c.fail(diag.KindUnsupported, e, "expression %s in style function %q", source.JS(e), c.name)
}

func (c *compiler) operand(e js.IExpr) (Operand, error) {
	if v, ok := source.Literal(e); ok {
		return Literal{Value: v}, nil
	}
	switch n := source.Unwrap(e).(type) {
	case *js.Var:
		name := string(n.Name())
		if c.params[name] {
			return Ref{Name: name}, nil
		}
		if v, ok := builtins[name]; ok {
			return Literal{Value: v}, nil
		}
		return nil, c.fail(diag.KindUnresolved, n, "identifier %q is not a parameter of style function %q", name, c.name)
	case *js.BinaryExpr, *js.UnaryExpr:
		return c.arithmetic(n)
	}
	return nil, c.fail(diag.KindUnsupported, e, "operand %s in style function %q", source.JS(e), c.name)
}

var cmpOps = map[js.TokenType]CmpOp{
	js.EqEqEqToken:  CmpOpEq,
	js.NotEqEqToken: CmpOpNotEq,
	js.GtToken:      CmpOpGt,
	js.LtToken:      CmpOpLt,
	js.GtEqToken:    CmpOpGe,
	js.LtEqToken:    CmpOpLe,
}

func (c *compiler) condition(e js.IExpr) (Condition, error) {
	switch n := source.Unwrap(e).(type) {
	case *js.BinaryExpr:
		op, ok := cmpOps[n.Op]
		if !ok {
			if _, arith := arithOps[n.Op]; arith {
				b, err := c.arithmetic(n)
				return Condition{Op: CmpOpTruthy, Left: b}, err
			}
			return Condition{}, c.fail(diag.KindUnsupported, n, "condition operator %s in style function %q", n.Op, c.name)
		}
		left, err := c.operand(n.X)
		if err != nil {
			return Condition{}, err
		}
		right, err := c.operand(n.Y)
		if err != nil {
			return Condition{}, err
		}
		return Condition{Op: op, Left: left, Right: right}, nil
	case *js.UnaryExpr:
		if n.Op != js.NotToken {
			break
		}
		inner, err := c.condition(n.X)
		if err != nil {
			return Condition{}, err
		}
		switch inner.Op {
		case CmpOpTruthy:
			inner.Op = CmpOpFalsy
		case CmpOpFalsy:
			inner.Op = CmpOpTruthy
		case CmpOpIsArray:
			inner.Op = CmpOpNotArray
		case CmpOpNotArray:
			inner.Op = CmpOpIsArray
		default:
			return Condition{}, c.fail(diag.KindUnsupported, n, "negated comparison in style function %q", c.name)
		}
		return inner, nil
	case *js.CallExpr:
		if arg, ok := isArrayCheck(n); ok {
			if !c.params[arg] {
				return Condition{}, c.fail(diag.KindUnresolved, n, "identifier %q is not a parameter of style function %q", arg, c.name)
			}
			return Condition{Op: CmpOpIsArray, Left: Ref{Name: arg}}, nil
		}
	}
	op, err := c.operand(e)
	if err != nil {
		return Condition{}, err
	}
	return Condition{Op: CmpOpTruthy, Left: op}, nil
}

// isArrayCheck matches Array.isArray(name).
func isArrayCheck(call *js.CallExpr) (string, bool) {
	dot, ok := call.X.(*js.DotExpr)
	if !ok || source.MemberName(dot) != "isArray" {
		return "", false
	}
	if obj, ok := source.Name(dot.X); !ok || obj != "Array" {
		return "", false
	}
	if len(call.Args.List) != 1 {
		return "", false
	}
	return source.Name(call.Args.List[0].Value)
}

func (c *compiler) call(n *js.CallExpr) (Quasi, error) {
	dot, ok := n.X.(*js.DotExpr)
	if !ok {
		return nil, c.fail(diag.KindUnsupported, n, "call %s in style function %q", source.JS(n), c.name)
	}
	switch method := source.MemberName(dot); method {
	case "join":
		sep, err := c.separator(n)
		if err != nil {
			return nil, err
		}
		if inner, ok := source.Unwrap(dot.X).(*js.CallExpr); ok {
			m, err := c.mapCall(inner)
			if err != nil {
				return nil, err
			}
			return MapJoin{Arg: m.Arg, Param: m.Param, Template: m.Template, Separator: sep}, nil
		}
		arg, err := c.arrayArg(dot.X)
		if err != nil {
			return nil, err
		}
		return ArrayMethod{Arg: arg, Method: method, Separator: sep}, nil
	case "map":
		return c.mapCall(n)
	}
	return nil, c.fail(diag.KindUnsupported, n, "call %s in style function %q, only map and join are allowed", source.JS(n), c.name)
}

func (c *compiler) separator(n *js.CallExpr) (string, error) {
	switch len(n.Args.List) {
	case 0:
		return DefaultSeparator, nil
	case 1:
		v, ok := source.Literal(n.Args.List[0].Value)
		if s, isString := v.(string); ok && isString {
			return s, nil
		}
		return "", c.fail(diag.KindArgument, n.Args.List[0].Value, "join separator must be a string literal in style function %q", c.name)
	}
	return "", c.fail(diag.KindArgument, n, "join expects at most one argument in style function %q", c.name)
}

func (c *compiler) arrayArg(e js.IExpr) (string, error) {
	name, ok := source.Name(e)
	if !ok {
		return "", c.fail(diag.KindUnsupported, e, "array method on %s in style function %q", source.JS(e), c.name)
	}
	if !c.params[name] {
		return "", c.fail(diag.KindUnresolved, e, "identifier %q is not a parameter of style function %q", name, c.name)
	}
	return name, nil
}

func (c *compiler) mapCall(n *js.CallExpr) (ArrayMap, error) {
	dot, ok := n.X.(*js.DotExpr)
	if !ok || source.MemberName(dot) != "map" {
		return ArrayMap{}, c.fail(diag.KindUnsupported, n, "call %s in style function %q", source.JS(n), c.name)
	}
	arg, err := c.arrayArg(dot.X)
	if err != nil {
		return ArrayMap{}, err
	}
	if len(n.Args.List) != 1 {
		return ArrayMap{}, c.fail(diag.KindArgument, n, "map expects a single callback in style function %q", c.name)
	}
	fn, ok := source.Unwrap(n.Args.List[0].Value).(*js.ArrowFunc)
	if !ok || fn.Async || len(fn.Params.List) != 1 || fn.Params.Rest != nil {
		return ArrayMap{}, c.fail(diag.KindUnsupported, n.Args.List[0].Value, "map callback must be an arrow function with one parameter in style function %q", c.name)
	}
	param, ok := fn.Params.List[0].Binding.(*js.Var)
	if !ok {
		return ArrayMap{}, c.fail(diag.KindUnsupported, fn, "map callback parameter must be an identifier in style function %q", c.name)
	}
	if len(fn.Body.List) != 1 {
		return ArrayMap{}, c.fail(diag.KindUnsupported, fn, "map callback must return a single expression in style function %q", c.name)
	}
	ret, ok := fn.Body.List[0].(*js.ReturnStmt)
	if !ok || ret.Value == nil {
		return ArrayMap{}, c.fail(diag.KindUnsupported, fn, "map callback must return a single expression in style function %q", c.name)
	}

	// element template only sees its own parameter
	inner := &compiler{name: c.name, at: c.at, params: map[string]bool{string(param.Name()): true}}
	tpl, err := inner.expr(ret.Value)
	if err != nil {
		return ArrayMap{}, err
	}
	return ArrayMap{Arg: arg, Param: string(param.Name()), Template: tpl}, nil
}
