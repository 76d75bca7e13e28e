package quasi

import (
	"math"
	"strings"

	"vindur/diag"
	"vindur/source"
)

var (
	nanValue = math.NaN()
	infValue = math.Inf(1)
)

// Evaluate renders quasi using argument binding. It is pure: result depends
// only on q and args.
func Evaluate(q Quasi, args map[string]any) (string, error) {
	var b strings.Builder
	if err := evaluate(&b, q, args); err != nil {
		return "", err
	}
	return b.String(), nil
}

func evaluate(b *strings.Builder, q Quasi, args map[string]any) error {
	switch n := q.(type) {
	case String:
		b.WriteString(n.Text)
	case Arg:
		v, err := lookup(args, n.Name)
		if err != nil {
			return err
		}
		b.WriteString(source.Stringify(v))
	case Template:
		for _, part := range n.Parts {
			if err := evaluate(b, part, args); err != nil {
				return err
			}
		}
	case Ternary:
		ok, err := test(n.Cond, args)
		if err != nil {
			return err
		}
		if ok {
			return evaluate(b, n.Then, args)
		}
		return evaluate(b, n.Else, args)
	case Binary:
		f, err := arithmetic(n, args)
		if err != nil {
			return err
		}
		b.WriteString(source.FormatNumber(f))
	case ArrayMethod:
		items, err := array(args, n.Arg)
		if err != nil {
			return err
		}
		for i, item := range items {
			if i > 0 {
				b.WriteString(n.Separator)
			}
			b.WriteString(source.Stringify(item))
		}
	case ArrayMap:
		return mapJoin(b, n.Arg, n.Param, n.Template, DefaultSeparator, args)
	case MapJoin:
		return mapJoin(b, n.Arg, n.Param, n.Template, n.Separator, args)
	default:
		return diag.Errorf(diag.KindUnsupported, "unknown output node %T", q)
	}
	return nil
}

func mapJoin(b *strings.Builder, arg, param string, tpl Quasi, sep string, args map[string]any) error {
	items, err := array(args, arg)
	if err != nil {
		return err
	}
	for i, item := range items {
		if i > 0 {
			b.WriteString(sep)
		}
		if err := evaluate(b, tpl, map[string]any{param: item}); err != nil {
			return err
		}
	}
	return nil
}

func lookup(args map[string]any, name string) (any, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, diag.Errorf(diag.KindArgument, "argument %q is undefined", name)
	}
	return v, nil
}

func array(args map[string]any, name string) ([]any, error) {
	v, err := lookup(args, name)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, diag.Errorf(diag.KindArgument, "argument %q is not an array", name)
	}
	return items, nil
}

func operand(op Operand, args map[string]any) (any, error) {
	switch n := op.(type) {
	case Literal:
		return n.Value, nil
	case Ref:
		return lookup(args, n.Name)
	case Binary:
		return arithmetic(n, args)
	}
	return nil, diag.Errorf(diag.KindUnsupported, "unknown operand %T", op)
}

func number(op Operand, args map[string]any) (float64, error) {
	v, err := operand(op, args)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, diag.Errorf(diag.KindArithmetic, "operand %q is not a number", source.Stringify(v))
	}
	return f, nil
}

func arithmetic(n Binary, args map[string]any) (float64, error) {
	x, err := number(n.Left, args)
	if err != nil {
		return 0, err
	}
	y, err := number(n.Right, args)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case ArithOpAdd:
		return x + y, nil
	case ArithOpSub:
		return x - y, nil
	case ArithOpMul:
		return x * y, nil
	case ArithOpDiv:
		if y == 0 {
			return 0, diag.Errorf(diag.KindArithmetic, "division by zero")
		}
		return x / y, nil
	case ArithOpMod:
		if y == 0 {
			return 0, diag.Errorf(diag.KindArithmetic, "division by zero")
		}
		return math.Mod(x, y), nil
	}
	return 0, diag.Errorf(diag.KindUnsupported, "unknown operator %s", n.Op)
}

func test(c Condition, args map[string]any) (bool, error) {
	switch c.Op {
	case CmpOpTruthy, CmpOpFalsy:
		v, err := lenientValue(c.Left, args)
		if err != nil {
			return false, err
		}
		return source.Truthy(v) == (c.Op == CmpOpTruthy), nil
	case CmpOpIsArray, CmpOpNotArray:
		v, err := lenientValue(c.Left, args)
		if err != nil {
			return false, err
		}
		_, isArray := v.([]any)
		return isArray == (c.Op == CmpOpIsArray), nil
	}

	left, err := lenientValue(c.Left, args)
	if err != nil {
		return false, err
	}
	right, err := lenientValue(c.Right, args)
	if err != nil {
		return false, err
	}

	switch c.Op {
	case CmpOpEq, CmpOpNotEq:
		eq := strictEqual(left, right)
		// x === true on non boolean value is a truthiness check
		if lb, ok := right.(bool); ok && lb {
			if _, isBool := left.(bool); !isBool {
				eq = source.Truthy(left)
			}
		} else if lb, ok := left.(bool); ok && lb {
			if _, isBool := right.(bool); !isBool {
				eq = source.Truthy(right)
			}
		}
		return eq == (c.Op == CmpOpEq), nil
	}

	switch l := left.(type) {
	case float64:
		if r, ok := right.(float64); ok {
			if math.IsNaN(l) || math.IsNaN(r) {
				return false, nil
			}
			return order(c.Op, compareFloat(l, r)), nil
		}
	case string:
		if r, ok := right.(string); ok {
			return order(c.Op, strings.Compare(l, r)), nil
		}
	}
	return false, diag.Errorf(diag.KindArgument, "cannot compare %q %s %q", source.Stringify(left), c.Op.Symbol(), source.Stringify(right))
}

// lenientValue resolves operand allowing undefined arguments, conditions may test
// for presence.
func lenientValue(op Operand, args map[string]any) (any, error) {
	if r, ok := op.(Ref); ok {
		return args[r.Name], nil
	}
	return operand(op, args)
}

func strictEqual(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func order(op CmpOp, cmp int) bool {
	switch op {
	case CmpOpGt:
		return cmp > 0
	case CmpOpLt:
		return cmp < 0
	case CmpOpGe:
		return cmp >= 0
	case CmpOpLe:
		return cmp <= 0
	}
	return false
}
