package quasi

import (
	"vindur/source"
	"vindur/utils/debug"
)

// Dump renders compiled function as indented tree.
func Dump(f *Function) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "function %s (%s)", f.Name, f.Signature)
	for _, p := range f.Params {
		if p.HasDefault {
			tw.Value(1, "param "+p.Name, p.Default)
			continue
		}
		tw.Line(1, "param %s", p.Name)
	}
	dumpQuasi(tw, 1, f.Output)
	return tw.String()
}

func dumpQuasi(tw *debug.TreeWriter, depth int, q Quasi) {
	switch n := q.(type) {
	case String:
		tw.TextBlock(depth, "text", n.Text)
	case Arg:
		tw.Line(depth, "arg %s", n.Name)
	case Template:
		tw.Line(depth, "template")
		for _, part := range n.Parts {
			dumpQuasi(tw, depth+1, part)
		}
	case Ternary:
		tw.Line(depth, "ternary")
		dumpCondition(tw, depth+1, n.Cond)
		dumpQuasi(tw, depth+1, n.Then)
		dumpQuasi(tw, depth+1, n.Else)
	case Binary:
		tw.Line(depth, "binary %s", n.Op.Symbol())
		dumpOperand(tw, depth+1, n.Left)
		dumpOperand(tw, depth+1, n.Right)
	case ArrayMethod:
		tw.Line(depth, "%s %s %q", n.Method, n.Arg, n.Separator)
	case ArrayMap:
		tw.Line(depth, "map %s as %s", n.Arg, n.Param)
		dumpQuasi(tw, depth+1, n.Template)
	case MapJoin:
		tw.Line(depth, "map %s as %s join %q", n.Arg, n.Param, n.Separator)
		dumpQuasi(tw, depth+1, n.Template)
	}
}

func dumpCondition(tw *debug.TreeWriter, depth int, c Condition) {
	if sym := c.Op.Symbol(); sym != "" {
		tw.Line(depth, "if %s", sym)
		dumpOperand(tw, depth+1, c.Left)
		dumpOperand(tw, depth+1, c.Right)
		return
	}
	tw.Line(depth, "if %s", c.Op)
	dumpOperand(tw, depth+1, c.Left)
}

func dumpOperand(tw *debug.TreeWriter, depth int, op Operand) {
	switch n := op.(type) {
	case Literal:
		if f, ok := n.Value.(float64); ok {
			tw.Line(depth, "literal: %s", source.FormatNumber(f))
			return
		}
		tw.Value(depth, "literal", n.Value)
	case Ref:
		tw.Line(depth, "arg %s", n.Name)
	case Binary:
		dumpQuasi(tw, depth, n)
	}
}
