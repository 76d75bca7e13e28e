package quasi

// Shape of compiled style function parameter list.
// ENUM(positional, destructured)
type Signature int

// Comparison used by ternary conditions.
// ENUM(eq, notEq, gt, lt, ge, le, truthy, falsy, isArray, notArray)
type CmpOp int

// Arithmetic operator.
// ENUM(add, sub, mul, div, mod)
type ArithOp int

var arithSymbols = map[ArithOp]string{
	ArithOpAdd: "+",
	ArithOpSub: "-",
	ArithOpMul: "*",
	ArithOpDiv: "/",
	ArithOpMod: "%",
}

// Symbol returns operator as written in source.
func (x ArithOp) Symbol() string {
	return arithSymbols[x]
}

var cmpSymbols = map[CmpOp]string{
	CmpOpEq:    "===",
	CmpOpNotEq: "!==",
	CmpOpGt:    ">",
	CmpOpLt:    "<",
	CmpOpGe:    ">=",
	CmpOpLe:    "<=",
}

// Symbol returns comparison operator as written in source, checks have none.
func (x CmpOp) Symbol() string {
	return cmpSymbols[x]
}
