// Package quasi implements compiled style functions: a small pure expression
// language producing text, its parser from host syntax and its evaluator.
package quasi

// Quasi is a node of compiled function output.
type Quasi interface {
	quasi()
}

// Operand is a value used by conditions and arithmetic.
type Operand interface {
	operand()
}

type (
	// String is literal text.
	String struct {
		Text string
	}

	// Arg is a reference to function argument.
	Arg struct {
		Name string
	}

	// Template concatenates its parts.
	Template struct {
		Parts []Quasi
	}

	// Ternary selects one of two branches.
	Ternary struct {
		Cond Condition
		Then Quasi
		Else Quasi
	}

	// Binary is arithmetic over two numeric operands.
	Binary struct {
		Op          ArithOp
		Left, Right Operand
	}

	// ArrayMethod joins array argument with separator.
	ArrayMethod struct {
		Arg       string
		Method    string
		Separator string
	}

	// ArrayMap renders template for every element of array argument.
	ArrayMap struct {
		Arg      string
		Param    string
		Template Quasi
	}

	// MapJoin renders template for every element of array argument and
	// joins results with separator.
	MapJoin struct {
		Arg       string
		Param     string
		Template  Quasi
		Separator string
	}
)

type (
	// Literal is a constant operand: string, float64 or bool.
	Literal struct {
		Value any
	}

	// Ref is an operand referencing argument.
	Ref struct {
		Name string
	}
)

// Condition of ternary. Checks (truthy, falsy, isArray, notArray) only use
// Left.
type Condition struct {
	Op          CmpOp
	Left, Right Operand
}

// DefaultSeparator is used when array is joined without explicit separator.
const DefaultSeparator = ", "

func (String) quasi()      {}
func (Arg) quasi()         {}
func (Template) quasi()    {}
func (Ternary) quasi()     {}
func (Binary) quasi()      {}
func (ArrayMethod) quasi() {}
func (ArrayMap) quasi()    {}
func (MapJoin) quasi()     {}

func (Literal) operand() {}
func (Ref) operand()     {}
func (Binary) operand()  {}

// Param is a declared function parameter.
type Param struct {
	Name       string
	Default    any
	HasDefault bool
}

// Function is a compiled style function. It is immutable once created.
type Function struct {
	Name      string
	Signature Signature
	Params    []Param
	Output    Quasi
}

func (f *Function) param(name string) (Param, bool) {
	for _, p := range f.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
