package source

import (
	"github.com/tdewolff/parse/v2/js"
)

// String creates string literal node.
func String(s string) *js.LiteralExpr {
	return &js.LiteralExpr{TokenType: js.StringToken, Data: []byte(Quote(s))}
}

// Ident creates identifier reference node.
func Ident(name string) *js.Var {
	return &js.Var{Data: []byte(name)}
}

// Call creates call expression node.
func Call(fn js.IExpr, args ...js.IExpr) *js.CallExpr {
	call := &js.CallExpr{X: fn, Args: js.Args{List: make([]js.Arg, 0, len(args))}}
	for _, a := range args {
		call.Args.List = append(call.Args.List, js.Arg{Value: a})
	}
	return call
}

// Array creates array literal node.
func Array(items ...js.IExpr) *js.ArrayExpr {
	arr := &js.ArrayExpr{List: make([]js.Element, 0, len(items))}
	for _, item := range items {
		arr.List = append(arr.List, js.Element{Value: item})
	}
	return arr
}

// Cond creates parenthesized conditional expression node.
func Cond(cond, yes, no js.IExpr) js.IExpr {
	return &js.GroupExpr{X: &js.CondExpr{Cond: cond, X: yes, Y: no}}
}

// Property creates object property with static key.
func Property(key string, value js.IExpr) js.Property {
	name := &js.PropertyName{Literal: js.LiteralExpr{TokenType: js.IdentifierToken, Data: []byte(key)}}
	if !js.AsIdentifierName([]byte(key)) {
		name.Literal = js.LiteralExpr{TokenType: js.StringToken, Data: []byte(Quote(key))}
	}
	return js.Property{Name: name, Value: value}
}

// Unwrap strips grouping parentheses.
func Unwrap(e js.IExpr) js.IExpr {
	for {
		g, ok := e.(*js.GroupExpr)
		if !ok {
			return e
		}
		e = g.X
	}
}

// Name returns identifier name when expression is a bare identifier.
func Name(e js.IExpr) (string, bool) {
	if v, ok := Unwrap(e).(*js.Var); ok {
		return string(v.Name()), true
	}
	return "", false
}
