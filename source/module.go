// Package source wraps host module parsing and printing and provides the
// primitives the compiler uses to read and rewrite syntax trees.
package source

import (
	"bytes"
	"errors"
	"strings"
	"unsafe"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"vindur/diag"
)

// Module is a parsed host module.
type Module struct {
	Path string
	Src  []byte
	AST  *js.AST

	cursor int
}

// Parse parses module source. Parse failures are reported as syntax
// diagnostics.
func Parse(path string, src []byte) (*Module, error) {
	// parser appends terminating NUL to the input, never touch caller's buffer
	buf := make([]byte, len(src), len(src)+1)
	copy(buf, src)

	ast, err := js.Parse(parse.NewInputBytes(buf), js.Options{})
	if err != nil {
		de := &diag.Error{Kind: diag.KindSyntax, Message: err.Error(), Position: diag.Position{File: path}}
		var pe *parse.Error
		if errors.As(err, &pe) {
			de.Message = pe.Message
			de.Line, de.Column = pe.Line, pe.Column
		}
		return nil, de
	}
	return &Module{Path: path, Src: buf, AST: ast}, nil
}

// Pos converts byte offset into diagnostic position.
func (m *Module) Pos(offset int) diag.Position {
	if offset < 0 {
		return diag.Position{File: m.Path}
	}
	line, col, _ := parse.Position(bytes.NewReader(m.Src), offset)
	return diag.Position{File: m.Path, Line: line, Column: col}
}

// Offset returns byte offset of node in the source, or -1 when node was not
// parsed from it (constructed or rewritten nodes).
func (m *Module) Offset(n js.INode) int {
	if n == nil {
		return -1
	}
	return m.offsetOf(Anchor(n))
}

// offsetOf returns position of b when it is a slice of the source buffer.
// Parser hands out token data as subslices of the input, so node text can be
// mapped back without searching.
func (m *Module) offsetOf(b []byte) int {
	if len(b) == 0 || len(m.Src) == 0 {
		return -1
	}
	d := uintptr(unsafe.Pointer(unsafe.SliceData(b))) - uintptr(unsafe.Pointer(unsafe.SliceData(m.Src)))
	if d >= uintptr(len(m.Src)) || int(d)+len(b) > len(m.Src) || &m.Src[d] != &b[0] {
		return -1
	}
	return int(d)
}

// Find locates text in the source. Constructs are visited in source order so
// the search continues after the last match, falling back to the first
// occurrence anywhere. Returns -1 when text is absent.
func (m *Module) Find(text []byte) int {
	if len(text) == 0 {
		return -1
	}
	if i := bytes.Index(m.Src[m.cursor:], text); i >= 0 {
		at := m.cursor + i
		m.cursor = at + len(text)
		return at
	}
	return bytes.Index(m.Src, text)
}

// Locate returns position of node, nodes not taken from the source are
// searched for by their text.
func (m *Module) Locate(n js.INode) diag.Position {
	if off := m.Offset(n); off >= 0 {
		return m.Pos(off)
	}
	if n == nil {
		return diag.Position{File: m.Path}
	}
	return m.Pos(m.Find(Anchor(n)))
}

// Print renders the (possibly rewritten) tree back into source text.
func (m *Module) Print() string {
	return m.AST.JSString()
}

// Anchor returns text which identifies node in the source, used to locate
// diagnostics.
func Anchor(e js.INode) []byte {
	switch n := e.(type) {
	case *js.TemplateExpr:
		if len(n.List) > 0 {
			return n.List[0].Value
		}
		return n.Tail
	case *js.Var:
		return n.Data
	case *js.LiteralExpr:
		return n.Data
	case *js.CallExpr:
		return Anchor(n.X)
	case *js.DotExpr:
		return Anchor(n.X)
	case *js.GroupExpr:
		return Anchor(n.X)
	case *js.BinaryExpr:
		return Anchor(n.X)
	case *js.CondExpr:
		return Anchor(n.Cond)
	case *js.UnaryExpr:
		return Anchor(n.X)
	case *js.ArrowFunc:
		if n.Async {
			return []byte("async")
		}
		if len(n.Params.List) > 0 {
			return Anchor(n.Params.List[0].Binding)
		}
		return []byte("=>")
	case *js.FuncDecl:
		return []byte("function")
	}
	if e == nil {
		return nil
	}
	return []byte(JS(e))
}

// JS renders single node.
func JS(n js.INode) string {
	var sb strings.Builder
	n.JS(&sb)
	return sb.String()
}
