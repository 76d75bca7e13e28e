package source

import (
	"github.com/tdewolff/parse/v2/js"
)

// Rewriter walks statements and expressions in source order allowing
// expressions to be replaced.
type Rewriter struct {
	// Expr is called for every expression before its children. It returns
	// replacement (or the same node) and whether children of the returned
	// node should be visited.
	Expr func(e js.IExpr) (js.IExpr, bool)
	// Scope is called when block or function body is entered, returned
	// function (if any) is called when it is left.
	Scope func(body *js.BlockStmt) func()
	// Decl is called for every identifier declared with initializer, before
	// the initializer is visited.
	Decl func(kind js.TokenType, name string, init js.IExpr)
}

// Stmts walks statement list.
func (r *Rewriter) Stmts(list []js.IStmt) {
	for _, s := range list {
		r.Stmt(s)
	}
}

// Stmt walks single statement.
func (r *Rewriter) Stmt(s js.IStmt) {
	switch n := s.(type) {
	case *js.ExprStmt:
		n.Value = r.Visit(n.Value)
	case *js.VarDecl:
		r.varDecl(n)
	case *js.FuncDecl:
		r.function(&n.Params, &n.Body)
	case *js.ClassDecl:
		r.class(n)
	case *js.ExportStmt:
		if n.Decl != nil {
			n.Decl = r.Visit(n.Decl)
		}
	case *js.BlockStmt:
		r.block(n)
	case *js.IfStmt:
		n.Cond = r.Visit(n.Cond)
		r.Stmt(n.Body)
		r.Stmt(n.Else)
	case *js.ReturnStmt:
		n.Value = r.Visit(n.Value)
	case *js.ThrowStmt:
		n.Value = r.Visit(n.Value)
	case *js.DoWhileStmt:
		r.Stmt(n.Body)
		n.Cond = r.Visit(n.Cond)
	case *js.WhileStmt:
		n.Cond = r.Visit(n.Cond)
		r.Stmt(n.Body)
	case *js.ForStmt:
		n.Init = r.Visit(n.Init)
		n.Cond = r.Visit(n.Cond)
		n.Post = r.Visit(n.Post)
		if n.Body != nil {
			r.Stmts(n.Body.List)
		}
	case *js.ForInStmt:
		n.Init = r.Visit(n.Init)
		n.Value = r.Visit(n.Value)
		if n.Body != nil {
			r.Stmts(n.Body.List)
		}
	case *js.ForOfStmt:
		n.Init = r.Visit(n.Init)
		n.Value = r.Visit(n.Value)
		if n.Body != nil {
			r.Stmts(n.Body.List)
		}
	case *js.SwitchStmt:
		n.Init = r.Visit(n.Init)
		for i := range n.List {
			n.List[i].Cond = r.Visit(n.List[i].Cond)
			r.Stmts(n.List[i].List)
		}
	case *js.TryStmt:
		if n.Body != nil {
			r.Stmts(n.Body.List)
		}
		if n.Catch != nil {
			r.Stmts(n.Catch.List)
		}
		if n.Finally != nil {
			r.Stmts(n.Finally.List)
		}
	case *js.LabelledStmt:
		r.Stmt(n.Value)
	case *js.WithStmt:
		n.Cond = r.Visit(n.Cond)
		r.Stmt(n.Body)
	}
}

// Visit walks expression returning its (possibly replaced) node.
func (r *Rewriter) Visit(e js.IExpr) js.IExpr {
	if e == nil {
		return nil
	}
	if r.Expr != nil {
		var descend bool
		if e, descend = r.Expr(e); !descend || e == nil {
			return e
		}
	}
	switch n := e.(type) {
	case *js.GroupExpr:
		n.X = r.Visit(n.X)
	case *js.DotExpr:
		n.X = r.Visit(n.X)
	case *js.IndexExpr:
		n.X = r.Visit(n.X)
		n.Y = r.Visit(n.Y)
	case *js.CallExpr:
		n.X = r.Visit(n.X)
		r.args(&n.Args)
	case *js.NewExpr:
		n.X = r.Visit(n.X)
		if n.Args != nil {
			r.args(n.Args)
		}
	case *js.UnaryExpr:
		n.X = r.Visit(n.X)
	case *js.BinaryExpr:
		n.X = r.Visit(n.X)
		n.Y = r.Visit(n.Y)
	case *js.CondExpr:
		n.Cond = r.Visit(n.Cond)
		n.X = r.Visit(n.X)
		n.Y = r.Visit(n.Y)
	case *js.YieldExpr:
		n.X = r.Visit(n.X)
	case *js.CommaExpr:
		for i := range n.List {
			n.List[i] = r.Visit(n.List[i])
		}
	case *js.ArrayExpr:
		for i := range n.List {
			n.List[i].Value = r.Visit(n.List[i].Value)
		}
	case *js.ObjectExpr:
		for i := range n.List {
			p := &n.List[i]
			if p.Name != nil && p.Name.Computed != nil {
				p.Name.Computed = r.Visit(p.Name.Computed)
			}
			p.Value = r.Visit(p.Value)
			p.Init = r.Visit(p.Init)
		}
	case *js.TemplateExpr:
		n.Tag = r.Visit(n.Tag)
		for i := range n.List {
			n.List[i].Expr = r.Visit(n.List[i].Expr)
		}
	case *js.ArrowFunc:
		r.function(&n.Params, &n.Body)
	case *js.FuncDecl:
		r.function(&n.Params, &n.Body)
	case *js.MethodDecl:
		r.function(&n.Params, &n.Body)
	case *js.ClassDecl:
		r.class(n)
	case *js.VarDecl:
		r.varDecl(n)
	}
	return e
}

func (r *Rewriter) args(args *js.Args) {
	for i := range args.List {
		args.List[i].Value = r.Visit(args.List[i].Value)
	}
}

func (r *Rewriter) varDecl(n *js.VarDecl) {
	for i := range n.List {
		el := &n.List[i]
		if v, ok := el.Binding.(*js.Var); ok && r.Decl != nil && el.Default != nil {
			r.Decl(n.TokenType, string(v.Name()), el.Default)
		}
		el.Default = r.Visit(el.Default)
	}
}

func (r *Rewriter) function(params *js.Params, body *js.BlockStmt) {
	for i := range params.List {
		params.List[i].Default = r.Visit(params.List[i].Default)
	}
	r.block(body)
}

func (r *Rewriter) block(body *js.BlockStmt) {
	if r.Scope != nil {
		if leave := r.Scope(body); leave != nil {
			defer leave()
		}
	}
	r.Stmts(body.List)
}

func (r *Rewriter) class(n *js.ClassDecl) {
	n.Extends = r.Visit(n.Extends)
	for i := range n.List {
		el := &n.List[i]
		switch {
		case el.StaticBlock != nil:
			r.Stmts(el.StaticBlock.List)
		case el.Method != nil:
			r.function(&el.Method.Params, &el.Method.Body)
		default:
			el.Init = r.Visit(el.Init)
		}
	}
}
