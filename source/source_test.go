package source

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tdewolff/parse/v2/js"

	"vindur/diag"
)

func firstInit(t *testing.T, m *Module) js.IExpr {
	t.Helper()
	for _, s := range m.AST.List {
		if d, ok := s.(*js.VarDecl); ok && len(d.List) > 0 {
			return d.List[0].Default
		}
	}
	t.Fatal("no variable declaration found")
	return nil
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		src  string
		want any
		ok   bool
	}{
		{`const a = "hello";`, "hello", true},
		{`const a = 'it\'s';`, "it's", true},
		{`const a = 42;`, 42.0, true},
		{`const a = 1.5e2;`, 150.0, true},
		{`const a = 0x10;`, 16.0, true},
		{`const a = 1_000;`, 1000.0, true},
		{`const a = -3;`, -3.0, true},
		{`const a = (7);`, 7.0, true},
		{`const a = true;`, true, true},
		{`const a = false;`, false, true},
		{"const a = `plain`;", "plain", true},
		{"const a = `a\\nb`;", "a\nb", true},
		{"const a = `x${y}`;", nil, false},
		{`const a = null;`, nil, false},
		{`const a = b;`, nil, false},
		{`const a = -"x";`, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			m, err := Parse("a.js", []byte(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			got, ok := Literal(firstInit(t, m))
			if ok != tt.ok {
				t.Fatalf("Literal() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Literal() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("bad.js", []byte("const a = 1;\nconst = ;\n"))
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !diag.IsKind(err, diag.KindSyntax) {
		t.Fatalf("expected syntax diagnostic, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "bad.js:2:") {
		t.Errorf("error should point to line 2, got %q", err.Error())
	}
}

func TestParseDoesNotTouchInput(t *testing.T) {
	src := make([]byte, 0, 64)
	src = append(src, "const a = 1;"...)
	full := src[:cap(src)]
	if _, err := Parse("a.js", src); err != nil {
		t.Fatal(err)
	}
	for _, b := range full[len(src):] {
		if b != 0 {
			t.Fatal("spare capacity of input was modified")
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		10:      "10",
		-2.5:    "-2.5",
		0.1:     "0.1",
		1e21:    "1e+21",
		1e-7:    "1e-7",
		1.5e-7:  "1.5e-7",
		1e-6:    "0.000001",
		-2e-6:   "-0.000002",
		123456:  "123456",
		1.0 / 3: "0.3333333333333333",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestQuoteUnquote(t *testing.T) {
	tests := []string{
		"simple",
		`with "quotes"`,
		"line\nbreak\ttab",
		`back\slash`,
		"unicode ✓",
		"",
	}
	for _, s := range tests {
		q := Quote(s)
		if got := Unquote([]byte(q)); got != s {
			t.Errorf("Unquote(Quote(%q)) = %q", s, got)
		}
	}
	if got := Unquote([]byte(`'A\u{1F600}\x41'`)); got != "A😀A" {
		t.Errorf("unicode escapes: got %q", got)
	}
}

func TestTemplateText(t *testing.T) {
	if got := TemplateRaw([]byte("`color: red;${")); got != "color: red;" {
		t.Errorf("TemplateRaw() = %q", got)
	}
	if got := TemplateRaw([]byte("}px \\` done`")); got != "px ` done" {
		t.Errorf("TemplateRaw() = %q", got)
	}
	if got := TemplateRaw([]byte(`}content: "\201C";` + "`")); got != `content: "\201C";` {
		t.Errorf("TemplateRaw() should keep css escapes, got %q", got)
	}
	if got := TemplateCooked([]byte("`a\\tb`")); got != "a\tb" {
		t.Errorf("TemplateCooked() = %q", got)
	}
}

func TestRewriterReplacesInSourceOrder(t *testing.T) {
	src := "const a = tag`one`;\nfunction f() { return [tag`two`, g(tag`three`)]; }\n"
	m, err := Parse("a.js", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var seen []string
	r := &Rewriter{Expr: func(e js.IExpr) (js.IExpr, bool) {
		if tpl, ok := e.(*js.TemplateExpr); ok && tpl.Tag != nil {
			text := TemplateRaw(tpl.Tail)
			seen = append(seen, text)
			return String(strings.ToUpper(text)), false
		}
		return e, true
	}}
	r.Stmts(m.AST.List)

	if got := strings.Join(seen, ","); got != "one,two,three" {
		t.Errorf("visit order = %s", got)
	}
	out := m.Print()
	for _, want := range []string{`"ONE"`, `"TWO"`, `g("THREE")`} {
		if !strings.Contains(out, want) {
			t.Errorf("printed output %q does not contain %s", out, want)
		}
	}
}

func TestRewriterScopes(t *testing.T) {
	m, err := Parse("a.js", []byte("function f() { const x = 1; { const y = 2; } }"))
	if err != nil {
		t.Fatal(err)
	}
	depth, maxDepth := 0, 0
	r := &Rewriter{Scope: func(*js.BlockStmt) func() {
		depth++
		maxDepth = max(maxDepth, depth)
		return func() { depth-- }
	}}
	r.Stmts(m.AST.List)
	if depth != 0 || maxDepth != 2 {
		t.Errorf("scope depth = %d, max = %d", depth, maxDepth)
	}
}

func TestRewriterDeclarations(t *testing.T) {
	m, err := Parse("a.js", []byte("const a = 1, [b] = c; export let d = 2; function f() { var e = a; }"))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	r := &Rewriter{Decl: func(kind js.TokenType, name string, init js.IExpr) {
		got = append(got, kind.String()+" "+name+" = "+JS(init))
	}}
	r.Stmts(m.AST.List)
	want := []string{"const a = 1", "let d = 2", "var e = a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestFind(t *testing.T) {
	src := "const a = 1;\nconst b = 2;\nconst a2 = 3;\nconst a3 = 3;\n"
	m, err := Parse("pos.js", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	find := func(text string) diag.Position { return m.Pos(m.Find([]byte(text))) }
	if pos := find("b"); pos.Line != 2 || pos.Column != 7 {
		t.Errorf("Find(b) = %v", pos)
	}
	// repeated text is found after the previous match
	if pos := find("= 3"); pos.Line != 3 {
		t.Errorf("Find(first = 3) = %v", pos)
	}
	if pos := find("= 3"); pos.Line != 4 {
		t.Errorf("Find(second = 3) = %v", pos)
	}
	// falls back to first occurrence behind the cursor
	if pos := find("const a ="); pos.Line != 1 {
		t.Errorf("Find(behind cursor) = %v", pos)
	}
	if pos := find("missing"); pos.Line != 0 || pos.File != "pos.js" {
		t.Errorf("Find(missing) = %v", pos)
	}
}

func TestLocate(t *testing.T) {
	src := "const a = css`color: red;`;\nconst b = css`color: red;`;\n"
	m, err := Parse("pos.js", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	var got []diag.Position
	for i := len(m.AST.List) - 1; i >= 0; i-- {
		d := m.AST.List[i].(*js.VarDecl)
		got = append(got, m.Locate(d.List[0].Default))
	}
	want := []diag.Position{{File: "pos.js", Line: 2, Column: 14}, {File: "pos.js", Line: 1, Column: 14}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	if off := m.Offset(String("color: red;")); off != -1 {
		t.Errorf("Offset(constructed node) = %d, want -1", off)
	}
	if pos := m.Locate(nil); pos.Line != 0 || pos.File != "pos.js" {
		t.Errorf("Locate(nil) = %v", pos)
	}
}

func TestPropertyHelpers(t *testing.T) {
	m, err := Parse("a.js", []byte(`const o = {plain: 1, "---var": 2, 3: 4}; const d = x.y;`))
	if err != nil {
		t.Fatal(err)
	}
	obj := firstInit(t, m).(*js.ObjectExpr)
	var keys []string
	for _, p := range obj.List {
		k, ok := PropertyKey(p.Name)
		if !ok {
			t.Fatalf("PropertyKey failed for %s", JS(p.Value))
		}
		keys = append(keys, k)
	}
	if got := strings.Join(keys, ","); got != "plain,---var,3" {
		t.Errorf("keys = %s", got)
	}

	d := m.AST.List[1].(*js.VarDecl).List[0].Default.(*js.DotExpr)
	if got := MemberName(d); got != "y" {
		t.Errorf("MemberName() = %s", got)
	}

	p := Property("---x", String("1"))
	if got := JS(&js.ObjectExpr{List: []js.Property{p}}); !strings.Contains(got, `"---x": "1"`) {
		t.Errorf("Property() printed as %s", got)
	}
}
