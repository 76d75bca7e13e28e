package resolve

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tdewolff/parse/v2/js"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"vindur/diag"
	"vindur/source"
)

// refExtractor treats every word of the source as exported class, words
// prefixed with "ref:" load another module.
func refExtractor(c *Cache) Extractor {
	var extract Extractor
	extract = func(path string, src []byte, chain *Chain) (*Record, error) {
		rec := NewRecord(path)
		for _, word := range strings.Fields(string(src)) {
			if ref, ok := strings.CutPrefix(word, "ref:"); ok {
				if _, err := c.Get(ref, chain, extract); err != nil {
					return nil, err
				}
				continue
			}
			rec.Classes[word] = "c-" + word
		}
		return rec, nil
	}
	return extract
}

func TestChain(t *testing.T) {
	var root *Chain
	a := root.Push("/a.js")
	b := a.Push("/b.js")
	if a.Contains("/b.js") {
		t.Error("Push modified parent chain")
	}
	if !b.Contains("/a.js") || !b.Contains("/b.js") || b.Contains("/c.js") {
		t.Errorf("Contains() wrong for %s", b)
	}
	if root.Contains("/a.js") || len(root.Paths()) != 0 {
		t.Error("empty chain is not empty")
	}
	if got := b.String(); got != "/a.js -> /b.js" {
		t.Errorf("String() = %q", got)
	}
}

func TestCacheLoadsOnce(t *testing.T) {
	c := NewCache(MemoryLoader{"/lib.js": "button link"}, zaptest.NewLogger(t))
	extract := refExtractor(c)
	chain := (*Chain)(nil).Push("/app.js")

	var first *Record
	for range 3 {
		rec, err := c.Get("/lib.js", chain, extract)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if first == nil {
			first = rec
		} else if rec != first {
			t.Error("Get() returned different record for the same module")
		}
	}
	if c.Loads() != 1 {
		t.Errorf("Loads() = %d, want 1", c.Loads())
	}
	if state, ok := c.State("/lib.js"); !ok || state != StateDone {
		t.Errorf("State() = %v, %v", state, ok)
	}
	if diff := cmp.Diff(map[string]string{"button": "c-button", "link": "c-link"}, first.Classes); diff != "" {
		t.Errorf("Classes mismatch (-want +got):\n%s", diff)
	}

	c.Clear()
	if _, ok := c.State("/lib.js"); ok || c.Loads() != 0 {
		t.Error("Clear() kept entries")
	}
}

func TestCacheNestedLoads(t *testing.T) {
	c := NewCache(MemoryLoader{
		"/a.js": "a ref:/shared.js",
		"/b.js": "b ref:/shared.js",
		"/shared.js": "s",
	}, nil)
	extract := refExtractor(c)
	chain := (*Chain)(nil).Push("/app.js")
	for _, p := range []string{"/a.js", "/b.js", "/a.js"} {
		if _, err := c.Get(p, chain, extract); err != nil {
			t.Fatalf("Get(%s) error = %v", p, err)
		}
	}
	if c.Loads() != 3 {
		t.Errorf("Loads() = %d, want 3", c.Loads())
	}
}

func TestCacheCycle(t *testing.T) {
	c := NewCache(MemoryLoader{
		"/a.js": "ref:/b.js a",
		"/b.js": "ref:/a.js b",
	}, nil)
	extract := refExtractor(c)

	_, err := c.Get("/a.js", (*Chain)(nil).Push("/app.js"), extract)
	if !errors.Is(err, ErrCycle) || !diag.IsKind(err, diag.KindStructural) {
		t.Fatalf("Get() error = %v, want structural cycle error", err)
	}
	if want := "/app.js -> /a.js -> /b.js -> /a.js"; !strings.Contains(err.Error(), want) {
		t.Errorf("Get() error = %q, want chain %q", err, want)
	}
	for _, p := range []string{"/a.js", "/b.js"} {
		if _, ok := c.State(p); ok {
			t.Errorf("cycle failure for %s was cached", p)
		}
	}

	_, err = c.Get("/app.js", (*Chain)(nil).Push("/app.js"), extract)
	if !errors.Is(err, ErrCycle) {
		t.Errorf("self reference error = %v, want cycle", err)
	}
}

func TestCacheFailureCached(t *testing.T) {
	c := NewCache(MemoryLoader{}, nil)
	extract := refExtractor(c)
	for range 2 {
		_, err := c.Get("/missing.js", nil, extract)
		var de *diag.Error
		if !errors.As(err, &de) || de.Kind != diag.KindUnresolved || de.File != "/missing.js" {
			t.Fatalf("Get() error = %v, want unresolved error for missing module", err)
		}
	}
	if c.Loads() != 1 {
		t.Errorf("Loads() = %d, want 1", c.Loads())
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := NewCache(MemoryLoader{"/lib.js": "x ref:/dep.js", "/dep.js": "y"}, nil)
	extract := refExtractor(c)

	records := make([]*Record, 8)
	var g errgroup.Group
	for i := range records {
		g.Go(func() error {
			rec, err := c.Get("/lib.js", (*Chain)(nil).Push("/app.js"), extract)
			records[i] = rec
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for _, rec := range records[1:] {
		if rec != records[0] {
			t.Fatal("concurrent Get() returned different records")
		}
	}
}

func TestImportPath(t *testing.T) {
	files := MemoryLoader{
		"/src/theme.ts":        "",
		"/src/ui/button.tsx":   "",
		"/src/tokens/index.js": "",
		"/src/util.js":         "",
	}
	exts := []string{".ts", ".tsx", ".js"}
	tests := []struct {
		spec string
		want string
		ok   bool
	}{
		{"./theme", "/src/theme.ts", true},
		{"./ui/button", "/src/ui/button.tsx", true},
		{"./util.js", "/src/util.js", true},
		{"./tokens", "/src/tokens/index.js", true},
		{"../src/theme", "/src/theme.ts", true},
		{"/src/theme.ts", "/src/theme.ts", true},
		{"vindur", "", false},
		{"./missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, ok := ImportPath("/src/app.tsx", tt.spec, exts, files.Exists)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ImportPath(%q) = %q, %v, want %q, %v", tt.spec, got, ok, tt.want, tt.ok)
			}
		})
	}
}

const constantsSrc = `import { css } from 'vindur';
const base = 4;
export const gap = base * 2;
export const unit = ` + "`${gap}px`" + `;
const sizes = { sm: base, md: ` + "`${base * 3}px`" + `, 'x-l': '2rem' };
const list = [1, 'a'];
export { sizes, list as items };
export const late = ` + "`${later}-x`" + `;
const later = 'L';
const computed = compute();
let mutable = 1;
export const cls = css` + "`color: red;`" + `;
`

func TestExtractConstants(t *testing.T) {
	m, err := source.Parse("/src/tokens.js", []byte(constantsSrc))
	if err != nil {
		t.Fatal(err)
	}
	printed := m.Print()

	c := ExtractConstants(m)
	wantValues := map[string]any{
		"base":  4.0,
		"gap":   8.0,
		"unit":  "8px",
		"sizes": map[string]any{"sm": 4.0, "md": "12px", "x-l": "2rem"},
		"list":  []any{1.0, "a"},
		"late":  "L-x",
		"later": "L",
	}
	if diff := cmp.Diff(wantValues, c.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
	wantExports := map[string]string{
		"gap": "gap", "unit": "unit", "sizes": "sizes", "items": "list", "late": "late", "cls": "cls",
	}
	if diff := cmp.Diff(wantExports, c.Exports); diff != "" {
		t.Errorf("Exports mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Exported()["cls"]; ok {
		t.Error("Exported() contains non static constant")
	}
	if got := c.Exported()["items"]; !cmp.Equal(got, []any{1.0, "a"}) {
		t.Errorf("Exported()[items] = %v", got)
	}
	if m.Print() != printed {
		t.Error("ExtractConstants modified module")
	}
}

func TestStatic(t *testing.T) {
	consts := map[string]any{
		"n":   10.0,
		"obj": map[string]any{"a": "x", "nested": map[string]any{"b": 2.0}},
		"arr": []any{"p", "q"},
	}
	lookup := func(name string) (any, bool) {
		v, ok := consts[name]
		return v, ok
	}
	tests := []struct {
		expr string
		want any
		kind diag.Kind
		err  bool
	}{
		{expr: "n / 4", want: 2.5},
		{expr: "-n + 1", want: -9.0},
		{expr: "'w' + n", want: "w10"},
		{expr: "obj.nested.b * n", want: 20.0},
		{expr: "obj['a']", want: "x"},
		{expr: "arr[1]", want: "q"},
		{expr: "arr.length", want: 2.0},
		{expr: "n / 0", kind: diag.KindArithmetic, err: true},
		{expr: "'a' * 2", kind: diag.KindArithmetic, err: true},
		{expr: "obj.missing", kind: diag.KindUnresolved, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			m, err := source.Parse("expr.js", []byte("x = "+tt.expr))
			if err != nil {
				t.Fatal(err)
			}
			assign := m.AST.List[0].(*js.ExprStmt).Value.(*js.BinaryExpr)
			got, err := Static(assign.Y, lookup)
			if tt.err {
				if !diag.IsKind(err, tt.kind) {
					t.Errorf("Static() error = %v, want %s error", err, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Static() error = %v", err)
			}
			if !cmp.Equal(tt.want, got) {
				t.Errorf("Static() = %v, want %v", got, tt.want)
			}
		})
	}

	m, _ := source.Parse("expr.js", []byte("x = unknown"))
	assign := m.AST.List[0].(*js.ExprStmt).Value.(*js.BinaryExpr)
	if _, err := Static(assign.Y, lookup); !errors.Is(err, ErrNotStatic) {
		t.Errorf("Static(unknown) error = %v, want ErrNotStatic", err)
	}
}
