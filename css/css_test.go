package css

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"vindur/diag"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"doubled separators", "  color: red;;  margin: 0;  ", "color: red;  margin: 0;"},
		{"empty interpolation lines", ";\n  color: red;\n  ;\n", "color: red;"},
		{"separator after brace", "&:hover { ; color: blue; }", "&:hover { color: blue; }"},
		{"strings untouched", `content: ";;";`, `content: ";;";`},
		{"comment between separators", "a: 1; /* x */ ; b: 2;", "a: 1; /* x */ b: 2;"},
		{"only separators", " ; ;\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	in := "\n  color: red;\n  ;;\n  &:hover { ;; }\n"
	once := Clean(in)
	if twice := Clean(once); twice != once {
		t.Errorf("Clean is not idempotent: %q then %q", once, twice)
	}
}

func TestRuleWrapping(t *testing.T) {
	r := Rule{Text: ClassRule("v1-1", "color: red;"), Layer: "base"}
	want := "@layer base {\n.v1-1 {\ncolor: red;\n}\n}"
	if got := r.CSS(); got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
	if got := KeyframesRule("v1-2", "from { opacity: 0; }"); got != "@keyframes v1-2 {\nfrom { opacity: 0; }\n}" {
		t.Errorf("KeyframesRule() = %q", got)
	}
}

func TestScopedVariables(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		s := NewScopedVariables("vabc", true, true)
		got := s.Rewrite("---main: red;\ncolor: var(---main);\nborder-color: var(--external);")
		want := "--vabc-1-main: red;\ncolor: var(--vabc-1-main);\nborder-color: var(--external);"
		if got != want {
			t.Errorf("Rewrite() = %q, want %q", got, want)
		}
	})

	t.Run("production with fallback", func(t *testing.T) {
		s := NewScopedVariables("vabc", false, true)
		s.Rewrite("---main: #fff;")
		if got := s.Rewrite("color: var(---main);"); got != "color: var(--vabc-1, #fff);" {
			t.Errorf("Rewrite() = %q", got)
		}
		if got := s.Rewrite("width: var(---size, 10px);"); got != "width: var(--vabc-2, 10px);" {
			t.Errorf("Rewrite() = %q", got)
		}
		if got := s.Name("---size"); got != "--vabc-2" {
			t.Errorf("Name() = %q", got)
		}
		if diff := cmp.Diff([]string{"size"}, s.Undeclared()); diff != "" {
			t.Errorf("Undeclared() mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"main"}, s.Declared()); diff != "" {
			t.Errorf("Declared() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("computed value has no fallback", func(t *testing.T) {
		s := NewScopedVariables("vabc", false, true)
		got := s.Rewrite("---w: calc(1px + 2px);\nwidth: var(---w);")
		if want := "--vabc-1: calc(1px + 2px);\nwidth: var(--vabc-1);"; got != want {
			t.Errorf("Rewrite() = %q, want %q", got, want)
		}
	})

	t.Run("style attribute names", func(t *testing.T) {
		s := NewScopedVariables("vabc", true, false)
		if got := s.Name("---gap"); got != "--vabc-1-gap" {
			t.Errorf("Name() = %q", got)
		}
		if got := s.Rewrite("gap: var(---gap);"); got != "gap: var(--vabc-1-gap);" {
			t.Errorf("Rewrite() = %q", got)
		}
	})
}

func TestRewriteFlagSelectors(t *testing.T) {
	flags := []Flag{
		{Prop: "primary", Class: "v1-1-primary"},
		{Prop: "size", Class: "v1-1-size", Values: []string{"sm", "lg"}},
	}
	in := "color: red;\n&.primary { color: blue; }\n&.size-lg { padding: 2px; }\n&.other, .primary { margin: 0; }"
	got, found := RewriteFlagSelectors(in, flags)
	want := "color: red;\n&.v1-1-primary { color: blue; }\n&.v1-1-size-lg { padding: 2px; }\n&.other, .primary { margin: 0; }"
	if got != want {
		t.Errorf("RewriteFlagSelectors() = %q, want %q", got, want)
	}
	if diff := cmp.Diff(map[string]bool{"primary": true, "size-lg": true}, found); diff != "" {
		t.Errorf("found mismatch (-want +got):\n%s", diff)
	}
}

func TestStylesheet(t *testing.T) {
	a := Rule{Text: ".a {\ncolor: red;\n}", Layer: "base", Source: diag.Position{File: "a.js", Line: 3, Column: 5}}
	b := Rule{Text: ".b {\n}"}
	c := Rule{Text: ".c {}", Layer: "theme"}

	s := Assemble([]Rule{a, b, a, c})
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	want := "@layer base, theme;\n\n@layer base {\n.a {\ncolor: red;\n}\n}\n\n.b {\n}\n\n@layer theme {\n.c {}\n}\n"
	if diff := cmp.Diff(want, s.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}

	s = NewStylesheet(nil)
	s.SourceComments = true
	s.Add(a, b)
	want = "@layer base;\n\n/* a.js:3:5 */\n@layer base {\n.a {\ncolor: red;\n}\n}\n\n.b {\n}\n"
	if diff := cmp.Diff(want, s.String()); diff != "" {
		t.Errorf("String() with comments mismatch (-want +got):\n%s", diff)
	}
}
