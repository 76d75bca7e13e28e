package debug

import (
	"strings"
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", format: "function", want: "function\n"},
		{name: "nested", depth: 2, format: "param %s", args: []any{"size"}, want: "    param size\n"},
		{name: "formatted", depth: 1, format: "%s = %d", args: []any{"index", 3}, want: "  index = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{name: "empty value", label: "text", want: "text: \n"},
		{name: "css text", depth: 1, label: "text", value: "color: red;", want: "  text: \"color: red;\"\n"},
		{name: "newline", label: "text", value: "a\nb", want: "text: \"a\\nb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Value(t *testing.T) {
	tw := NewTreeWriter()
	tw.Value(0, "sizes", map[string]any{
		"md": 16.0,
		"sm": "12px",
		"list": []any{
			true,
			nil,
		},
	})
	want := strings.Join([]string{
		"sizes: {3}",
		"  list: [2]",
		"    0: true",
		"    1: undefined",
		"  md: 16",
		`  sm: "12px"`,
		"",
	}, "\n")
	if got := tw.String(); got != want {
		t.Errorf("Value() =\n%s\nwant\n%s", got, want)
	}
}
