// Package debug renders internal compiler structures as indented text for
// debug reports.
package debug

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Value writes compile time value: scalars inline, arrays and objects as
// nested blocks with object keys sorted.
func (tw TreeWriter) Value(depth int, label string, value any) {
	switch v := value.(type) {
	case []any:
		tw.Line(depth, "%s: [%d]", label, len(v))
		for i, item := range v {
			tw.Value(depth+1, strconv.Itoa(i), item)
		}
	case map[string]any:
		tw.Line(depth, "%s: {%d}", label, len(v))
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tw.Value(depth+1, k, v[k])
		}
	case string:
		tw.indent(depth)
		tw.w.WriteString(label)
		tw.w.WriteString(": ")
		tw.w.WriteString(strconv.Quote(v))
		tw.w.WriteByte('\n')
	case nil:
		tw.Line(depth, "%s: undefined", label)
	default:
		tw.Line(depth, "%s: %v", label, v)
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
