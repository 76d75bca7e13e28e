package resolve

import (
	"maps"
	"slices"

	"vindur/utils/debug"
)

// Dump renders record as indented tree for debug reports.
func Dump(r *Record) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "module %s", r.Path)
	dumpNames(tw, "classes", r.Classes)
	dumpNames(tw, "keyframes", r.Keyframes)
	dumpNames(tw, "dynamic colors", r.DynamicColors)
	if len(r.Components) > 0 {
		tw.Line(1, "components: %d", len(r.Components))
		for _, name := range slices.Sorted(maps.Keys(r.Components)) {
			c := r.Components[name]
			if c.Tag == "" {
				tw.Line(2, "%s: .%s", name, c.Class)
				continue
			}
			tw.Line(2, "%s: %s.%s", name, c.Tag, c.Class)
		}
	}
	if len(r.Constants) > 0 {
		tw.Value(1, "constants", r.Constants)
	}
	if len(r.Themes) > 0 {
		tw.Line(1, "themes: %d", len(r.Themes))
		for _, name := range slices.Sorted(maps.Keys(r.Themes)) {
			p := r.Themes[name]
			tw.Line(2, "%s: %d", name, p.Len())
			for _, c := range p.Names() {
				v, _ := p.Get(c)
				tw.Line(3, "%s: %s", c, v.Hex())
			}
		}
	}
	if len(r.Functions) > 0 {
		tw.Line(1, "functions: %d", len(r.Functions))
		for _, name := range slices.Sorted(maps.Keys(r.Functions)) {
			f := r.Functions[name]
			tw.Line(2, "%s (%s, %d params)", name, f.Signature, len(f.Params))
		}
	}
	tw.Line(1, "rules: %d", len(r.Rules))
	return tw.String()
}

func dumpNames(tw *debug.TreeWriter, label string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	tw.Line(1, "%s: %d", label, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		tw.Line(2, "%s: %s", name, m[name])
	}
}
