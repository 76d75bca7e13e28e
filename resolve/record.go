// Package resolve loads external style modules on demand and keeps what
// they export for the duration of a compilation run.
package resolve

import (
	"maps"
	"slices"

	"vindur/color"
	"vindur/css"
	"vindur/quasi"
)

// Component is a styled component.
type Component struct {
	// Class is own class of the component, used in selectors.
	Class string
	// Classes are all classes component applies, space separated.
	Classes string
	// Tag is element name of styled element, empty for styled wrappers of
	// custom components.
	Tag   string
	Flags []css.Flag
}

// Record is what compile time references may use from a module. It is never
// modified after extraction completes.
type Record struct {
	Path          string
	Classes       map[string]string
	Keyframes     map[string]string
	Constants     map[string]any
	Themes        map[string]*color.Palette
	Components    map[string]Component
	DynamicColors map[string]string
	Functions     map[string]*quasi.Function
	// Rules emitted by the module and its dependencies, merged into every
	// importer.
	Rules []css.Rule
	// Dependencies are paths of modules this one was resolved against.
	Dependencies []string
}

func NewRecord(path string) *Record {
	return &Record{
		Path:          path,
		Classes:       make(map[string]string),
		Keyframes:     make(map[string]string),
		Constants:     make(map[string]any),
		Themes:        make(map[string]*color.Palette),
		Components:    make(map[string]Component),
		DynamicColors: make(map[string]string),
		Functions:     make(map[string]*quasi.Function),
	}
}

// Has reports whether record exports compile time symbol name.
func (r *Record) Has(name string) bool {
	if _, ok := r.Classes[name]; ok {
		return true
	}
	if _, ok := r.Keyframes[name]; ok {
		return true
	}
	if _, ok := r.Constants[name]; ok {
		return true
	}
	if _, ok := r.Themes[name]; ok {
		return true
	}
	if _, ok := r.Components[name]; ok {
		return true
	}
	if _, ok := r.DynamicColors[name]; ok {
		return true
	}
	_, ok := r.Functions[name]
	return ok
}

// Symbols returns sorted names of all exported compile time symbols.
func (r *Record) Symbols() []string {
	var names []string
	names = slices.AppendSeq(names, maps.Keys(r.Classes))
	names = slices.AppendSeq(names, maps.Keys(r.Keyframes))
	names = slices.AppendSeq(names, maps.Keys(r.Constants))
	names = slices.AppendSeq(names, maps.Keys(r.Themes))
	names = slices.AppendSeq(names, maps.Keys(r.Components))
	names = slices.AppendSeq(names, maps.Keys(r.DynamicColors))
	names = slices.AppendSeq(names, maps.Keys(r.Functions))
	slices.Sort(names)
	return slices.Compact(names)
}
