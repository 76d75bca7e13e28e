package color

import (
	"vindur/diag"
)

// Palette is an ordered set of named colors.
type Palette struct {
	names  []string
	colors map[string]Color
}

func NewPalette() *Palette {
	return &Palette{colors: make(map[string]Color)}
}

// Add parses and registers color under name.
func (p *Palette) Add(name, hex string) error {
	if _, ok := p.colors[name]; ok {
		return diag.Errorf(diag.KindStructural, "duplicate palette color %q", name)
	}
	c, err := Parse(hex)
	if err != nil {
		return err
	}
	p.names = append(p.names, name)
	p.colors[name] = c
	return nil
}

func (p *Palette) Get(name string) (Color, bool) {
	c, ok := p.colors[name]
	return c, ok
}

// Names returns color names in declaration order.
func (p *Palette) Names() []string {
	return p.names
}

func (p *Palette) Len() int {
	return len(p.names)
}
