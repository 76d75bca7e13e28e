package css

import (
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Stylesheet is an ordered, deduplicated collection of rules.
type Stylesheet struct {
	// SourceComments prefixes every rule with its origin.
	SourceComments bool

	rules  []Rule
	layers []string
	seen   map[string]bool
	log    *zap.Logger
}

// NewStylesheet creates empty stylesheet.
func NewStylesheet(log *zap.Logger) *Stylesheet {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stylesheet{seen: make(map[string]bool), log: log.Named("stylesheet")}
}

// Assemble builds stylesheet out of rules in given order.
func Assemble(rules []Rule) *Stylesheet {
	s := NewStylesheet(nil)
	s.Add(rules...)
	return s
}

// Add appends rules skipping ones with text already present. Rules coming
// from shared modules are emitted into every importer and collapse here.
func (s *Stylesheet) Add(rules ...Rule) {
	for _, r := range rules {
		text := r.CSS()
		if s.seen[text] {
			s.log.Debug("Duplicate rule skipped", zap.Stringer("source", r.Source))
			continue
		}
		s.seen[text] = true
		if r.Layer != "" && !slices.Contains(s.layers, r.Layer) {
			s.layers = append(s.layers, r.Layer)
		}
		s.rules = append(s.rules, r)
	}
}

// Rules returns deduplicated rules in order of addition.
func (s *Stylesheet) Rules() []Rule {
	return s.rules
}

// Layers returns layer names in order of first use.
func (s *Stylesheet) Layers() []string {
	return s.layers
}

// Len returns number of distinct rules.
func (s *Stylesheet) Len() int {
	return len(s.rules)
}

// String renders stylesheet.
func (s *Stylesheet) String() string {
	var b strings.Builder
	_, _ = s.WriteTo(&b)
	return b.String()
}

// WriteTo writes layer order statement followed by rules separated with
// empty lines.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	if len(s.layers) > 0 {
		b.WriteString("@layer " + strings.Join(s.layers, ", ") + ";\n")
	}
	for i, r := range s.rules {
		if i > 0 || len(s.layers) > 0 {
			b.WriteByte('\n')
		}
		if s.SourceComments && r.Source.File != "" {
			b.WriteString("/* " + r.Source.String() + " */\n")
		}
		b.WriteString(r.CSS())
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
