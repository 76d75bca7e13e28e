package css

import (
	"slices"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// ScopedPrefix marks file local custom properties.
const ScopedPrefix = "---"

// IsScoped reports whether name uses scoped declaration syntax.
func IsScoped(name string) bool {
	return strings.HasPrefix(name, ScopedPrefix) && len(name) > len(ScopedPrefix)
}

type scopedVar struct {
	index    int
	name     string
	declared bool
	value    string
}

// ScopedVariables renames file local custom properties. Every distinct name
// receives an index in order of first appearance.
type ScopedVariables struct {
	hash     string
	dev      bool
	fallback bool
	vars     map[string]*scopedVar
	order    []string
}

// NewScopedVariables creates renamer for file with given hash. In
// development mode generated names carry the original name. With fallback
// enabled (production only) references to variables declared with a plain
// value get that value as inline fallback.
func NewScopedVariables(hash string, dev, fallback bool) *ScopedVariables {
	return &ScopedVariables{
		hash:     hash,
		dev:      dev,
		fallback: fallback && !dev,
		vars:     make(map[string]*scopedVar),
	}
}

func (s *ScopedVariables) lookup(name string) *scopedVar {
	name = strings.TrimPrefix(name, ScopedPrefix)
	v, ok := s.vars[name]
	if !ok {
		v = &scopedVar{index: len(s.order) + 1, name: name}
		s.vars[name] = v
		s.order = append(s.order, name)
	}
	return v
}

func (s *ScopedVariables) generated(v *scopedVar) string {
	n := "--" + s.hash + "-" + strconv.Itoa(v.index)
	if s.dev {
		n += "-" + v.name
	}
	return n
}

// Name returns generated property name for scoped name (with or without
// leading dashes). Names first seen here are tracked as provided at runtime.
func (s *ScopedVariables) Name(name string) string {
	return s.generated(s.lookup(name))
}

// Rewrite renames scoped declarations and references in CSS text.
func (s *ScopedVariables) Rewrite(text string) string {
	if !strings.Contains(text, ScopedPrefix) {
		return text
	}

	tokens := lex(text)

	var b strings.Builder
	for i, t := range tokens {
		if t.tt != css.CustomPropertyNameToken || !IsScoped(t.data) {
			b.WriteString(t.data)
			continue
		}
		v := s.lookup(t.data)
		b.WriteString(s.generated(v))

		j := next(tokens, i)
		if j >= 0 && tokens[j].tt == css.ColonToken {
			v.declared = true
			v.value = declarationValue(tokens[j+1:])
			continue
		}
		if s.fallback && v.declared && v.value != "" && j >= 0 && tokens[j].tt == css.RightParenthesisToken {
			b.WriteString(", " + v.value)
		}
	}
	return b.String()
}

// declarationValue collects plain declaration value up to the end of
// declaration. Values containing functions or nested references are not
// usable as fallbacks.
func declarationValue(rest []token) string {
	var b strings.Builder
	for _, t := range rest {
		switch t.tt {
		case css.SemicolonToken, css.RightBraceToken:
			return strings.TrimSpace(b.String())
		case css.FunctionToken, css.CustomPropertyNameToken, css.LeftBraceToken:
			return ""
		}
		b.WriteString(t.data)
	}
	return strings.TrimSpace(b.String())
}

// Undeclared returns scoped names referenced but never declared in the file,
// in order of appearance. Such variables are expected to be provided through
// style attribute at runtime.
func (s *ScopedVariables) Undeclared() []string {
	var out []string
	for _, name := range s.order {
		if !s.vars[name].declared {
			out = append(out, name)
		}
	}
	return out
}

// Declared returns declared scoped names in order of appearance.
func (s *ScopedVariables) Declared() []string {
	return slices.DeleteFunc(slices.Clone(s.order), func(name string) bool {
		return !s.vars[name].declared
	})
}
