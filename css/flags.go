package css

import (
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Flag is a style flag of a component: boolean when Values is empty,
// string union otherwise.
type Flag struct {
	Prop   string
	Class  string
	Values []string
}

// Selectors returns selector names the flag matches in component CSS,
// mapped to their hashed replacements.
func (f Flag) Selectors() map[string]string {
	if len(f.Values) == 0 {
		return map[string]string{f.Prop: f.Class}
	}
	out := make(map[string]string, len(f.Values))
	for _, v := range f.Values {
		out[f.Prop+"-"+v] = f.Class + "-" + v
	}
	return out
}

// RewriteFlagSelectors replaces `&.name` selectors of declared flags with
// their hashed class names. It returns rewritten text and set of selector
// names which were found.
func RewriteFlagSelectors(text string, flags []Flag) (string, map[string]bool) {
	found := make(map[string]bool)
	if len(flags) == 0 || !strings.Contains(text, "&.") {
		return text, found
	}
	names := make(map[string]string)
	for _, f := range flags {
		for sel, cls := range f.Selectors() {
			names[sel] = cls
		}
	}

	tokens := lex(text)
	var b strings.Builder
	for i, t := range tokens {
		if t.tt == css.IdentToken && i >= 2 &&
			tokens[i-1].tt == css.DelimToken && tokens[i-1].data == "." &&
			tokens[i-2].tt == css.DelimToken && tokens[i-2].data == "&" {
			if cls, ok := names[t.data]; ok {
				found[t.data] = true
				b.WriteString(cls)
				continue
			}
		}
		b.WriteString(t.data)
	}
	return b.String(), found
}
