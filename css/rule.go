// Package css turns resolved style template text into CSS rules and
// assembles rules into stylesheets.
package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"vindur/diag"
)

// Rule is a single emitted CSS rule. Text never includes the layer wrapper.
type Rule struct {
	Text   string
	Source diag.Position
	Layer  string
}

// CSS renders rule, wrapped into its layer block if any.
func (r Rule) CSS() string {
	if r.Layer == "" {
		return r.Text
	}
	return "@layer " + r.Layer + " {\n" + r.Text + "\n}"
}

// Clean trims template text and drops empty declarations left after
// interpolation: separators which follow another separator, an opening
// brace or the start of text.
func Clean(text string) string {
	var (
		b       strings.Builder
		pending []byte
		last    = css.LeftBraceToken
	)
	l := css.NewLexer(parse.NewInputString(text))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return strings.TrimSpace(b.String())
		case css.WhitespaceToken:
			pending = append(pending, data...)
			continue
		case css.SemicolonToken:
			if last == css.SemicolonToken || last == css.LeftBraceToken {
				pending = pending[:0]
				continue
			}
		}
		b.Write(pending)
		pending = pending[:0]
		b.Write(data)
		if tt != css.CommentToken {
			last = tt
		}
	}
}

// ClassRule wraps declarations into a class selector block.
func ClassRule(class, body string) string {
	return "." + class + " {\n" + body + "\n}"
}

// KeyframesRule wraps frames into keyframes block.
func KeyframesRule(name, body string) string {
	return "@keyframes " + name + " {\n" + body + "\n}"
}
