package css

import (
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt   css.TokenType
	data string
}

func lex(text string) []token {
	var tokens []token
	l := css.NewLexer(parse.NewInputString(text))
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return tokens
		}
		tokens = append(tokens, token{tt, string(data)})
	}
}

// next returns index of the next significant token after i or -1.
func next(tokens []token, i int) int {
	for i++; i < len(tokens); i++ {
		if tokens[i].tt != css.WhitespaceToken && tokens[i].tt != css.CommentToken {
			return i
		}
	}
	return -1
}
