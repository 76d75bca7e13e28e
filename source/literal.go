package source

import (
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/js"
	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// Literal returns compile time value of expression when it is a plain
// literal: string, float64 or bool. Untagged templates without holes are
// strings, negated numeric literals are numbers.
func Literal(e js.IExpr) (any, bool) {
	switch n := e.(type) {
	case *js.LiteralExpr:
		return literalValue(n.TokenType, n.Data)
	case js.LiteralExpr:
		return literalValue(n.TokenType, n.Data)
	case *js.GroupExpr:
		return Literal(n.X)
	case *js.UnaryExpr:
		if n.Op != js.NegToken && n.Op != js.PosToken {
			return nil, false
		}
		v, ok := Literal(n.X)
		if !ok {
			return nil, false
		}
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		if n.Op == js.NegToken {
			f = -f
		}
		return f, true
	case *js.TemplateExpr:
		if n.Tag == nil && len(n.List) == 0 {
			return TemplateCooked(n.Tail), true
		}
	}
	return nil, false
}

func literalValue(tt js.TokenType, data []byte) (any, bool) {
	switch tt {
	case js.StringToken:
		return Unquote(data), true
	case js.TrueToken:
		return true, true
	case js.FalseToken:
		return false, true
	case js.DecimalToken, js.IntegerToken, js.BinaryToken, js.OctalToken, js.HexadecimalToken:
		f, ok := ParseNumber(data)
		return f, ok
	}
	return nil, false
}

// ParseNumber converts numeric literal token into its value.
func ParseNumber(data []byte) (float64, bool) {
	s := strings.ReplaceAll(string(data), "_", "")
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			n, err := strconv.ParseInt(s, 0, 64)
			return float64(n), err == nil
		}
	}
	f, n := pstrconv.ParseFloat([]byte(s))
	if n != len(s) {
		return 0, false
	}
	return f, true
}

// FormatNumber renders number the way host language converts numbers to
// strings.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if a := math.Abs(f); a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	// host prints exponent without zero padding: 1e-7, not 1e-07
	if i := strings.IndexByte(s, 'e'); i >= 0 && i+2 < len(s) && s[i+2] == '0' {
		s = s[:i+2] + strings.TrimLeft(s[i+2:], "0")
	}
	return s
}

// Stringify converts compile time value into text the way template
// interpolation does.
func Stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return FormatNumber(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case nil:
		return "undefined"
	}
	return ""
}

// Truthy reports value truthiness using host language rules.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	return true
}

// PropertyKey returns static name of object property.
func PropertyKey(p *js.PropertyName) (string, bool) {
	if p == nil || p.Computed != nil {
		if p != nil {
			if v, ok := Literal(p.Computed); ok {
				return Stringify(v), true
			}
		}
		return "", false
	}
	switch p.Literal.TokenType {
	case js.StringToken:
		return Unquote(p.Literal.Data), true
	case js.DecimalToken, js.IntegerToken:
		if f, ok := ParseNumber(p.Literal.Data); ok {
			return FormatNumber(f), true
		}
	}
	return string(p.Literal.Data), true
}

// MemberName returns property name of member access node.
func MemberName(d *js.DotExpr) string {
	switch y := d.Y.(type) {
	case js.LiteralExpr:
		return string(y.Data)
	case *js.LiteralExpr:
		return string(y.Data)
	case *js.Var:
		return string(y.Name())
	}
	return JS(d.Y)
}
