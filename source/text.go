package source

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unquote converts string literal token (quotes included) into its value.
func Unquote(data []byte) string {
	if len(data) < 2 {
		return string(data)
	}
	return unescape(string(data[1:len(data)-1]), true)
}

// TemplateRaw returns raw text of template part token without delimiters.
// Only escaped backtick and dollar are unescaped.
func TemplateRaw(part []byte) string {
	s := trimTemplate(part)
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	r := strings.NewReplacer("\\`", "`", "\\$", "$")
	return r.Replace(s)
}

// TemplateCooked returns template part token value with escapes processed.
func TemplateCooked(part []byte) string {
	return unescape(trimTemplate(part), false)
}

func trimTemplate(part []byte) string {
	s := string(part)
	if strings.HasPrefix(s, "`") || strings.HasPrefix(s, "}") {
		s = s[1:]
	}
	if strings.HasSuffix(s, "${") {
		s = s[:len(s)-2]
	} else if strings.HasSuffix(s, "`") {
		s = s[:len(s)-1]
	}
	return s
}

func unescape(s string, str bool) string {
	if !strings.ContainsRune(s, '\\') && (str || !strings.ContainsRune(s, '\r')) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\r' && !str {
			// template literals normalize line terminators
			b.WriteByte('\n')
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			continue
		}
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch c = s[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case 'x':
			if i+2 < len(s) {
				if n, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteRune(rune(n))
					i += 2
					continue
				}
			}
			b.WriteByte(c)
		case 'u':
			r, n := unicodeEscape(s[i+1:])
			if n == 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteRune(r)
			i += n
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0
		}
		n, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, 0
		}
		return rune(n), end + 1
	}
	if len(s) < 4 {
		return 0, 0
	}
	n, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, 0
	}
	return rune(n), 4
}

// Quote renders string as double quoted string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			if r < 0x20 {
				b.WriteString(`\x`)
				b.WriteString(strconv.FormatInt(int64(r)+0x100, 16)[1:])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
