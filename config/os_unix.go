//go:build !windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// CleanFileName makes single path segment of generated output (stylesheet or
// bundle name) safe: separators and control characters are dropped, leading
// dots would produce hidden files.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym == os.PathSeparator || sym == os.PathListSeparator || unicode.IsControl(sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(strings.TrimSpace(out)) == 0 {
		return unnamed
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
