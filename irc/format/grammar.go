// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package format

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Character-level recognizers. Each takes the unconsumed input and returns
// what it matched plus the number of bytes consumed; 0 bytes means no match.

// isReserved reports whether b can't appear unescaped in a plain run.
func isReserved(b byte, markdownOnly bool) bool {
	switch b {
	case '*', '_', '`', '|':
		return true
	case '$':
		return !markdownOnly
	default:
		return false
	}
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9' // not unicode.IsDigit, which accepts non-ASCII numerals
}

// escapedChar matches one character of a plain run: either an escape
// sequence, which collapses to the bare character, or an ordinary character.
func escapedChar(s string, markdownOnly bool) (char string, n int) {
	if len(s) == 0 {
		return "", 0
	}
	if s[0] == '\\' && 1 < len(s) {
		switch s[1] {
		case '*', '_', '`', '|':
			return s[1:2], 2
		case '$':
			if !markdownOnly {
				return "$", 2
			}
		}
	}
	if !markdownOnly && strings.HasPrefix(s, "$$") {
		return "$", 2
	}
	if isReserved(s[0], markdownOnly) {
		return "", 0
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return "", 0
	}
	return s[:size], size
}

// plainRun greedily matches escaped/ordinary characters, returning the
// de-escaped text.
func plainRun(s string, markdownOnly bool) (text string, n int) {
	var buf strings.Builder
	escaped := false
	for n < len(s) {
		char, size := escapedChar(s[n:], markdownOnly)
		if size == 0 {
			break
		}
		if size != len(char) && !escaped {
			// first escape: copy what we've seen so far
			escaped = true
			buf.Grow(len(s))
			buf.WriteString(s[:n])
		}
		if escaped {
			buf.WriteString(char)
		}
		n += size
	}
	if escaped {
		return buf.String(), n
	}
	return s[:n], n
}

// between matches open, a non-empty plain run, then close.
func between(s, open, close string, markdownOnly bool) (text string, n int) {
	if !strings.HasPrefix(s, open) {
		return "", 0
	}
	text, inner := plainRun(s[len(open):], markdownOnly)
	if inner == 0 {
		return "", 0
	}
	n = len(open) + inner
	if !strings.HasPrefix(s[n:], close) {
		return "", 0
	}
	return text, n + len(close)
}

// colorName matches a palette name.
func colorName(s string) (color ColorCode, n int) {
	for i, name := range colorNames {
		if strings.HasPrefix(s, name) {
			return ColorCode(i), len(name)
		}
	}
	return 0, 0
}

// colorDigits matches a 1-2 digit color code. If two digits don't make a
// valid color, it falls back to the first digit alone.
func colorDigits(s string) (color ColorCode, n int) {
	for n < len(s) && n < 2 && isDigit(s[n]) {
		n++
	}
	for ; 0 < n; n-- {
		code, err := strconv.Atoi(s[:n])
		if err != nil {
			continue
		}
		if color, ok := ColorFromCode(code); ok {
			return color, n
		}
	}
	return 0, 0
}

// colorValue matches a palette name, or failing that, a numeric code.
func colorValue(s string) (color ColorCode, n int) {
	if color, n = colorName(s); n != 0 {
		return
	}
	return colorDigits(s)
}
